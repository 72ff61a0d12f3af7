package bitmap

import (
	"image"
	"image/color"
)

// DominantColor returns the most frequently occurring opaque colour in img,
// used to collapse a decoded 32x32 tile down to the single pixel a minimap
// shows for it. Fully transparent pixels are ignored; an all-transparent
// image returns the zero colour.
func DominantColor(img *image.RGBA) color.RGBA {
	bounds := img.Bounds()
	counts := make(map[color.RGBA]int, 16)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			counts[c]++
		}
	}

	var best color.RGBA
	var bestCount int
	for c, n := range counts {
		if n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// Average blends every opaque pixel of img into a single colour, weighting
// each equally. Used as a softer alternative to DominantColor when a tile's
// palette has no single majority entry.
func Average(img *image.RGBA) color.RGBA {
	bounds := img.Bounds()
	var r, g, b, n uint64

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			r += uint64(c.R)
			g += uint64(c.G)
			b += uint64(c.B)
			n++
		}
	}

	if n == 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(b / n),
		A: 0xFF,
	}
}
