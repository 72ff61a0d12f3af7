package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDominantColorPicksMajority(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, red)
		}
	}
	img.Set(0, 0, blue)
	img.Set(0, 1, blue)

	assert.Equal(t, red, DominantColor(img))
}

func TestDominantColorIgnoresTransparentPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	green := color.RGBA{G: 255, A: 255}
	img.Set(0, 0, green)
	// remaining three pixels stay fully transparent (zero value)

	assert.Equal(t, green, DominantColor(img))
}

func TestDominantColorAllTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.Equal(t, color.RGBA{}, DominantColor(img))
}

func TestAverageBlendsOpaquePixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 100, A: 255})
	img.Set(1, 0, color.RGBA{R: 200, A: 255})

	got := Average(img)
	assert.Equal(t, uint8(150), got.R)
	assert.Equal(t, uint8(0xFF), got.A)
}

func TestAverageAllTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.Equal(t, color.RGBA{}, Average(img))
}
