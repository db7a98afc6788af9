package slides

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"
	"slices"
)

// Placeholder art dimensions
const (
	ArtWidth  = 1024
	ArtHeight = 600

	artMargin = 100
)

var (
	mondrianPalette = []color.RGBA{
		{R: 255, G: 255, B: 255, A: 255}, // white
		{R: 237, G: 28, B: 36, A: 255},   // red
		{R: 63, G: 72, B: 204, A: 255},   // blue
		{R: 255, G: 242, B: 0, A: 255},   // yellow
	}
	mondrianWeights     = []float64{0.6, 0.15, 0.15, 0.1}
	mondrianThicknesses = []int{4, 6, 8}
)

// Mondrian draws a grid of coloured rectangles separated by black lines
func Mondrian(rng *rand.Rand, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	xs := gridLines(rng, width, 3+rng.IntN(3))
	ys := gridLines(rng, height, 2+rng.IntN(3))

	for i := 0; i < len(xs)-1; i++ {
		for j := 0; j < len(ys)-1; j++ {
			cell := image.Rect(xs[i], ys[j], xs[i+1], ys[j+1])
			fill := image.NewUniform(pickColor(rng))
			draw.Draw(img, cell, fill, image.Point{}, draw.Src)
		}
	}

	thickness := mondrianThicknesses[rng.IntN(len(mondrianThicknesses))]
	half := thickness / 2
	for _, x := range xs {
		draw.Draw(img, image.Rect(x-half, 0, x-half+thickness, height), image.Black, image.Point{}, draw.Src)
	}
	for _, y := range ys {
		draw.Draw(img, image.Rect(0, y-half, width, y-half+thickness), image.Black, image.Point{}, draw.Src)
	}

	return img
}

// gridLines returns the sorted line positions including both edges. Inner
// lines are distinct and keep a margin from the edges.
func gridLines(rng *rand.Rand, size, count int) []int {
	span := size - 2*artMargin
	count = min(count, max(span, 0))

	inner := make([]int, 0, count)
	if count > 0 {
		for _, p := range rng.Perm(span)[:count] {
			inner = append(inner, artMargin+p)
		}
	}
	slices.Sort(inner)

	lines := make([]int, 0, count+2)
	lines = append(lines, 0)
	lines = append(lines, inner...)
	return append(lines, size)
}

func pickColor(rng *rand.Rand) color.RGBA {
	r := rng.Float64()
	for i, w := range mondrianWeights {
		if r < w {
			return mondrianPalette[i]
		}
		r -= w
	}
	return mondrianPalette[0]
}
