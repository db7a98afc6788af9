package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

const circleSegments = 96

// fillPath rasterizes one closed path onto dst in a solid colour
func fillPath(dst *image.RGBA, c color.Color, path func(z *vector.Rasterizer)) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	path(z)
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// fillDisk draws a filled circle centered on (cx, cy)
func fillDisk(dst *image.RGBA, cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	fillPath(dst, c, func(z *vector.Rasterizer) {
		circle(z, dst.Bounds().Min, cx, cy, r)
	})
}

// strokeLine draws a line of the given width with round caps
func strokeLine(dst *image.RGBA, x0, y0, x1, y1, width float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	half := width / 2
	if length == 0 || half <= 0 {
		return
	}
	// unit normal scaled to half the width
	nx, ny := -dy/length*half, dx/length*half
	origin := dst.Bounds().Min

	fillPath(dst, c, func(z *vector.Rasterizer) {
		moveTo(z, origin, x0+nx, y0+ny)
		lineTo(z, origin, x1+nx, y1+ny)
		lineTo(z, origin, x1-nx, y1-ny)
		lineTo(z, origin, x0-nx, y0-ny)
		z.ClosePath()
	})
	// Caps are separate passes: the rasterizer accumulates signed area, so
	// overlapping paths of opposite winding would cancel out
	fillDisk(dst, x0, y0, half, c)
	fillDisk(dst, x1, y1, half, c)
}

func circle(z *vector.Rasterizer, origin image.Point, cx, cy, r float64) {
	moveTo(z, origin, cx+r, cy)
	for i := 1; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		lineTo(z, origin, cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	z.ClosePath()
}

func moveTo(z *vector.Rasterizer, origin image.Point, x, y float64) {
	z.MoveTo(float32(x-float64(origin.X)), float32(y-float64(origin.Y)))
}

func lineTo(z *vector.Rasterizer, origin image.Point, x, y float64) {
	z.LineTo(float32(x-float64(origin.X)), float32(y-float64(origin.Y)))
}
