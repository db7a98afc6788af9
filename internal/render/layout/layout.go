// Package layout has rectangle helpers for placing surfaces on the canvas.
package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	if out.Dx() <= 0 || out.Dy() <= 0 {
		c := Center(rect)
		return image.Rectangle{Min: c, Max: c}
	}
	return out
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = rect.Canon()
	leftWidthPx = min(max(leftWidthPx, 0), rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = rect.Canon()
	topHeightPx = min(max(topHeightPx, 0), rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// FitSquare returns the largest square that fits into rect, centered.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = rect.Canon()
	side := min(rect.Dx(), rect.Dy())
	return CenterIn(rect, side, side)
}

// FitAspect returns the largest rectangle with the aspect ratio of size
// that fits into rect, centered.
func FitAspect(rect image.Rectangle, size image.Point) image.Rectangle {
	rect = rect.Canon()
	if size.X <= 0 || size.Y <= 0 || rect.Empty() {
		return image.Rectangle{Min: Center(rect), Max: Center(rect)}
	}
	w, h := rect.Dx(), rect.Dx()*size.Y/size.X
	if h > rect.Dy() {
		w, h = rect.Dy()*size.X/size.Y, rect.Dy()
	}
	return CenterIn(rect, w, h)
}

// CenterIn returns a rectangle of size (widthPx, heightPx) centered in rect.
// The size is clamped to rect.
func CenterIn(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = rect.Canon()
	widthPx = min(max(widthPx, 0), rect.Dx())
	heightPx = min(max(heightPx, 0), rect.Dy())
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// Center returns the center point of rect.
func Center(rect image.Rectangle) image.Point {
	return image.Pt((rect.Min.X+rect.Max.X)/2, (rect.Min.Y+rect.Max.Y)/2)
}
