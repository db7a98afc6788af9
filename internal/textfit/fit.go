// Package textfit sizes a line of text to the largest font that fits a box.
package textfit

import (
	"errors"
	"fmt"
)

// MaxFontSize is the absolute ceiling applied to every fitted size
const MaxFontSize = 180

// ErrInvalidRange is returned when minSize is greater than maxSize
var ErrInvalidRange = errors.New("textfit: min size greater than max size")

// Metrics describes the rendered extent of a string at one font size.
// Ascent and Descent are zero when the measurer cannot report bounds.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// height returns the measured height, falling back to the tried size
// unless both ascent and descent are known.
func (m Metrics) height(size int) float64 {
	if m.Ascent > 0 && m.Descent > 0 {
		return m.Ascent + m.Descent
	}
	return float64(size)
}

// Measurer measures text at a given font size in pixels
type Measurer interface {
	Measure(text string, size int) Metrics
}

// Fit returns the largest integer font size in [minSize, maxSize], capped
// at MaxFontSize, at which text fits inside boxWidth x boxHeight.
// When no size fits it returns minSize.
func Fit(m Measurer, text string, minSize, maxSize int, boxWidth, boxHeight float64) (int, error) {
	if minSize > maxSize {
		return 0, fmt.Errorf("%w: %d > %d", ErrInvalidRange, minSize, maxSize)
	}
	if text == "" {
		return min(maxSize, MaxFontSize), nil
	}

	best := minSize
	lo, hi := minSize, maxSize
	for lo <= hi {
		mid := (lo + hi) / 2
		metrics := m.Measure(text, mid)

		if metrics.Width <= boxWidth && metrics.height(mid) <= boxHeight {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return min(best, MaxFontSize), nil
}
