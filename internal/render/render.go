// Package render draws the visible surface into frames and hands them to a
// sink: the Linux framebuffer or a file.
package render

import (
	"image"

	"golang.org/x/image/font"
)

// Sink receives every rendered frame
type Sink interface {
	// Present shows a frame. The frame must not be retained after return.
	Present(frame *image.RGBA) error
	// Close releases the output device
	Close() error
}

// Sizer is implemented by sinks with a fixed native resolution
type Sizer interface {
	Size() (width int, height int)
}

// FaceSource returns a font face for a pixel size
type FaceSource interface {
	Face(size int) (font.Face, error)
}

// NoopSink discards frames
type NoopSink struct{}

func (NoopSink) Present(*image.RGBA) error { return nil }
func (NoopSink) Close() error              { return nil }
