package domain

import (
	"context"
	"image"
)

// Monitor defines an inbound source of album updates.
// Implementations cover D-Bus/MPRIS players, the websocket push
// connection and the local HTTP API.
//
//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/genricoloni/synframe/internal/domain Monitor,Fetcher,ImageProcessor,DisplayPower,Revealer,SlideActivator,AlbumView,Overrider
type Monitor interface {
	// Start begins monitoring for album updates
	// It should block until context is cancelled or an error occurs
	Start(ctx context.Context) error

	// Stop gracefully stops the monitor
	Stop(ctx context.Context) error

	// Events returns a read-only channel that emits album updates
	Events() <-chan AlbumUpdate
}

// ImageProcessor defines the interface for in-memory image processing
// This is OS-agnostic and works purely with byte streams and images
type ImageProcessor interface {
	// Artwork decodes album art and prepares the backdrop and cover
	Artwork(ctx context.Context, imageData []byte) (Artwork, error)

	// Slide scales a slide image to fill the screen
	Slide(img image.Image) image.Image
}

// Fetcher defines the interface for retrieving album artwork
type Fetcher interface {
	// Fetch downloads or reads image data from a URL, data URI or local path
	// Returns the raw image bytes or an error
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DisplayPower defines the interface for switching the physical display
type DisplayPower interface {
	// SetPower turns the display on or off
	SetPower(ctx context.Context, on bool) error
}

// Revealer makes exactly one surface visible and hides the others.
// Calling it repeatedly with the same surface must have no further effect.
type Revealer interface {
	Reveal(surface Surface)
}

// SlideActivator is told which slide of the slide set is the active one
type SlideActivator interface {
	Activate(slide Slide)
	Deactivate(slide Slide)
}

// AlbumView receives a freshly fitted album snapshot to draw
type AlbumView interface {
	SetAlbum(snapshot AlbumSnapshot)
}

// Overrider toggles album override mode on the display scheduler
type Overrider interface {
	SetShowAlbum(active bool)
}
