// Package album applies inbound album updates to the display.
package album

import (
	"context"
	"image"
	"sync"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/genricoloni/synframe/internal/textfit"
	"go.uber.org/zap"
)

// Font size ranges for the metadata lines
const (
	artistMinSize = 40
	artistMaxSize = 80
	titleMinSize  = 30
	titleMaxSize  = 40

	DefaultBoxWidth  = 380
	DefaultBoxHeight = 160
)

// Waker switches the display on when playback becomes active
type Waker interface {
	Wake(ctx context.Context)
}

// Options configures the text box the metadata is fitted into
type Options struct {
	BoxWidth  float64
	BoxHeight float64
}

// Handler turns album updates into surface changes and album snapshots
type Handler struct {
	logger    *zap.Logger
	revealer  domain.Revealer
	overrider domain.Overrider
	fetcher   domain.Fetcher
	processor domain.ImageProcessor
	measurer  textfit.Measurer
	view      domain.AlbumView
	waker     Waker
	opts      Options

	mu       sync.RWMutex
	snapshot domain.AlbumSnapshot
}

// NewHandler creates an album update handler. waker may be nil.
func NewHandler(
	logger *zap.Logger,
	revealer domain.Revealer,
	overrider domain.Overrider,
	fetcher domain.Fetcher,
	processor domain.ImageProcessor,
	measurer textfit.Measurer,
	view domain.AlbumView,
	waker Waker,
	opts Options,
) *Handler {
	if opts.BoxWidth <= 0 {
		opts.BoxWidth = DefaultBoxWidth
	}
	if opts.BoxHeight <= 0 {
		opts.BoxHeight = DefaultBoxHeight
	}
	return &Handler{
		logger:    logger,
		revealer:  revealer,
		overrider: overrider,
		fetcher:   fetcher,
		processor: processor,
		measurer:  measurer,
		view:      view,
		waker:     waker,
		opts:      opts,
	}
}

// Handle applies one update. It never fails: fetch and decode problems are
// logged and the previous artwork stays on screen.
func (h *Handler) Handle(ctx context.Context, update domain.AlbumUpdate) {
	// 1. Explicit hide-all wins over everything else
	if update.HidesDisplay() {
		h.logger.Info("Display hidden by update")
		h.revealer.Reveal(domain.SurfaceNone)
		return
	}

	// 2. New artwork and text, only redrawn while playing
	if update.URL != nil && update.State == domain.StatePlaying {
		h.refresh(ctx, *update.URL, update)
	}

	// 3. Mode selection
	if update.State.Active() {
		h.logger.Debug("Showing album", zap.String("state", string(update.State)))
		// Override first: a rotation tick landing in between is then a no-op
		// instead of covering the album
		h.overrider.SetShowAlbum(true)
		h.revealer.Reveal(domain.SurfaceAlbum)
		if h.waker != nil {
			h.waker.Wake(ctx)
		}
		return
	}

	h.logger.Debug("Returning to rotation", zap.String("state", string(update.State)))
	h.overrider.SetShowAlbum(false)
}

// Snapshot returns the album currently published to the view
func (h *Handler) Snapshot() domain.AlbumSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot
}

func (h *Handler) refresh(ctx context.Context, url string, update domain.AlbumUpdate) {
	h.logger.Info("Updating album",
		zap.String("artist", update.Artist),
		zap.String("title", update.Title),
		zap.String("track", update.Track))

	h.mu.RLock()
	snapshot := h.snapshot
	h.mu.RUnlock()

	if art, ok := h.artwork(ctx, url, snapshot); ok {
		snapshot.Artwork = art
		snapshot.ArtworkURL = url
	}
	snapshot.Artist = update.Artist
	snapshot.Title = update.Title
	snapshot.Track = update.Track
	snapshot.State = update.State
	snapshot.ArtistSize = h.fit(update.Artist, artistMinSize, artistMaxSize)
	snapshot.TitleSize = min(
		h.fit(update.Title, titleMinSize, titleMaxSize),
		h.fit(update.Track, titleMinSize, titleMaxSize),
	)

	h.mu.Lock()
	h.snapshot = snapshot
	h.mu.Unlock()

	h.view.SetAlbum(snapshot)
}

// artwork resolves the cover for url. It reports false when the artwork
// could not be loaded, in which case the previous one stays.
func (h *Handler) artwork(ctx context.Context, url string, prev domain.AlbumSnapshot) (domain.Artwork, bool) {
	if url == "" {
		return placeholderArtwork(), true
	}
	if url == prev.ArtworkURL && prev.Artwork.Cover != nil {
		return prev.Artwork, true
	}

	data, err := h.fetcher.Fetch(ctx, url)
	if err != nil {
		h.logger.Error("Failed to fetch artwork", zap.String("url", url), zap.Error(err))
		return domain.Artwork{}, false
	}

	art, err := h.processor.Artwork(ctx, data)
	if err != nil {
		h.logger.Error("Failed to process artwork", zap.Error(err))
		return domain.Artwork{}, false
	}
	return art, true
}

func (h *Handler) fit(text string, minSize, maxSize int) int {
	size, err := textfit.Fit(h.measurer, text, minSize, maxSize, h.opts.BoxWidth, h.opts.BoxHeight)
	if err != nil {
		h.logger.Error("Failed to fit text", zap.String("text", text), zap.Error(err))
		return minSize
	}
	return size
}

// placeholderArtwork is a single transparent pixel, used for an empty
// artwork reference
func placeholderArtwork() domain.Artwork {
	px := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	return domain.Artwork{Cover: px}
}
