package render

import (
	"context"
	"image"
	"image/draw"
	"sync"
	"time"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/genricoloni/synframe/internal/render/layout"
	"github.com/genricoloni/synframe/internal/slides"
	"go.uber.org/zap"
)

// Options configures the display geometry
type Options struct {
	Width  int
	Height int
	// ClockSize caps the clock side in pixels when > 0
	ClockSize int
	// ClockOffset pads the clock from the top edge
	ClockOffset int
	// Location is the clock's time zone, local time when nil
	Location *time.Location
	// Interval is the redraw period while the clock is visible
	Interval time.Duration
}

// Display owns what is on screen. It implements domain.Revealer,
// domain.SlideActivator and domain.AlbumView; every change schedules a
// redraw on the render loop.
type Display struct {
	logger    *zap.Logger
	sink      Sink
	faces     FaceSource
	processor domain.ImageProcessor
	opts      Options
	now       func() time.Time

	mu      sync.Mutex
	surface domain.Surface
	slide   *domain.Slide
	album   domain.AlbumSnapshot
	cached  cachedSlide
	frame   *image.RGBA

	dirty  chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type cachedSlide struct {
	id  string
	img image.Image
}

// NewDisplay creates a display that renders at opts.Width x opts.Height
func NewDisplay(logger *zap.Logger, sink Sink, faces FaceSource, processor domain.ImageProcessor, opts Options) *Display {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	return &Display{
		logger:    logger,
		sink:      sink,
		faces:     faces,
		processor: processor,
		opts:      opts,
		now:       time.Now,
		dirty:     make(chan struct{}, 1),
	}
}

// Reveal makes exactly one surface visible. Repeating the current surface
// does nothing.
func (d *Display) Reveal(surface domain.Surface) {
	d.mu.Lock()
	if d.surface == surface {
		d.mu.Unlock()
		return
	}
	d.surface = surface
	d.mu.Unlock()

	d.logger.Debug("Surface revealed", zap.Stringer("surface", surface))
	d.markDirty()
}

// Activate sets the slide shown on the slideshow surface
func (d *Display) Activate(slide domain.Slide) {
	d.mu.Lock()
	d.slide = &slide
	d.mu.Unlock()
	d.markDirty()
}

// Deactivate clears the active slide if it is the given one
func (d *Display) Deactivate(slide domain.Slide) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slide != nil && d.slide.ID == slide.ID {
		d.slide = nil
	}
}

// SetAlbum replaces the album snapshot
func (d *Display) SetAlbum(snapshot domain.AlbumSnapshot) {
	d.mu.Lock()
	d.album = snapshot
	d.mu.Unlock()
	d.markDirty()
}

// Surface returns the visible surface
func (d *Display) Surface() domain.Surface {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.surface
}

// Frame returns the last presented frame, or nil before the first one
func (d *Display) Frame() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		return nil
	}
	return d.frame
}

// Start launches the render loop. It returns immediately.
func (d *Display) Start(ctx context.Context) error {
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	d.wg.Add(1)
	go d.runLoop(loopCtx)

	d.logger.Info("Display started",
		zap.Int("width", d.opts.Width),
		zap.Int("height", d.opts.Height))
	return nil
}

// Stop ends the render loop and closes the sink
func (d *Display) Stop(ctx context.Context) error {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
		d.wg.Wait()
	}
	return d.sink.Close()
}

func (d *Display) runLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("Render loop stopped")
			return
		case <-d.dirty:
			d.Redraw()
		case <-ticker.C:
			// Only the clock changes on its own
			if d.Surface() == domain.SurfaceClock {
				d.Redraw()
			}
		}
	}
}

// Redraw renders the current state and presents it to the sink
func (d *Display) Redraw() {
	frame := d.Render()

	if err := d.sink.Present(frame); err != nil {
		d.logger.Warn("Failed to present frame", zap.Error(err))
	}

	d.mu.Lock()
	d.frame = frame
	d.mu.Unlock()
}

// Render draws the visible surface into a new frame
func (d *Display) Render() *image.RGBA {
	d.mu.Lock()
	surface := d.surface
	album := d.album
	var slide *domain.Slide
	if d.slide != nil {
		s := *d.slide
		slide = &s
	}
	d.mu.Unlock()

	frame := image.NewRGBA(image.Rect(0, 0, d.opts.Width, d.opts.Height))
	draw.Draw(frame, frame.Bounds(), image.Black, image.Point{}, draw.Src)

	switch surface {
	case domain.SurfaceSlideshow:
		if slide != nil {
			d.drawSlide(frame, *slide)
		}
	case domain.SurfaceClock:
		now := d.now()
		if d.opts.Location != nil {
			now = now.In(d.opts.Location)
		}
		rect := ClockRect(frame.Bounds(), d.opts.ClockSize, d.opts.ClockOffset)
		drawClock(frame, rect, now, d.faces)
	case domain.SurfaceAlbum:
		drawAlbum(frame, album, d.faces)
	}

	return frame
}

func (d *Display) drawSlide(frame *image.RGBA, slide domain.Slide) {
	img := d.slideImage(slide)
	if img == nil {
		return
	}
	target := layout.FitAspect(frame.Bounds(), img.Bounds().Size())
	if target.Size() == img.Bounds().Size() {
		draw.Draw(frame, target, img, img.Bounds().Min, draw.Src)
		return
	}
	scaleInto(frame, target, img)
}

// slideImage decodes and scales a slide once and keeps the last one
func (d *Display) slideImage(slide domain.Slide) image.Image {
	d.mu.Lock()
	if d.cached.id == slide.ID && d.cached.img != nil {
		img := d.cached.img
		d.mu.Unlock()
		return img
	}
	d.mu.Unlock()

	img, err := slides.Open(slide)
	if err != nil {
		d.logger.Warn("Failed to open slide", zap.String("slide", slide.ID), zap.Error(err))
		return nil
	}
	if d.processor != nil {
		img = d.processor.Slide(img)
	}

	d.mu.Lock()
	d.cached = cachedSlide{id: slide.ID, img: img}
	d.mu.Unlock()
	return img
}

func (d *Display) markDirty() {
	select {
	case d.dirty <- struct{}{}:
	default:
	}
}
