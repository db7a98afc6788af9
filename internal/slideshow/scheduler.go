// Package slideshow decides which rotation surface is visible and keeps the
// shuffled slide order.
package slideshow

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/genricoloni/synframe/internal/domain"
	"go.uber.org/zap"
)

// Options configures the rotation
type Options struct {
	// ClockRatio is the probability in [0,1] that a tick shows the clock
	ClockRatio float64
	// Transition is the tick interval. Rotation is disabled when <= 0.
	Transition time.Duration
	// Rand is the random source for shuffling and clock draws.
	// A randomly seeded source is used when nil.
	Rand *rand.Rand
}

// State is a point-in-time view of the scheduler
type State struct {
	LastShown domain.Surface `json:"last_shown"`
	ShowAlbum bool           `json:"show_album"`
	Slide     string         `json:"slide,omitempty"`
	Slides    int            `json:"slides"`
}

// Scheduler owns the rotation state: the slide set, its shuffle order and
// the cursor into it. Ticks and album overrides are serialized by mu.
type Scheduler struct {
	logger    *zap.Logger
	revealer  domain.Revealer
	activator domain.SlideActivator
	opts      Options

	mu        sync.Mutex
	rng       *rand.Rand
	slides    []domain.Slide
	order     []int
	cursor    int
	showAlbum bool
	lastShown domain.Surface
	started   bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler over a fixed slide set and marks the first slide
// of the shuffle order active. activator may be nil.
func New(
	logger *zap.Logger,
	revealer domain.Revealer,
	activator domain.SlideActivator,
	slides []domain.Slide,
	opts Options,
) *Scheduler {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	opts.ClockRatio = min(max(opts.ClockRatio, 0), 1)

	s := &Scheduler{
		logger:    logger,
		revealer:  revealer,
		activator: activator,
		opts:      opts,
		rng:       rng,
		slides:    slides,
		order:     make([]int, len(slides)),
		lastShown: domain.SurfaceSlideshow,
	}
	for i := range s.order {
		s.order[i] = i
	}
	s.shuffle()

	if len(s.slides) > 0 && s.activator != nil {
		s.activator.Activate(s.slides[s.order[0]])
	}

	logger.Info("Slideshow initialized",
		zap.Int("slides", len(slides)),
		zap.Float64("clockRatio", opts.ClockRatio),
		zap.Duration("transition", opts.Transition))

	return s
}

// Start performs one immediate rotation step and then ticks every
// Transition until Stop is called. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	s.ShowNextSlide()

	if s.opts.Transition <= 0 {
		s.logger.Warn("Transition is not positive, automatic rotation disabled",
			zap.Duration("transition", s.opts.Transition))
		return nil
	}

	// The ticker outlives the start context, which fx cancels after OnStart
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.tick(loopCtx)
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.opts.Transition)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Slideshow ticker stopped")
			return
		case <-ticker.C:
			s.ShowNextSlide()
		}
	}
}

// Stop releases the ticker and waits for it to exit
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.started = false
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Slideshow stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShowNextSlide reveals either the clock or the next slide. It does nothing
// while the album override is active.
func (s *Scheduler) ShowNextSlide() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.showAlbum {
		return
	}

	if s.rng.Float64() < s.opts.ClockRatio {
		s.lastShown = domain.SurfaceClock
		s.revealer.Reveal(domain.SurfaceClock)
		s.logger.Debug("Showing clock")
		return
	}

	s.lastShown = domain.SurfaceSlideshow
	s.revealer.Reveal(domain.SurfaceSlideshow)

	if len(s.slides) == 0 {
		return
	}

	if s.activator != nil {
		s.activator.Deactivate(s.slides[s.order[s.cursor]])
	}
	s.advance()
	current := s.slides[s.order[s.cursor]]
	if s.activator != nil {
		s.activator.Activate(current)
	}

	s.logger.Debug("Showing next slide", zap.String("slide", current.ID), zap.Int("cursor", s.cursor))
}

// SetShowAlbum toggles album override. Leaving override reveals the surface
// that was last shown by the rotation without stepping it.
func (s *Scheduler) SetShowAlbum(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.showAlbum != active {
		s.logger.Debug("Album override changed", zap.Bool("active", active))
	}
	s.showAlbum = active
	if !active {
		s.revealer.Reveal(s.lastShown)
	}
}

// State returns a snapshot of the rotation
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		LastShown: s.lastShown,
		ShowAlbum: s.showAlbum,
		Slides:    len(s.slides),
	}
	if len(s.slides) > 0 {
		st.Slide = s.slides[s.order[s.cursor]].ID
	}
	return st
}

// advance moves the cursor, reshuffling when a cycle completes
func (s *Scheduler) advance() {
	s.cursor++
	if s.cursor < len(s.order) {
		return
	}

	last := s.order[len(s.order)-1]
	s.cursor = 0
	s.shuffle()

	// A new cycle never starts with the slide that ended the previous one
	if len(s.order) > 1 && s.order[0] == last {
		s.order[0], s.order[1] = s.order[1], s.order[0]
	}
	s.logger.Debug("Slide order reshuffled", zap.Ints("order", s.order))
}

// shuffle is a Fisher-Yates shuffle of the order in place
func (s *Scheduler) shuffle() {
	for i := len(s.order) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}
}
