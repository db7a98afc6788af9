package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/genricoloni/synframe/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// UpdateHandler applies one album update; implemented by album.Handler
type UpdateHandler interface {
	Handle(ctx context.Context, update domain.AlbumUpdate)
}

// Observer sees every applied update after the handler
type Observer interface {
	Observe(update domain.AlbumUpdate)
}

// Engine merges the album update sources and applies updates one at a time
type Engine struct {
	logger    *zap.Logger
	monitors  []domain.Monitor
	handler   UpdateHandler
	observers []Observer

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates a new orchestration engine
func NewEngine(
	logger *zap.Logger,
	monitors []domain.Monitor,
	handler UpdateHandler,
	observers []Observer,
) *Engine {
	return &Engine{
		logger:    logger,
		monitors:  monitors,
		handler:   handler,
		observers: observers,
	}
}

// Start launches the monitors and the event processing loop.
// It returns immediately (non-blocking).
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...", zap.Int("sources", len(e.monitors)))

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	merged := make(chan domain.AlbumUpdate)
	for _, mon := range e.monitors {
		e.wg.Add(2)
		go e.runMonitor(runCtx, mon)
		go e.forward(runCtx, mon.Events(), merged)
	}

	e.wg.Add(1)
	go e.runLoop(runCtx, merged)
	return nil
}

// runMonitor keeps a monitor's blocking Start off the lifecycle goroutine
func (e *Engine) runMonitor(ctx context.Context, mon domain.Monitor) {
	defer e.wg.Done()
	if err := mon.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		e.logger.Warn("Album update source failed", zap.Error(err))
	}
}

// forward copies one source into the merged stream until it closes
func (e *Engine) forward(ctx context.Context, in <-chan domain.AlbumUpdate, out chan<- domain.AlbumUpdate) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- update:
			case <-ctx.Done():
				return
			}
		}
	}
}

// runLoop applies updates one at a time, in arrival order. Every update
// counts: a playing update redraws the album even when another follows
// right after it.
func (e *Engine) runLoop(ctx context.Context, events <-chan domain.AlbumUpdate) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return

		case update := <-events:
			e.logger.Debug("Album update received",
				zap.String("state", string(update.State)),
				zap.String("track", update.Track))
			e.apply(ctx, update)
		}
	}
}

func (e *Engine) apply(ctx context.Context, update domain.AlbumUpdate) {
	e.handler.Handle(ctx, update)
	for _, o := range e.observers {
		o.Observe(update)
	}
}

// Stop stops every source and waits for the loop to finish
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	var err error
	for _, mon := range e.monitors {
		err = multierr.Append(err, mon.Stop(ctx))
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}
	return err
}
