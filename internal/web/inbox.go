package web

import (
	"context"
	"errors"
	"sync"

	"github.com/genricoloni/synframe/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrInboxFull   = errors.New("album update queue is full")
	ErrInboxClosed = errors.New("album update queue is closed")
)

// Inbox is the album update source behind POST /api/v1/album. It satisfies
// domain.Monitor so the engine consumes it like any other source.
type Inbox struct {
	logger *zap.Logger
	events chan domain.AlbumUpdate

	mu     sync.Mutex
	closed bool
	stop   chan struct{}
}

// NewInbox creates an inbox with a small buffer
func NewInbox(logger *zap.Logger) *Inbox {
	return &Inbox{
		logger: logger,
		events: make(chan domain.AlbumUpdate, 10),
		stop:   make(chan struct{}),
	}
}

// Post queues an update without blocking the request
func (i *Inbox) Post(update domain.AlbumUpdate) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return ErrInboxClosed
	}
	select {
	case i.events <- update:
		return nil
	default:
		i.logger.Warn("Album update queue full, rejecting update")
		return ErrInboxFull
	}
}

// Start blocks until Stop is called or ctx is done
func (i *Inbox) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-i.stop:
		return nil
	}
}

// Stop rejects further posts and closes the events channel
func (i *Inbox) Stop(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	close(i.stop)
	close(i.events)
	return nil
}

// Events returns a read-only channel that emits posted album updates
func (i *Inbox) Events() <-chan domain.AlbumUpdate {
	return i.events
}
