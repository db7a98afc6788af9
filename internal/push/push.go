// Package push receives album updates over a websocket push connection
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event names carried in the envelope
const (
	EventAlbumUpdate        = "album_update"
	EventTriggerAlbumUpdate = "trigger_album_update"
)

const (
	DefaultRetryDelay   = 5 * time.Second
	DefaultTriggerDelay = 2 * time.Second
)

// Envelope is the wire format of every push message
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Options configures the push connection
type Options struct {
	// URL is the ws:// or wss:// endpoint
	URL string
	// RetryDelay is the fixed wait before redialing
	RetryDelay time.Duration
	// TriggerDelay is how long after connecting the update request is sent
	TriggerDelay time.Duration
	Dialer       *websocket.Dialer
}

// Monitor keeps one websocket connection open, asks the server for the
// current album once per connection and forwards album_update events
type Monitor struct {
	logger *zap.Logger
	opts   Options
	events chan domain.AlbumUpdate

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	conn    *websocket.Conn
	done    chan struct{}
}

// NewMonitor creates a push monitor; nothing is dialed until Start
func NewMonitor(logger *zap.Logger, opts Options) *Monitor {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.TriggerDelay <= 0 {
		opts.TriggerDelay = DefaultTriggerDelay
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	return &Monitor{
		logger: logger,
		opts:   opts,
		events: make(chan domain.AlbumUpdate, 10),
	}
}

// Events returns a read-only channel that emits album updates
func (m *Monitor) Events() <-chan domain.AlbumUpdate {
	return m.events
}

// Start dials the push endpoint and blocks, redialing after every drop,
// until Stop is called
func (m *Monitor) Start(ctx context.Context) error {
	if m.opts.URL == "" {
		return errors.New("push url is empty")
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	defer close(done)

	m.logger.Info("Push monitor started", zap.String("url", m.opts.URL))
	for {
		if err := m.session(runCtx); err != nil && runCtx.Err() == nil {
			m.logger.Warn("Push connection lost",
				zap.Error(err),
				zap.Duration("retry_in", m.opts.RetryDelay))
		}

		select {
		case <-runCtx.Done():
			m.logger.Info("Push monitor stopped")
			return runCtx.Err()
		case <-time.After(m.opts.RetryDelay):
		}
	}
}

// Stop closes the connection and waits for Start to return
func (m *Monitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.cancel()
	conn, done := m.conn, m.done
	m.mu.Unlock()

	if conn != nil {
		// Unblocks the pending read
		_ = conn.Close()
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	close(m.events)
	return nil
}

// session runs one connection from dial to drop
func (m *Monitor) session(ctx context.Context) error {
	conn, _, err := m.opts.Dialer.DialContext(ctx, m.opts.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial push endpoint: %w", err)
	}

	m.mu.Lock()
	if ctx.Err() != nil {
		m.mu.Unlock()
		_ = conn.Close()
		return ctx.Err()
	}
	m.conn = conn
	m.mu.Unlock()

	id := uuid.NewString()
	log := m.logger.With(zap.String("session", id))
	log.Info("Push connection established")

	var writeMu sync.Mutex
	trigger := time.AfterFunc(m.opts.TriggerDelay, func() {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(Envelope{Event: EventTriggerAlbumUpdate}); err != nil {
			log.Warn("Failed to request album update", zap.Error(err))
			return
		}
		log.Debug("Requested album update")
	})

	defer func() {
		trigger.Stop()
		m.mu.Lock()
		m.conn = nil
		m.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}

		update, ok := m.decode(log, data)
		if !ok {
			continue
		}

		select {
		case m.events <- update:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (m *Monitor) decode(log *zap.Logger, data []byte) (domain.AlbumUpdate, bool) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn("Ignoring malformed push message", zap.Error(err))
		return domain.AlbumUpdate{}, false
	}
	if env.Event != EventAlbumUpdate {
		log.Debug("Ignoring push event", zap.String("event", env.Event))
		return domain.AlbumUpdate{}, false
	}

	var update domain.AlbumUpdate
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &update); err != nil {
			log.Warn("Ignoring malformed album update", zap.Error(err))
			return domain.AlbumUpdate{}, false
		}
	}

	log.Debug("Album update received",
		zap.String("state", string(update.State)),
		zap.String("track", update.Track))
	return update, true
}
