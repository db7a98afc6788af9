//go:build linux

package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// dropWarnInterval rate limits the "buffer full" warning
const dropWarnInterval = 5 * time.Second

// dialBus is replaced in tests
var dialBus = func() (DBusClient, error) { return DialSessionBus() }

// MprisMonitor turns local media players into an album update source by
// following the D-Bus MPRIS interface
type MprisMonitor struct {
	logger  *zap.Logger
	events  chan domain.AlbumUpdate
	players *players

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	conn     DBusClient
	lastDrop time.Time

	// wg tracks every goroutine that may send on events
	wg sync.WaitGroup
}

// NewMprisMonitor creates a new MPRIS monitor instance
func NewMprisMonitor(logger *zap.Logger) *MprisMonitor {
	return &MprisMonitor{
		logger:  logger,
		events:  make(chan domain.AlbumUpdate, 10),
		players: newPlayers(),
	}
}

// Start connects to the session bus and blocks until Stop is called or ctx
// is cancelled
func (m *MprisMonitor) Start(ctx context.Context) error {
	runCtx, ok := m.begin(ctx)
	if !ok {
		return nil
	}

	conn, err := dialBus()
	if err != nil {
		m.mu.Lock()
		m.running = false
		m.cancel = nil
		m.mu.Unlock()
		return fmt.Errorf("MPRIS monitor: %w", err)
	}

	m.mu.Lock()
	stopped := runCtx.Err() != nil
	if !stopped {
		m.conn = conn
	}
	m.mu.Unlock()
	if stopped {
		_ = conn.Close()
		return runCtx.Err()
	}

	tracking, err := subscribe(conn)
	if err != nil {
		return err
	}
	if !tracking {
		m.logger.Warn("Players started later will not be noticed")
	}

	// Stop may have run meanwhile; it must not wait before the producers exist
	m.mu.Lock()
	if err := runCtx.Err(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.wg.Add(2)
	m.mu.Unlock()

	go m.listen(runCtx, conn)
	go func() {
		defer m.wg.Done()
		if err := m.scan(conn); err != nil {
			m.logger.Warn("Failed to list running players", zap.Error(err))
		}
	}()

	m.logger.Info("MPRIS monitor started")
	<-runCtx.Done()
	return runCtx.Err()
}

// begin marks the monitor running; false when it already was
func (m *MprisMonitor) begin(ctx context.Context) (context.Context, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil, false
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.running = true
	m.cancel = cancel
	return runCtx, true
}

// Stop cancels Start, waits for the producers and closes Events
func (m *MprisMonitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.cancel()
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	m.wg.Wait()
	close(m.events)

	if conn != nil {
		if err := conn.Close(); err != nil {
			m.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
		}
	}
	m.logger.Info("MPRIS monitor stopped")
	return nil
}

// Events returns a read-only channel that emits album updates
func (m *MprisMonitor) Events() <-chan domain.AlbumUpdate {
	return m.events
}

// scan registers the players already on the bus and emits their state
func (m *MprisMonitor) scan(conn DBusClient) error {
	names, err := conn.ListNames()
	if err != nil {
		return fmt.Errorf("failed to list bus names: %w", err)
	}

	for _, name := range names {
		if !isPlayer(name) {
			continue
		}
		if unique, err := conn.GetNameOwner(name); err == nil {
			m.players.add(unique, name)
		}
		m.refresh(conn, name)
	}

	m.logger.Info("Player scan complete", zap.Int("players", m.players.len()))
	return nil
}

// refresh reads the full state of one player and emits it
func (m *MprisMonitor) refresh(conn DBusClient, dest string) {
	props, err := conn.PlayerProperties(dest)
	if err != nil {
		m.logger.Warn("Failed to read player", zap.String("player", dest), zap.Error(err))
		return
	}
	update, err := decodeProperties(props)
	if err != nil {
		m.logger.Debug("Ignoring player state", zap.String("player", dest), zap.Error(err))
		return
	}
	m.emit(dest, update)
}

func (m *MprisMonitor) listen(ctx context.Context, conn DBusClient) {
	defer m.wg.Done()

	signals := make(chan *dbus.Signal, 10)
	conn.Signal(signals)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-signals:
			if sig == nil {
				continue
			}
			if sig.Name == signalNameOwnerChanged {
				m.onOwnerChanged(conn, sig)
			} else {
				m.onPropertiesChanged(conn, sig)
			}
		}
	}
}

func (m *MprisMonitor) onOwnerChanged(conn DBusClient, sig *dbus.Signal) {
	change, name := m.players.ownerChanged(sig.Body)
	switch change {
	case ownerAppeared:
		m.logger.Info("MPRIS player appeared", zap.String("player", name))
		m.refresh(conn, name)
	case ownerVanished:
		m.logger.Info("MPRIS player left", zap.String("player", name))
	}
}

// onPropertiesChanged emits the player state when its track or playback
// status changed. A signal carrying only one of the two is completed from
// the player's current properties.
func (m *MprisMonitor) onPropertiesChanged(conn DBusClient, sig *dbus.Signal) {
	changed, ok := changedPlayerProps(sig)
	if !ok {
		return
	}
	_, hasMeta := changed[propMetadata]
	_, hasStatus := changed[propPlaybackStatus]
	if !hasMeta && !hasStatus {
		return
	}

	props := changed
	if !hasMeta || !hasStatus {
		if current, err := conn.PlayerProperties(sig.Sender); err == nil {
			props = overlay(current, changed)
		}
	}

	update, err := decodeProperties(props)
	if err != nil {
		m.logger.Warn("Ignoring malformed player signal", zap.String("sender", sig.Sender), zap.Error(err))
		return
	}
	m.emit(m.players.name(sig.Sender), update)
}

// emit queues update without blocking. When the buffer is full the oldest
// queued update is dropped: only the latest one matters.
func (m *MprisMonitor) emit(player string, update domain.AlbumUpdate) {
	for {
		select {
		case m.events <- update:
			m.logger.Info("Player state changed",
				zap.String("player", player),
				zap.String("state", string(update.State)),
				zap.String("artist", update.Artist),
				zap.String("track", update.Track))
			return
		default:
		}

		select {
		case <-m.events:
			m.warnDropped()
		default:
		}
	}
}

func (m *MprisMonitor) warnDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now := time.Now(); now.Sub(m.lastDrop) >= dropWarnInterval {
		m.logger.Warn("Album update buffer full, dropping the oldest update")
		m.lastDrop = now
	}
}
