//go:build linux

package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// staticBus answers PlayerProperties with fixed values
type staticBus struct {
	props map[string]dbus.Variant
	err   error
}

func (b *staticBus) Close() error                             { return nil }
func (b *staticBus) AddMatchSignal(...dbus.MatchOption) error { return nil }
func (b *staticBus) Signal(chan<- *dbus.Signal)               {}
func (b *staticBus) ListNames() ([]string, error)             { return nil, nil }
func (b *staticBus) GetNameOwner(string) (string, error)      { return "", errors.New("unknown") }
func (b *staticBus) PlayerProperties(string) (map[string]dbus.Variant, error) {
	return b.props, b.err
}

var offline = &staticBus{err: errors.New("no reply")}

func propertiesChanged(sender string, props map[string]dbus.Variant) *dbus.Signal {
	return &dbus.Signal{
		Name:   signalPropertiesChanged,
		Sender: sender,
		Body:   []any{playerInterface, props, []string{}},
	}
}

func nextEvent(t *testing.T, m *MprisMonitor) domain.AlbumUpdate {
	t.Helper()
	select {
	case update := <-m.Events():
		return update
	case <-time.After(time.Second):
		t.Fatal("no album update emitted")
		return domain.AlbumUpdate{}
	}
}

func assertNoEvent(t *testing.T, m *MprisMonitor) {
	t.Helper()
	select {
	case update := <-m.Events():
		t.Fatalf("unexpected album update %+v", update)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOnPropertiesChanged_Playing(t *testing.T) {
	m := NewMprisMonitor(zap.NewNop())
	m.players.add(":1.100", "org.mpris.MediaPlayer2.spotify")

	m.onPropertiesChanged(offline, propertiesChanged(":1.100", map[string]dbus.Variant{
		propMetadata: dbus.MakeVariant(map[string]dbus.Variant{
			"xesam:title":  dbus.MakeVariant("Bohemian Rhapsody"),
			"xesam:album":  dbus.MakeVariant("A Night at the Opera"),
			"xesam:artist": dbus.MakeVariant([]string{"Queen"}),
			"mpris:artUrl": dbus.MakeVariant("https://example.com/cover.jpg"),
		}),
		propPlaybackStatus: dbus.MakeVariant("Playing"),
	}))

	update := nextEvent(t, m)
	assert.Equal(t, domain.StatePlaying, update.State)
	assert.Equal(t, "Queen", update.Artist)
	assert.Equal(t, "A Night at the Opera", update.Title)
	assert.Equal(t, "Bohemian Rhapsody", update.Track)
	require.NotNil(t, update.URL)
	assert.Equal(t, "https://example.com/cover.jpg", *update.URL)
}

func TestOnPropertiesChanged_Ignored(t *testing.T) {
	tests := []struct {
		name   string
		signal *dbus.Signal
	}{
		{
			name:   "Wrong signal name",
			signal: &dbus.Signal{Name: "org.freedesktop.DBus.SomeOtherSignal"},
		},
		{
			name: "Wrong interface",
			signal: &dbus.Signal{
				Name: signalPropertiesChanged,
				Body: []any{"org.mpris.MediaPlayer2", map[string]dbus.Variant{}, []string{}},
			},
		},
		{
			name:   "Short body",
			signal: &dbus.Signal{Name: signalPropertiesChanged, Body: []any{playerInterface}},
		},
		{
			name: "Unrelated property",
			signal: propertiesChanged(":1.9", map[string]dbus.Variant{
				"Volume": dbus.MakeVariant(0.5),
			}),
		},
		{
			name: "Metadata is not a map",
			signal: propertiesChanged(":1.9", map[string]dbus.Variant{
				propMetadata: dbus.MakeVariant(12345),
			}),
		},
		{
			name: "Status is not a string",
			signal: propertiesChanged(":1.9", map[string]dbus.Variant{
				propPlaybackStatus: dbus.MakeVariant([]string{"Playing"}),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMprisMonitor(zap.NewNop())
			m.onPropertiesChanged(offline, tt.signal)
			assertNoEvent(t, m)
		})
	}
}

func TestOnPropertiesChanged_CompletesPartialSignal(t *testing.T) {
	bus := &staticBus{props: map[string]dbus.Variant{
		propMetadata: dbus.MakeVariant(map[string]dbus.Variant{
			"xesam:title": dbus.MakeVariant("So What"),
			"xesam:album": dbus.MakeVariant("Kind of Blue"),
		}),
		propPlaybackStatus: dbus.MakeVariant("Paused"),
	}}

	m := NewMprisMonitor(zap.NewNop())
	m.onPropertiesChanged(bus, propertiesChanged(":1.5", map[string]dbus.Variant{
		propPlaybackStatus: dbus.MakeVariant("Playing"),
	}))

	update := nextEvent(t, m)
	// The signal's status wins over the stale one read back
	assert.Equal(t, domain.StatePlaying, update.State)
	assert.Equal(t, "Kind of Blue", update.Title)
	assert.Equal(t, "So What", update.Track)
}

func TestOnPropertiesChanged_StatusOnlyWithoutReadBack(t *testing.T) {
	m := NewMprisMonitor(zap.NewNop())
	m.onPropertiesChanged(offline, propertiesChanged(":1.5", map[string]dbus.Variant{
		propPlaybackStatus: dbus.MakeVariant("Paused"),
	}))

	update := nextEvent(t, m)
	assert.Equal(t, domain.StatePaused, update.State)
	assert.Nil(t, update.URL)
}

func TestEmit_KeepsLatest(t *testing.T) {
	m := NewMprisMonitor(zap.NewNop())
	for i := range cap(m.events) + 3 {
		m.emit("player", domain.AlbumUpdate{Track: string(rune('a' + i))})
	}

	require.Len(t, m.events, cap(m.events))
	var last domain.AlbumUpdate
	for len(m.events) > 0 {
		last = <-m.events
	}
	assert.Equal(t, string(rune('a'+cap(m.events)+2)), last.Track)
}

func TestOnOwnerChanged_RefreshesNewPlayer(t *testing.T) {
	bus := &staticBus{props: map[string]dbus.Variant{
		propPlaybackStatus: dbus.MakeVariant("Stopped"),
	}}
	m := NewMprisMonitor(zap.NewNop())

	m.onOwnerChanged(bus, &dbus.Signal{
		Name: signalNameOwnerChanged,
		Body: []any{"org.mpris.MediaPlayer2.vlc", "", ":1.60"},
	})

	assert.Equal(t, "org.mpris.MediaPlayer2.vlc", m.players.name(":1.60"))
	assert.Equal(t, domain.StateStopped, nextEvent(t, m).State)

	m.onOwnerChanged(bus, &dbus.Signal{
		Name: signalNameOwnerChanged,
		Body: []any{"org.mpris.MediaPlayer2.vlc", ":1.60", ""},
	})
	assert.Equal(t, 0, m.players.len())
	assertNoEvent(t, m)
}
