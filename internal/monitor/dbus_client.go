package monitor

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// MPRIS names on the session bus
const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisPath       = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	playerInterface = "org.mpris.MediaPlayer2.Player"
	propsInterface  = "org.freedesktop.DBus.Properties"

	signalPropertiesChanged = propsInterface + ".PropertiesChanged"
	signalNameOwnerChanged  = "org.freedesktop.DBus.NameOwnerChanged"

	propMetadata       = "Metadata"
	propPlaybackStatus = "PlaybackStatus"
)

// DBusClient is the part of a bus connection the monitor uses.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/synframe/internal/monitor DBusClient
type DBusClient interface {
	Close() error
	AddMatchSignal(options ...dbus.MatchOption) error
	// Signal registers a channel to receive matched signals
	Signal(ch chan<- *dbus.Signal)
	ListNames() ([]string, error)
	// GetNameOwner resolves a well-known name to its unique name (":1.45")
	GetNameOwner(name string) (string, error)
	// PlayerProperties returns every org.mpris.MediaPlayer2.Player property
	// of the player at dest
	PlayerProperties(dest string) (map[string]dbus.Variant, error)
}

// SessionBus is the godbus backed DBusClient
type SessionBus struct {
	conn *dbus.Conn
}

// DialSessionBus connects to the user's session bus
func DialSessionBus() (*SessionBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &SessionBus{conn: conn}, nil
}

func (b *SessionBus) Close() error {
	return b.conn.Close()
}

func (b *SessionBus) AddMatchSignal(options ...dbus.MatchOption) error {
	return b.conn.AddMatchSignal(options...)
}

func (b *SessionBus) Signal(ch chan<- *dbus.Signal) {
	b.conn.Signal(ch)
}

func (b *SessionBus) ListNames() ([]string, error) {
	var names []string
	err := b.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

func (b *SessionBus) GetNameOwner(name string) (string, error) {
	var owner string
	err := b.conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, name).Store(&owner)
	return owner, err
}

func (b *SessionBus) PlayerProperties(dest string) (map[string]dbus.Variant, error) {
	var props map[string]dbus.Variant
	err := b.conn.Object(dest, mprisPath).
		Call(propsInterface+".GetAll", 0, playerInterface).
		Store(&props)
	return props, err
}

// subscribe adds the match rules for player property changes and for
// players appearing and leaving the bus. Only the first is required.
func subscribe(conn DBusClient) (tracking bool, err error) {
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(mprisPath),
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		return false, fmt.Errorf("failed to add PropertiesChanged match: %w", err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	)
	return err == nil, nil
}
