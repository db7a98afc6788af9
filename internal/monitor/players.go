package monitor

import (
	"strings"
	"sync"
)

// ownerChange classifies a NameOwnerChanged signal
type ownerChange int

const (
	ownerIgnored ownerChange = iota
	ownerAppeared
	ownerVanished
	ownerMoved
)

// players maps unique bus names (":1.45") to MPRIS well-known names
// ("org.mpris.MediaPlayer2.spotify"). Signals carry the unique name only.
type players struct {
	mu    sync.RWMutex
	names map[string]string
}

func newPlayers() *players {
	return &players{names: make(map[string]string)}
}

func isPlayer(name string) bool {
	return strings.HasPrefix(name, mprisPrefix)
}

func (p *players) add(unique, name string) {
	p.mu.Lock()
	p.names[unique] = name
	p.mu.Unlock()
}

// name returns the well-known name for unique, or unique itself when the
// player is not known
func (p *players) name(unique string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if name, ok := p.names[unique]; ok {
		return name
	}
	return unique
}

func (p *players) len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.names)
}

// ownerChanged applies a NameOwnerChanged body (name, old owner, new owner)
func (p *players) ownerChanged(body []any) (ownerChange, string) {
	if len(body) < 3 {
		return ownerIgnored, ""
	}
	name, ok := body[0].(string)
	if !ok || !isPlayer(name) {
		return ownerIgnored, ""
	}
	oldOwner, _ := body[1].(string)
	newOwner, _ := body[2].(string)

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case oldOwner == "" && newOwner != "":
		p.names[newOwner] = name
		return ownerAppeared, name
	case oldOwner != "" && newOwner == "":
		delete(p.names, oldOwner)
		return ownerVanished, name
	case oldOwner != "" && newOwner != "":
		delete(p.names, oldOwner)
		p.names[newOwner] = name
		return ownerMoved, name
	}
	return ownerIgnored, name
}
