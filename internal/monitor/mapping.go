package monitor

import (
	"errors"
	"fmt"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/godbus/dbus/v5"
)

var errBadProperty = errors.New("unexpected property type")

// changedPlayerProps extracts the changed properties of a PropertiesChanged
// signal for the MPRIS player interface. Body: interface name, changed
// properties, invalidated property names.
func changedPlayerProps(sig *dbus.Signal) (map[string]dbus.Variant, bool) {
	if sig.Name != signalPropertiesChanged || len(sig.Body) < 2 {
		return nil, false
	}
	if iface, ok := sig.Body[0].(string); !ok || iface != playerInterface {
		return nil, false
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	return changed, ok
}

// decodeProperties reads Metadata and PlaybackStatus out of a player
// property map. Missing properties are empty; present ones with the wrong
// type are an error.
func decodeProperties(props map[string]dbus.Variant) (domain.AlbumUpdate, error) {
	var (
		metadata map[string]dbus.Variant
		status   string
	)
	if v, ok := props[propMetadata]; ok {
		if metadata, ok = v.Value().(map[string]dbus.Variant); !ok {
			return domain.AlbumUpdate{}, fmt.Errorf("%w: %s is %T", errBadProperty, propMetadata, v.Value())
		}
	}
	if v, ok := props[propPlaybackStatus]; ok {
		if status, ok = v.Value().(string); !ok {
			return domain.AlbumUpdate{}, fmt.Errorf("%w: %s is %T", errBadProperty, propPlaybackStatus, v.Value())
		}
	}
	return toAlbumUpdate(readMetadata(metadata, status)), nil
}

// readMetadata picks the xesam/mpris fields the frame shows
func readMetadata(metadata map[string]dbus.Variant, status string) domain.MediaMetadata {
	meta := domain.MediaMetadata{Status: domain.StatusStopped}
	switch status {
	case "Playing":
		meta.Status = domain.StatusPlaying
	case "Paused":
		meta.Status = domain.StatusPaused
	}

	str := func(key string) string {
		s, _ := metadata[key].Value().(string)
		return s
	}
	meta.Title = str("xesam:title")
	meta.Album = str("xesam:album")
	meta.ArtUrl = str("mpris:artUrl")

	// xesam:artist is a list, some players send a plain string
	switch artists := metadata["xesam:artist"].Value().(type) {
	case []string:
		if len(artists) > 0 {
			meta.Artist = artists[0]
		}
	case string:
		meta.Artist = artists
	}
	return meta
}

// toAlbumUpdate maps a player's now-playing state onto an album update.
// MPRIS has no album-level title line, so the album name fills the title and
// the track title fills the track. A playing player always carries an
// artwork reference; an empty one selects the placeholder cover.
func toAlbumUpdate(meta domain.MediaMetadata) domain.AlbumUpdate {
	update := domain.AlbumUpdate{
		Artist: meta.Artist,
		Title:  meta.Album,
		Track:  meta.Title,
	}

	switch meta.Status {
	case domain.StatusPlaying:
		update.State = domain.StatePlaying
		url := meta.ArtUrl
		update.URL = &url
	case domain.StatusPaused:
		update.State = domain.StatePaused
	default:
		update.State = domain.StateStopped
	}
	return update
}

// overlay returns base with changed applied on top
func overlay(base, changed map[string]dbus.Variant) map[string]dbus.Variant {
	merged := make(map[string]dbus.Variant, len(base)+len(changed))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range changed {
		merged[k] = v
	}
	return merged
}
