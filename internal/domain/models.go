package domain

import "image"

// PlayerStatus represents the current state of the media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// MediaMetadata contains information about the currently playing media
// as reported by a local MPRIS player
type MediaMetadata struct {
	// Title of the currently playing track
	Title string
	// Artist name
	Artist string
	// Album name
	Album string
	// ArtUrl is the URL or local path to the album artwork
	ArtUrl string
	// Status is the current playback status
	Status PlayerStatus
}

// ScreenResolution holds the display dimensions
type ScreenResolution struct {
	Width  int
	Height int
}

// Surface identifies one of the mutually exclusive display regions.
// SurfaceNone is the hide-all sentinel.
type Surface string

const (
	SurfaceNone      Surface = ""
	SurfaceSlideshow Surface = "slideshow"
	SurfaceClock     Surface = "clock"
	SurfaceAlbum     Surface = "album"
)

// String returns a printable name; the hide-all sentinel prints as "none"
func (s Surface) String() string {
	if s == SurfaceNone {
		return "none"
	}
	return string(s)
}

// PlaybackState is the playback state carried by an album update.
// Values other than the named ones are accepted and treated as inactive.
type PlaybackState string

const (
	StatePlaying PlaybackState = "playing"
	StateLoading PlaybackState = "loading"
	StatePaused  PlaybackState = "paused"
	StateStopped PlaybackState = "stopped"
)

// Active reports whether the album surface should be shown for this state
func (s PlaybackState) Active() bool {
	return s == StatePlaying || s == StateLoading
}

// AlbumUpdate is the payload of an inbound album_update event.
// URL and DisplayState are pointers because their presence matters.
type AlbumUpdate struct {
	URL          *string       `json:"url,omitempty"`
	Artist       string        `json:"artist,omitempty"`
	Title        string        `json:"title,omitempty"`
	Track        string        `json:"track,omitempty"`
	State        PlaybackState `json:"state,omitempty"`
	DisplayState *bool         `json:"display_state,omitempty"`
}

// HidesDisplay reports whether the update explicitly asks to hide everything
func (u AlbumUpdate) HidesDisplay() bool {
	return u.DisplayState != nil && !*u.DisplayState
}

// Artwork is a decoded album cover prepared for the album surface
type Artwork struct {
	// Background is the blurred full-screen backdrop
	Background image.Image
	// Cover is the sharp, resized cover
	Cover image.Image
}

// AlbumSnapshot is what the album surface draws. It is replaced wholesale.
type AlbumSnapshot struct {
	ArtworkURL string
	Artwork    Artwork
	Artist     string
	Title      string
	Track      string

	// Fitted font sizes in pixels. Title and track always share a size.
	ArtistSize int
	TitleSize  int

	State PlaybackState
}

// Slide is one entry of the slide set
type Slide struct {
	// ID is the stable identifier (file name or generated name)
	ID string
	// Path is the image location on disk, empty for generated slides
	Path string
	// Image holds generated slides that have no backing file
	Image image.Image
}
