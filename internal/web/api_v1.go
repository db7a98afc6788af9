package web

import (
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/synframe/internal/domain"
	"github.com/genricoloni/synframe/internal/processor"
	"github.com/genricoloni/synframe/internal/push"
	"github.com/genricoloni/synframe/internal/slideshow"
)

const (
	// maxAlbumBody leaves room for artwork sent inline as a data URI
	maxAlbumBody = 16 << 20

	maxArtworkSide     = 4096
	defaultArtworkW    = 1024
	defaultArtworkH    = 600
	defaultQRCodeSide  = 256
	maxQRCodeSide      = 1024
	frameJPEGQuality   = 85
	artworkJPEGQuality = 85
)

// SchedulerState exposes the rotation state
type SchedulerState interface {
	State() slideshow.State
}

// AlbumState exposes the album currently laid out
type AlbumState interface {
	Snapshot() domain.AlbumSnapshot
}

// Screen exposes what is on the display
type Screen interface {
	Surface() domain.Surface
	Frame() image.Image
}

// APIV1Deps are the collaborators behind the /api/v1 routes. Nil members
// answer 501.
type APIV1Deps struct {
	Scheduler SchedulerState
	Album     AlbumState
	Screen    Screen
	Inbox     *Inbox
	// PublicURL is encoded in the QR code; the request host is used when empty
	PublicURL string
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type pingResponse struct {
	Message string `json:"message"`
}

type albumResponse struct {
	URL        string `json:"url"`
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	Track      string `json:"track"`
	State      string `json:"state"`
	ArtistSize int    `json:"artist_size"`
	TitleSize  int    `json:"title_size"`
}

type stateResponse struct {
	Surface   string           `json:"surface"`
	Slideshow *slideshow.State `json:"slideshow,omitempty"`
	Album     *albumResponse   `json:"album,omitempty"`
}

// albumRequest accepts the push envelope or a bare update
type albumRequest struct {
	Event string              `json:"event"`
	Data  *domain.AlbumUpdate `json:"data"`
	domain.AlbumUpdate
}

func apiV1Router(deps APIV1Deps) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/album", func(w http.ResponseWriter, r *http.Request) { handleAlbum(w, r, deps) })
	mux.HandleFunc("/frame.jpg", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/artwork.jpg", func(w http.ResponseWriter, r *http.Request) { handleArtwork(w, r, deps) })
	mux.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) { handleQRCode(w, r, deps) })
	return mux
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pingResponse{Message: "pong"})
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var resp stateResponse
	if deps.Screen != nil {
		resp.Surface = deps.Screen.Surface().String()
	}
	if deps.Scheduler != nil {
		st := deps.Scheduler.State()
		resp.Slideshow = &st
	}
	if deps.Album != nil {
		snap := deps.Album.Snapshot()
		resp.Album = &albumResponse{
			URL:        snap.ArtworkURL,
			Artist:     snap.Artist,
			Title:      snap.Title,
			Track:      snap.Track,
			State:      string(snap.State),
			ArtistSize: snap.ArtistSize,
			TitleSize:  snap.TitleSize,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleAlbum(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Inbox == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "album updates not configured")
		return
	}

	var req albumRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAlbumBody)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if req.Event != "" && req.Event != push.EventAlbumUpdate {
		writeAPIError(w, http.StatusBadRequest, "invalid_event", "unsupported event "+strconv.Quote(req.Event))
		return
	}

	update := req.AlbumUpdate
	if req.Data != nil {
		update = *req.Data
	}

	if err := deps.Inbox.Post(update); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, ErrInboxFull) {
			status = http.StatusTooManyRequests
		}
		writeAPIError(w, status, "rejected", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Screen == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "display not configured")
		return
	}

	frame := deps.Screen.Frame()
	if frame == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "nothing rendered yet")
		return
	}
	writeImage(w, frame, imaging.JPEG, imaging.JPEGQuality(frameJPEGQuality))
}

// handleArtwork composes the current album artwork as a standalone preview
func handleArtwork(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Album == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "album not configured")
		return
	}

	width, err := sizeParam(r, "w", defaultArtworkW, maxArtworkSide)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_size", err.Error())
		return
	}
	height, err := sizeParam(r, "h", defaultArtworkH, maxArtworkSide)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_size", err.Error())
		return
	}

	art := deps.Album.Snapshot().Artwork
	if art.Cover == nil && art.Background == nil {
		writeAPIError(w, http.StatusNotFound, "no_artwork", "no album artwork loaded")
		return
	}
	writeImage(w, processor.Compose(art, width, height), imaging.JPEG, imaging.JPEGQuality(artworkJPEGQuality))
}

func handleQRCode(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	size, err := sizeParam(r, "size", defaultQRCodeSide, maxQRCodeSide)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_size", err.Error())
		return
	}

	payload := deps.PublicURL
	if payload == "" {
		payload = "http://" + r.Host + "/"
	}

	img, err := deviceQRCode(payload, size)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", "failed to generate qr code")
		return
	}
	writeImage(w, img, imaging.PNG)
}

func sizeParam(r *http.Request, name string, def, maxValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > maxValue {
		return 0, errors.New(name + " must be between 1 and " + strconv.Itoa(maxValue))
	}
	return v, nil
}

func writeImage(w http.ResponseWriter, img image.Image, format imaging.Format, opts ...imaging.EncodeOption) {
	switch format {
	case imaging.PNG:
		w.Header().Set("Content-Type", "image/png")
	default:
		w.Header().Set("Content-Type", "image/jpeg")
	}
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = imaging.Encode(w, img, format, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
