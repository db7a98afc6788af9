package web

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/synframe/internal/domain"
	"github.com/genricoloni/synframe/internal/slideshow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeScheduler struct{ state slideshow.State }

func (f fakeScheduler) State() slideshow.State { return f.state }

type fakeAlbum struct{ snap domain.AlbumSnapshot }

func (f fakeAlbum) Snapshot() domain.AlbumSnapshot { return f.snap }

type fakeScreen struct {
	surface domain.Surface
	frame   image.Image
}

func (f fakeScreen) Surface() domain.Surface { return f.surface }
func (f fakeScreen) Frame() image.Image      { return f.frame }

func newTestServer(t *testing.T, deps APIV1Deps, dev bool) *httptest.Server {
	t.Helper()
	s := NewHTTPServer(zap.NewNop(), ServerConfig{DevMode: dev}, deps)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, APIV1Deps{}, false)

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body pingResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "pong", body.Message)
}

func TestState(t *testing.T) {
	srv := newTestServer(t, APIV1Deps{
		Scheduler: fakeScheduler{slideshow.State{LastShown: domain.SurfaceClock, Slides: 3}},
		Album: fakeAlbum{domain.AlbumSnapshot{
			ArtworkURL: "https://example.com/a.jpg",
			Artist:     "Miles Davis",
			State:      domain.StatePlaying,
			ArtistSize: 72,
		}},
		Screen: fakeScreen{surface: domain.SurfaceAlbum},
	}, false)

	resp, err := http.Get(srv.URL + "/api/v1/state")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body stateResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "album", body.Surface)
	require.NotNil(t, body.Slideshow)
	assert.Equal(t, domain.SurfaceClock, body.Slideshow.LastShown)
	assert.Equal(t, 3, body.Slideshow.Slides)
	require.NotNil(t, body.Album)
	assert.Equal(t, "Miles Davis", body.Album.Artist)
	assert.Equal(t, "playing", body.Album.State)
	assert.Equal(t, 72, body.Album.ArtistSize)
}

func TestState_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, APIV1Deps{}, false)

	resp, err := http.Post(srv.URL+"/api/v1/state", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	var body apiError
	decodeJSON(t, resp, &body)
	assert.Equal(t, "method_not_allowed", body.Error)
}

func TestPostAlbum(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantTrack  string
	}{
		{
			name:       "Envelope",
			body:       `{"event":"album_update","data":{"url":"","track":"Blue in Green","state":"playing"}}`,
			wantStatus: http.StatusAccepted,
			wantTrack:  "Blue in Green",
		},
		{
			name:       "Bare update",
			body:       `{"track":"So What","state":"paused"}`,
			wantStatus: http.StatusAccepted,
			wantTrack:  "So What",
		},
		{
			name:       "Wrong event",
			body:       `{"event":"trigger_album_update"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed",
			body:       `{"track":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inbox := NewInbox(zap.NewNop())
			srv := newTestServer(t, APIV1Deps{Inbox: inbox}, false)

			resp, err := http.Post(srv.URL+"/api/v1/album", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != http.StatusAccepted {
				assert.Empty(t, inbox.Events())
				return
			}
			select {
			case update := <-inbox.Events():
				assert.Equal(t, tt.wantTrack, update.Track)
			default:
				t.Fatal("update was not queued")
			}
		})
	}
}

func TestPostAlbum_EnvelopeKeepsURLPresence(t *testing.T) {
	inbox := NewInbox(zap.NewNop())
	srv := newTestServer(t, APIV1Deps{Inbox: inbox}, false)

	resp, err := http.Post(srv.URL+"/api/v1/album", "application/json",
		strings.NewReader(`{"event":"album_update","data":{"url":"","state":"playing","display_state":false}}`))
	require.NoError(t, err)
	resp.Body.Close()

	update := <-inbox.Events()
	require.NotNil(t, update.URL)
	assert.Empty(t, *update.URL)
	assert.True(t, update.HidesDisplay())
}

func TestPostAlbum_Rejected(t *testing.T) {
	srv := newTestServer(t, APIV1Deps{}, false)
	resp, err := http.Post(srv.URL+"/api/v1/album", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)

	inbox := NewInbox(zap.NewNop())
	require.NoError(t, inbox.Stop(context.Background()))
	srv = newTestServer(t, APIV1Deps{Inbox: inbox}, false)
	resp, err = http.Post(srv.URL+"/api/v1/album", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFrame(t *testing.T) {
	srv := newTestServer(t, APIV1Deps{Screen: fakeScreen{}}, false)
	resp, err := http.Get(srv.URL + "/api/v1/frame.jpg")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	frame := image.NewRGBA(image.Rect(0, 0, 32, 16))
	srv = newTestServer(t, APIV1Deps{Screen: fakeScreen{frame: frame}}, false)
	resp, err = http.Get(srv.URL + "/api/v1/frame.jpg")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	img, err := imaging.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 16), img.Bounds().Size())
}

func TestArtwork(t *testing.T) {
	srv := newTestServer(t, APIV1Deps{Album: fakeAlbum{}}, false)
	resp, err := http.Get(srv.URL + "/api/v1/artwork.jpg")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cover := imaging.New(4, 4, color.NRGBA{R: 255, A: 255})
	srv = newTestServer(t, APIV1Deps{Album: fakeAlbum{domain.AlbumSnapshot{
		Artwork: domain.Artwork{Cover: cover},
	}}}, false)

	resp, err = http.Get(srv.URL + "/api/v1/artwork.jpg?w=40&h=20")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := imaging.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(40, 20), img.Bounds().Size())

	resp, err = http.Get(srv.URL + "/api/v1/artwork.jpg?w=0")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQRCode(t *testing.T) {
	srv := newTestServer(t, APIV1Deps{PublicURL: "http://frame.local:5006/"}, false)

	resp, err := http.Get(srv.URL + "/api/v1/qr.png?size=128")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := imaging.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(128, 128), img.Bounds().Size())

	resp, err = http.Get(srv.URL + "/api/v1/qr.png?size=huge")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDevCORS(t *testing.T) {
	srv := newTestServer(t, APIV1Deps{}, true)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/album", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestInbox(t *testing.T) {
	inbox := NewInbox(zap.NewNop())

	for range 10 {
		require.NoError(t, inbox.Post(domain.AlbumUpdate{}))
	}
	assert.ErrorIs(t, inbox.Post(domain.AlbumUpdate{}), ErrInboxFull)

	done := make(chan error, 1)
	go func() { done <- inbox.Start(context.Background()) }()

	require.NoError(t, inbox.Stop(context.Background()))
	require.NoError(t, inbox.Stop(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}

	assert.ErrorIs(t, inbox.Post(domain.AlbumUpdate{}), ErrInboxClosed)

	// Buffered updates drain before the channel reports closed
	drained := 0
	for range inbox.Events() {
		drained++
	}
	assert.Equal(t, 10, drained)
}

func TestHTTPServer_StartStop(t *testing.T) {
	s := NewHTTPServer(zap.NewNop(), ServerConfig{ListenAddr: "127.0.0.1:0"}, APIV1Deps{})
	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, s.Addr())

	resp, err := http.Get("http://" + s.Addr().String() + "/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	assert.Error(t, s.Start(context.Background()))
	assert.Nil(t, s.Addr())
}
