package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/genricoloni/synframe/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu      sync.Mutex
	updates []domain.AlbumUpdate
	seen    chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{seen: make(chan struct{}, 16)}
}

func (h *recordingHandler) Handle(_ context.Context, update domain.AlbumUpdate) {
	h.mu.Lock()
	h.updates = append(h.updates, update)
	h.mu.Unlock()
	h.seen <- struct{}{}
}

func (h *recordingHandler) Updates() []domain.AlbumUpdate {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.AlbumUpdate(nil), h.updates...)
}

func (h *recordingHandler) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-h.seen:
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for update %d", i+1)
		}
	}
}

type recordingObserver struct {
	mu    sync.Mutex
	count int
}

func (o *recordingObserver) Observe(domain.AlbumUpdate) {
	o.mu.Lock()
	o.count++
	o.mu.Unlock()
}

func (o *recordingObserver) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.count
}

// expectMonitor wires a mock source that blocks in Start until cancelled
func expectMonitor(ctrl *gomock.Controller, events chan domain.AlbumUpdate, stopErr error) *mocks.MockMonitor {
	mon := mocks.NewMockMonitor(ctrl)
	mon.EXPECT().Events().Return((<-chan domain.AlbumUpdate)(events)).AnyTimes()
	mon.EXPECT().Start(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	mon.EXPECT().Stop(gomock.Any()).Return(stopErr)
	return mon
}

func TestEngine_MergesSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := make(chan domain.AlbumUpdate)
	b := make(chan domain.AlbumUpdate)

	handler := newRecordingHandler()
	observer := &recordingObserver{}
	e := NewEngine(zap.NewNop(),
		[]domain.Monitor{expectMonitor(ctrl, a, nil), expectMonitor(ctrl, b, nil)},
		handler, []Observer{observer})

	require.NoError(t, e.Start(context.Background()))

	a <- domain.AlbumUpdate{State: domain.StatePlaying, Track: "one"}
	handler.wait(t, 1)
	b <- domain.AlbumUpdate{State: domain.StatePaused, Track: "two"}
	handler.wait(t, 1)

	require.NoError(t, e.Stop(context.Background()))

	updates := handler.Updates()
	require.Len(t, updates, 2)
	assert.Equal(t, "one", updates[0].Track)
	assert.Equal(t, "two", updates[1].Track)
	assert.Equal(t, 2, observer.Count())
}

func TestEngine_AppliesEveryUpdateInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := make(chan domain.AlbumUpdate)
	handler := newRecordingHandler()

	e := NewEngine(zap.NewNop(), []domain.Monitor{expectMonitor(ctrl, events, nil)}, handler, nil)
	require.NoError(t, e.Start(context.Background()))

	// A playing refresh followed at once by loading: both must reach the handler
	url := "https://example.com/cover.jpg"
	events <- domain.AlbumUpdate{URL: &url, State: domain.StatePlaying, Artist: "New"}
	events <- domain.AlbumUpdate{URL: &url, State: domain.StateLoading}
	events <- domain.AlbumUpdate{State: domain.StatePaused}
	handler.wait(t, 3)

	require.NoError(t, e.Stop(context.Background()))

	updates := handler.Updates()
	require.Len(t, updates, 3)
	assert.Equal(t, domain.StatePlaying, updates[0].State)
	assert.Equal(t, "New", updates[0].Artist)
	assert.Equal(t, domain.StateLoading, updates[1].State)
	assert.Equal(t, domain.StatePaused, updates[2].State)
}

func TestEngine_ClosedSourceDoesNotStopOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	closed := make(chan domain.AlbumUpdate)
	close(closed)
	live := make(chan domain.AlbumUpdate)

	handler := newRecordingHandler()
	e := NewEngine(zap.NewNop(),
		[]domain.Monitor{expectMonitor(ctrl, closed, nil), expectMonitor(ctrl, live, nil)},
		handler, nil)
	require.NoError(t, e.Start(context.Background()))

	live <- domain.AlbumUpdate{State: domain.StateStopped}
	handler.wait(t, 1)

	require.NoError(t, e.Stop(context.Background()))
	assert.Len(t, handler.Updates(), 1)
}

func TestEngine_SourceStartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mocks.NewMockMonitor(ctrl)
	events := make(chan domain.AlbumUpdate)
	failing.EXPECT().Events().Return((<-chan domain.AlbumUpdate)(events)).AnyTimes()
	failing.EXPECT().Start(gomock.Any()).Return(errors.New("no session bus"))
	failing.EXPECT().Stop(gomock.Any()).Return(nil)

	e := NewEngine(zap.NewNop(), []domain.Monitor{failing}, newRecordingHandler(), nil)
	require.NoError(t, e.Start(context.Background()))
	require.NoError(t, e.Stop(context.Background()))
}

func TestEngine_StopCombinesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	e := NewEngine(zap.NewNop(), []domain.Monitor{
		expectMonitor(ctrl, make(chan domain.AlbumUpdate), errors.New("first")),
		expectMonitor(ctrl, make(chan domain.AlbumUpdate), errors.New("second")),
	}, newRecordingHandler(), nil)

	require.NoError(t, e.Start(context.Background()))
	err := e.Stop(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}

func TestEngine_StopWithoutStart(t *testing.T) {
	e := NewEngine(zap.NewNop(), nil, newRecordingHandler(), nil)
	assert.NoError(t, e.Stop(context.Background()))
}
