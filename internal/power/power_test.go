package power

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/genricoloni/synframe/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestIsScreenOn(t *testing.T) {
	tests := []struct {
		name          string
		hour, on, off int
		want          bool
	}{
		{"Normal range inside", 10, 9, 17, true},
		{"Normal range inside late", 16, 9, 17, true},
		{"Normal range before", 8, 9, 17, false},
		{"Normal range after", 18, 9, 17, false},
		{"Overnight inside", 23, 22, 6, true},
		{"Overnight inside after midnight", 2, 22, 6, true},
		{"Overnight before", 21, 22, 6, false},
		{"Overnight after", 7, 22, 6, false},
		{"Same hours", 9, 9, 9, false},
		{"On hour boundary", 9, 9, 17, true},
		{"Off hour boundary", 17, 9, 17, false},
		{"Overnight on boundary", 22, 22, 6, true},
		{"Overnight off boundary", 6, 22, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsScreenOn(tt.hour, tt.on, tt.off))
		})
	}
}

func newTestController(t *testing.T, hour int) (*Controller, *mocks.MockDisplayPower) {
	t.Helper()
	ctrl := gomock.NewController(t)
	power := mocks.NewMockDisplayPower(ctrl)
	c := NewController(zap.NewNop(), power, Options{
		Enabled:  true,
		OnHour:   9,
		OffHour:  23,
		Location: time.UTC,
	})
	c.now = func() time.Time { return time.Date(2024, 3, 1, hour, 30, 0, 0, time.UTC) }
	return c, power
}

func TestController_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		update *domain.AlbumUpdate
		want   bool
	}{
		{"Daytime", 12, nil, true},
		{"Night", 3, nil, false},
		{"Night while playing", 3, &domain.AlbumUpdate{State: domain.StatePlaying}, true},
		{"Night while loading", 3, &domain.AlbumUpdate{State: domain.StateLoading}, true},
		{"Night after pause", 3, &domain.AlbumUpdate{State: domain.StatePaused}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, power := newTestController(t, tt.hour)
			power.EXPECT().SetPower(gomock.Any(), tt.want).Return(nil)

			if tt.update != nil {
				c.Observe(*tt.update)
			}
			c.Evaluate(context.Background())
			assert.Equal(t, tt.want, c.DisplayOn())
		})
	}
}

func TestController_WakeTurnsOnAndSticks(t *testing.T) {
	c, power := newTestController(t, 3)
	power.EXPECT().SetPower(gomock.Any(), true).Return(nil).Times(2)

	c.Wake(context.Background())
	assert.True(t, c.DisplayOn())

	// Still active at the next periodic check
	c.Evaluate(context.Background())

	power.EXPECT().SetPower(gomock.Any(), false).Return(nil)
	c.Observe(domain.AlbumUpdate{State: domain.StateStopped})
	c.Evaluate(context.Background())
	assert.False(t, c.DisplayOn())
}

func TestController_SwitchErrorIsLogged(t *testing.T) {
	c, power := newTestController(t, 12)
	power.EXPECT().SetPower(gomock.Any(), true).Return(errors.New("xset: unable to open display"))

	c.Evaluate(context.Background())
	assert.True(t, c.DisplayOn())
}

func TestController_Disabled(t *testing.T) {
	c := NewController(zap.NewNop(), nil, Options{Enabled: true, OnHour: 9, OffHour: 17, Location: time.UTC})
	c.now = func() time.Time { return time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC) }

	c.Evaluate(context.Background())
	assert.False(t, c.DisplayOn())
	c.Wake(context.Background())
	assert.True(t, c.DisplayOn())
}

func TestController_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	power := mocks.NewMockDisplayPower(ctrl)
	power.EXPECT().SetPower(gomock.Any(), gomock.Any()).Return(nil).MinTimes(2)

	c := NewController(zap.NewNop(), power, Options{Enabled: true, OnHour: 9, OffHour: 17, Interval: 5 * time.Millisecond})
	require.NoError(t, c.Start(context.Background()))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, c.Stop(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
}

func TestNewController_Defaults(t *testing.T) {
	c := NewController(zap.NewNop(), nil, Options{})
	assert.Equal(t, DefaultInterval, c.opts.Interval)
	assert.Equal(t, time.Local, c.opts.Location)
	assert.False(t, c.opts.Enabled)
}
