// Package power decides when the physical display is switched on
package power

import (
	"context"
	"sync"
	"time"

	"github.com/genricoloni/synframe/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultOnHour   = 9
	DefaultOffHour  = 23
	DefaultInterval = 10 * time.Minute
)

// IsScreenOn reports whether hour falls in the on window [onHour, offHour).
// Windows where offHour < onHour wrap past midnight; equal hours mean the
// screen is never on by schedule.
func IsScreenOn(hour, onHour, offHour int) bool {
	if onHour == offHour {
		return false
	}
	if onHour < offHour {
		return onHour <= hour && hour < offHour
	}
	return !(offHour <= hour && hour < onHour)
}

// Options configures the controller
type Options struct {
	// Enabled switches the display through the DisplayPower; when false
	// decisions are only logged
	Enabled  bool
	OnHour   int
	OffHour  int
	Interval time.Duration
	Location *time.Location
}

// Controller keeps the display on while music is active or the schedule
// says so, re-checking periodically
type Controller struct {
	logger *zap.Logger
	power  domain.DisplayPower
	opts   Options
	now    func() time.Time

	mu     sync.Mutex
	active bool
	on     bool
	known  bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController creates a controller. power may be nil when display
// control is disabled.
func NewController(logger *zap.Logger, power domain.DisplayPower, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if power == nil {
		opts.Enabled = false
	}
	return &Controller{
		logger: logger,
		power:  power,
		opts:   opts,
		now:    time.Now,
	}
}

// Start evaluates once and then every interval until Stop
func (c *Controller) Start(ctx context.Context) error {
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	c.Evaluate(loopCtx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.opts.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				c.Evaluate(loopCtx)
			}
		}
	}()

	c.logger.Info("Display power schedule started",
		zap.Bool("control", c.opts.Enabled),
		zap.Int("on_hour", c.opts.OnHour),
		zap.Int("off_hour", c.opts.OffHour))
	return nil
}

// Stop ends the periodic check
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		c.wg.Wait()
	}
	return nil
}

// Observe records the playback state of an album update for the next check
func (c *Controller) Observe(update domain.AlbumUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = update.State.Active()
}

// Wake turns the display on right away; called when playback starts
func (c *Controller) Wake(ctx context.Context) {
	c.mu.Lock()
	c.active = true
	c.mu.Unlock()
	c.apply(ctx, true)
}

// Evaluate applies the current decision
func (c *Controller) Evaluate(ctx context.Context) {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	hour := c.now().In(c.opts.Location).Hour()
	c.apply(ctx, active || IsScreenOn(hour, c.opts.OnHour, c.opts.OffHour))
}

// DisplayOn reports the last applied decision
func (c *Controller) DisplayOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on
}

func (c *Controller) apply(ctx context.Context, on bool) {
	c.mu.Lock()
	changed := !c.known || c.on != on
	c.on, c.known = on, true
	c.mu.Unlock()

	if changed {
		c.logger.Info("Display power decided", zap.Bool("on", on))
	}
	if !c.opts.Enabled {
		return
	}
	if err := c.power.SetPower(ctx, on); err != nil {
		c.logger.Warn("Failed to switch display", zap.Bool("on", on), zap.Error(err))
	}
}
