//go:build linux

package render

import (
	"fmt"
	"image"
	"sync"

	"github.com/genricoloni/synframe/internal/system"
	fb "github.com/gonutz/framebuffer"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// FramebufferSink blits frames to a Linux framebuffer device
type FramebufferSink struct {
	logger  *zap.Logger
	console *system.Console

	mu  sync.Mutex
	dev *fb.Device
}

// NewFramebufferSink opens the framebuffer device and switches the console
// to graphics mode
func NewFramebufferSink(logger *zap.Logger, console *system.Console, device string) (*FramebufferSink, error) {
	dev, err := fb.Open(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open framebuffer %s: %w", device, err)
	}

	bounds := dev.Bounds()
	logger.Info("Framebuffer open",
		zap.String("device", device),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))

	// Non-fatal: a stray cursor is cosmetic
	_ = console.EnterGraphics()

	return &FramebufferSink{logger: logger, console: console, dev: dev}, nil
}

// Size returns the framebuffer resolution
func (s *FramebufferSink) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return 0, 0
	}
	b := s.dev.Bounds()
	return b.Dx(), b.Dy()
}

// Present scales the frame to the device when sizes differ
func (s *FramebufferSink) Present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return fmt.Errorf("framebuffer closed")
	}
	xdraw.NearestNeighbor.Scale(s.dev, s.dev.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
	return nil
}

// Close releases the device and restores the text console
func (s *FramebufferSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	s.dev.Close()
	s.dev = nil
	// Logged by the console; the device is already released
	_ = s.console.RestoreText()
	return nil
}
