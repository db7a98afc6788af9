//go:build !linux

package render

import (
	"errors"
	"image"

	"github.com/genricoloni/synframe/internal/system"
	"go.uber.org/zap"
)

// FramebufferSink is unavailable outside Linux
type FramebufferSink struct{}

// NewFramebufferSink always fails on this platform
func NewFramebufferSink(logger *zap.Logger, console *system.Console, device string) (*FramebufferSink, error) {
	return nil, errors.New("framebuffer output is only supported on Linux")
}

func (s *FramebufferSink) Size() (int, int)          { return 0, 0 }
func (s *FramebufferSink) Present(*image.RGBA) error { return nil }
func (s *FramebufferSink) Close() error              { return nil }
