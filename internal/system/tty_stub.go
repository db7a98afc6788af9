//go:build !linux

package system

import (
	"errors"

	"go.uber.org/zap"
)

var errNoConsole = errors.New("console mode switching is only supported on Linux")

// Console is a no-op on platforms without a Linux virtual terminal
type Console struct {
	logger *zap.Logger
}

// NewConsole creates a console controller
func NewConsole(logger *zap.Logger) *Console {
	return &Console{logger: logger}
}

// EnterGraphics always fails on this platform
func (c *Console) EnterGraphics() error { return errNoConsole }

// RestoreText always fails on this platform
func (c *Console) RestoreText() error { return errNoConsole }
