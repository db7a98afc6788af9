//go:build linux

// Package system controls the Linux console the framebuffer shares.
package system

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var ttyPaths = []string{"/dev/tty", "/dev/tty0"}

// Console switches the active virtual terminal between text and graphics
// mode so the blinking cursor does not draw over the framebuffer
type Console struct {
	logger *zap.Logger
}

// NewConsole creates a console controller
func NewConsole(logger *zap.Logger) *Console {
	return &Console{logger: logger}
}

// EnterGraphics switches to graphics mode and hides the cursor
func (c *Console) EnterGraphics() error {
	if err := setMode(kdGraphics); err != nil {
		c.logger.Warn("KD_GRAPHICS failed", zap.Error(err))
		return err
	}
	if err := writeVT("\x1b[?25l"); err != nil {
		c.logger.Debug("Hide cursor failed", zap.Error(err))
	}
	c.logger.Info("Console switched to graphics mode")
	return nil
}

// RestoreText switches back to text mode and shows the cursor
func (c *Console) RestoreText() error {
	if err := setMode(kdText); err != nil {
		c.logger.Warn("KD_TEXT failed", zap.Error(err))
		return err
	}
	if err := writeVT("\x1b[?25h"); err != nil {
		c.logger.Debug("Show cursor failed", zap.Error(err))
	}
	c.logger.Info("Console restored to text mode")
	return nil
}

func setMode(mode int) error {
	var lastErr error
	for _, p := range ttyPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range ttyPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %w", lastErr)
}
