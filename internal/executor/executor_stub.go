//go:build !linux

package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// StubExecutor is a placeholder for unsupported platforms (macOS, BSD, etc.)
type StubExecutor struct {
	logger *zap.Logger
}

// NewExecutor creates a stub executor for unsupported platforms
func NewExecutor(logger *zap.Logger) (*StubExecutor, error) {
	logger.Warn("Display power control is not implemented for this platform")
	return &StubExecutor{logger: logger}, nil
}

// SetPower returns an error indicating the platform is not supported
func (e *StubExecutor) SetPower(ctx context.Context, on bool) error {
	return fmt.Errorf("display power control not implemented for this platform")
}
