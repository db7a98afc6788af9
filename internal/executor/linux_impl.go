//go:build linux

package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// PowerCommand is a detected display power switch
type PowerCommand struct {
	Name   string
	Binary string
	On     []string
	Off    []string
	// NeedsX marks commands that talk to an X server through $DISPLAY
	NeedsX bool
}

var (
	// Ordered list of power commands to try (highest priority first)
	powerCommands = []PowerCommand{
		// X11 DPMS, the desktop setup the frame usually runs under
		{Name: "xset", Binary: "xset", On: []string{"dpms", "force", "on"}, Off: []string{"dpms", "force", "off"}, NeedsX: true},
		// Raspberry Pi firmware, works on the bare console
		{Name: "vcgencmd", Binary: "vcgencmd", On: []string{"display_power", "1"}, Off: []string{"display_power", "0"}},
	}

	lookPath = exec.LookPath
	getenv   = os.Getenv
	runCmd   = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, binary, args...).CombinedOutput()
	}
)

// LinuxExecutor switches the display on and off with a command line tool
type LinuxExecutor struct {
	logger  *zap.Logger
	command PowerCommand
}

// NewExecutor creates a new platform-specific display power executor (Linux implementation)
func NewExecutor(logger *zap.Logger) (*LinuxExecutor, error) {
	cmd := detectCommand(logger)
	if cmd.Binary == "" {
		return nil, fmt.Errorf("no supported display power command found on this system")
	}

	logger.Info("Display power command detected",
		zap.String("name", cmd.Name),
		zap.String("binary", cmd.Binary))

	return &LinuxExecutor{
		logger:  logger,
		command: cmd,
	}, nil
}

// detectCommand picks the first usable command; X-only tools need $DISPLAY
func detectCommand(logger *zap.Logger) PowerCommand {
	display := getenv("DISPLAY")

	logger.Debug("Detecting display power command", zap.String("display", display))

	for _, cmd := range powerCommands {
		if cmd.NeedsX && display == "" {
			continue
		}
		if commandExists(cmd.Binary) {
			return cmd
		}
	}
	return PowerCommand{} // No command found
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := lookPath(binary)
	return err == nil
}

// SetPower turns the display on or off
func (e *LinuxExecutor) SetPower(ctx context.Context, on bool) error {
	args := e.command.Off
	if on {
		args = e.command.On
	}

	e.logger.Debug("Switching display power",
		zap.String("command", e.command.Binary),
		zap.Strings("args", args),
		zap.Bool("on", on))

	output, err := runCmd(ctx, e.command.Binary, args...)
	if err != nil {
		return fmt.Errorf("failed to switch display with %s: %w (output: %s)",
			e.command.Name, err, string(output))
	}

	e.logger.Info("Display power switched",
		zap.String("command", e.command.Name),
		zap.Bool("on", on))

	return nil
}
