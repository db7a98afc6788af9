// Package config loads the frame settings from TOML files and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	// Zone data for images without /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides, e.g. SYNFRAME_SLIDESHOW_FOLDER
const EnvPrefix = "SYNFRAME_"

// Output kinds
const (
	OutputFramebuffer = "framebuffer"
	OutputFile        = "file"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// sections are the nested tables; env keys starting with one of them map
// their first underscore to a dot
var sections = []string{"slideshow", "clock", "display", "text"}

// Config holds the frame settings
type Config struct {
	Name       string `koanf:"name"`
	Timezone   string `koanf:"timezone"`
	ListenAddr string `koanf:"listen_addr"`
	PublicURL  string `koanf:"public_url"`
	DevMode    bool   `koanf:"dev_mode"`

	Output            string `koanf:"output"` // "framebuffer" or "file"
	OutputDir         string `koanf:"output_dir"`
	FramebufferDevice string `koanf:"framebuffer_device"`
	Width             int    `koanf:"width"`  // file output size, 0 = detect
	Height            int    `koanf:"height"` // file output size, 0 = detect

	PushURL      string `koanf:"push_url"`
	MPRIS        bool   `koanf:"mpris"`
	LockSettings bool   `koanf:"lock_settings"`

	Slideshow SlideshowConfig `koanf:"slideshow"`
	Clock     ClockConfig     `koanf:"clock"`
	Display   DisplayConfig   `koanf:"display"`
	Text      TextConfig      `koanf:"text"`

	// Files lists the config files that were loaded, in order
	Files []string `koanf:"-"`
}

// SlideshowConfig controls slide rotation
type SlideshowConfig struct {
	Enabled           bool   `koanf:"enabled"`
	Folder            string `koanf:"folder"`
	TransitionSeconds int    `koanf:"transition_seconds"`
	ClockRatio        int    `koanf:"clock_ratio"` // percent of ticks that show the clock
}

// ClockConfig sizes the analog clock
type ClockConfig struct {
	Size   int `koanf:"size"`   // max side in pixels, 0 = 90% of the screen
	Offset int `koanf:"offset"` // distance from the top edge
}

// DisplayConfig controls the physical display power
type DisplayConfig struct {
	Control string `koanf:"control"` // "on" or "off"
	OnHour  int    `koanf:"on_hour"`
	OffHour int    `koanf:"off_hour"`
}

// TextConfig is the box the album text lines are fitted into
type TextConfig struct {
	BoxWidth  int `koanf:"box_width"`
	BoxHeight int `koanf:"box_height"`
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Name:              "synframe",
		ListenAddr:        ":5006",
		Output:            OutputFramebuffer,
		OutputDir:         "/tmp/synframe",
		FramebufferDevice: "/dev/fb0",
		Slideshow: SlideshowConfig{
			Enabled:           true,
			Folder:            "~/Pictures/synframe",
			TransitionSeconds: 15,
			ClockRatio:        0,
		},
		Display: DisplayConfig{
			Control: "off",
			OnHour:  9,
			OffHour: 23,
		},
		Text: TextConfig{
			BoxWidth:  380,
			BoxHeight: 160,
		},
	}
}

// Load reads the config. With an explicit path only that file is read and
// it must exist; otherwise the standard locations are tried (last wins).
// SYNFRAME_* environment variables override file values.
func Load(logger *zap.Logger, explicit string) (*Config, error) {
	k := koanf.New(".")

	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = []string{explicit}
	}

	var loaded []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		loaded = append(loaded, abs)
	}

	if err := loadEnv(k, os.Environ()); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Files = loaded

	cfg.Slideshow.Folder = expandPath(cfg.Slideshow.Folder)
	cfg.OutputDir = expandPath(cfg.OutputDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded",
		zap.Strings("files", loaded),
		zap.String("output", cfg.Output),
		zap.String("slides", cfg.Slideshow.Folder),
		zap.Bool("mpris", cfg.MPRIS),
		zap.Bool("push", cfg.PushURL != ""))

	return cfg, nil
}

// loadEnv copies SYNFRAME_* variables into k
func loadEnv(k *koanf.Koanf, environ []string) error {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		if err := k.Set(envKey(name), value); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

// envKey turns SYNFRAME_SLIDESHOW_CLOCK_RATIO into slideshow.clock_ratio
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	for _, s := range sections {
		if rest, ok := strings.CutPrefix(key, s+"_"); ok {
			return s + "." + rest
		}
	}
	return key
}

func getConfigPaths() []string {
	paths := []string{"/etc/synframe/config.toml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "synframe", "config.toml"))
	}

	// ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate checks ranges the way the settings form does
func (c *Config) Validate() error {
	if c.Display.OnHour < 0 || c.Display.OnHour > 23 || c.Display.OffHour < 0 || c.Display.OffHour > 23 {
		return fmt.Errorf("%w: display hours must be between 0 and 23", ErrInvalid)
	}
	if c.Slideshow.TransitionSeconds <= 0 {
		return fmt.Errorf("%w: slideshow transition seconds must be a positive integer", ErrInvalid)
	}
	if c.Slideshow.ClockRatio < 0 || c.Slideshow.ClockRatio > 100 {
		return fmt.Errorf("%w: slideshow clock ratio must be between 0 and 100", ErrInvalid)
	}
	if c.Clock.Size < 0 || c.Clock.Offset < 0 {
		return fmt.Errorf("%w: clock size and offset must not be negative", ErrInvalid)
	}
	if c.Text.BoxWidth <= 0 || c.Text.BoxHeight <= 0 {
		return fmt.Errorf("%w: text box must have a positive size", ErrInvalid)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: output size must not be negative", ErrInvalid)
	}
	switch c.Output {
	case OutputFramebuffer, OutputFile:
	default:
		return fmt.Errorf("%w: output must be %q or %q, got %q", ErrInvalid, OutputFramebuffer, OutputFile, c.Output)
	}
	switch c.Display.Control {
	case "on", "off":
	default:
		return fmt.Errorf("%w: display control must be \"on\" or \"off\", got %q", ErrInvalid, c.Display.Control)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalid, c.Timezone)
	}
	return nil
}

// Location returns the configured time zone, local time when unset
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ClockRatio returns the clock share of slideshow ticks in 0..1
func (c *Config) ClockRatio() float64 {
	return float64(c.Slideshow.ClockRatio) / 100
}

// Transition returns the slideshow tick period
func (c *Config) Transition() time.Duration {
	return time.Duration(c.Slideshow.TransitionSeconds) * time.Second
}

// DisplayControl reports whether the display power is switched
func (c *Config) DisplayControl() bool {
	return c.Display.Control == "on"
}
