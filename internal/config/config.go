// Package config loads the HCL settings file for the terminal game.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pong/internal/font"
	"github.com/lox/pong/internal/game"
	"github.com/lox/pong/internal/input"
	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/render"
	"github.com/muesli/termenv"
)

// Config represents the complete settings file
type Config struct {
	Display  *DisplaySettings `hcl:"display,block"`
	Input    *InputSettings   `hcl:"input,block"`
	Controls *ControlSettings `hcl:"controls,block"`
	Log      *LogSettings     `hcl:"log,block"`
}

// DisplaySettings controls frame rate and appearance
type DisplaySettings struct {
	FPS           int      `hcl:"fps,optional"`
	Theme         string   `hcl:"theme,optional"`
	Font          string   `hcl:"font,optional"`
	FontDir       string   `hcl:"font_dir,optional"`
	Color         string   `hcl:"color,optional"`
	MaxFrameDelta *float64 `hcl:"max_frame_delta,optional"` // 0 disables the cap
}

// InputSettings controls how key presses become held keys
type InputSettings struct {
	HoldMs        int `hcl:"hold_ms,optional"`
	RepeatDelayMs int `hcl:"repeat_delay_ms,optional"`
}

// ControlSettings maps controls to bubbletea key names
type ControlSettings struct {
	P1Up    []string `hcl:"p1_up,optional"`
	P1Down  []string `hcl:"p1_down,optional"`
	P2Up    []string `hcl:"p2_up,optional"`
	P2Down  []string `hcl:"p2_down,optional"`
	Pause   []string `hcl:"pause,optional"`
	Restart []string `hcl:"restart,optional"`
	Quit    []string `hcl:"quit,optional"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default configuration.
func Default() *Config {
	keys := input.DefaultKeyMap()
	return &Config{
		Display: &DisplaySettings{
			FPS:           60,
			Theme:         "default",
			Font:          font.DefaultName,
			Color:         "auto",
			MaxFrameDelta: ptr(loop.DefaultMaxFrameDelta),
		},
		Input: &InputSettings{
			HoldMs:        int(input.DefaultHold / time.Millisecond),
			RepeatDelayMs: int(input.DefaultRepeatDelay / time.Millisecond),
		},
		Controls: &ControlSettings{
			P1Up:    keys.Move[game.MoveP1Up],
			P1Down:  keys.Move[game.MoveP1Down],
			P2Up:    keys.Move[game.MoveP2Up],
			P2Down:  keys.Move[game.MoveP2Down],
			Pause:   keys.Pause,
			Restart: keys.Restart,
			Quit:    keys.Quit,
		},
		Log: &LogSettings{
			Level: "info",
			File:  "pong.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; settings left out of the file keep their default values.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults(Default())
	return &cfg, nil
}

func (c *Config) applyDefaults(d *Config) {
	if c.Display == nil {
		c.Display = d.Display
	}
	if c.Display.FPS == 0 {
		c.Display.FPS = d.Display.FPS
	}
	if c.Display.Theme == "" {
		c.Display.Theme = d.Display.Theme
	}
	if c.Display.Font == "" {
		c.Display.Font = d.Display.Font
	}
	if c.Display.Color == "" {
		c.Display.Color = d.Display.Color
	}
	if c.Display.MaxFrameDelta == nil {
		c.Display.MaxFrameDelta = d.Display.MaxFrameDelta
	}

	if c.Input == nil {
		c.Input = d.Input
	}
	if c.Input.HoldMs == 0 {
		c.Input.HoldMs = d.Input.HoldMs
	}
	if c.Input.RepeatDelayMs == 0 {
		c.Input.RepeatDelayMs = d.Input.RepeatDelayMs
	}

	if c.Controls == nil {
		c.Controls = d.Controls
	}
	defaultKeys(&c.Controls.P1Up, d.Controls.P1Up)
	defaultKeys(&c.Controls.P1Down, d.Controls.P1Down)
	defaultKeys(&c.Controls.P2Up, d.Controls.P2Up)
	defaultKeys(&c.Controls.P2Down, d.Controls.P2Down)
	defaultKeys(&c.Controls.Pause, d.Controls.Pause)
	defaultKeys(&c.Controls.Restart, d.Controls.Restart)
	defaultKeys(&c.Controls.Quit, d.Controls.Quit)

	if c.Log == nil {
		c.Log = d.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
}

func ptr[T any](v T) *T {
	return &v
}

func defaultKeys(keys *[]string, def []string) {
	if len(*keys) == 0 {
		*keys = def
	}
}

var colorProfiles = map[string]termenv.Profile{
	"truecolor": termenv.TrueColor,
	"ansi256":   termenv.ANSI256,
	"ansi":      termenv.ANSI,
	"none":      termenv.Ascii,
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		return fmt.Errorf("fps must be between 1 and 240, got %d", c.Display.FPS)
	}
	if _, ok := render.LookupTheme(c.Display.Theme); !ok {
		return fmt.Errorf("invalid theme: %s (available: %v)", c.Display.Theme, render.ThemeNames())
	}
	if _, ok := colorProfiles[c.Display.Color]; !ok && c.Display.Color != "auto" {
		return fmt.Errorf("invalid color mode: %s", c.Display.Color)
	}
	if c.MaxFrameDelta() < 0 {
		return fmt.Errorf("max frame delta cannot be negative")
	}

	if c.Input.HoldMs <= 0 {
		return fmt.Errorf("hold_ms must be positive")
	}
	if c.Input.RepeatDelayMs < c.Input.HoldMs {
		return fmt.Errorf("repeat_delay_ms must be at least hold_ms")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	seen := make(map[string]string)
	for _, ctl := range c.controls() {
		for _, k := range ctl.keys {
			if other, ok := seen[k]; ok {
				return fmt.Errorf("key %q bound to both %s and %s", k, other, ctl.name)
			}
			seen[k] = ctl.name
		}
	}

	return nil
}

type namedControl struct {
	name string
	keys []string
}

func (c *Config) controls() []namedControl {
	return []namedControl{
		{game.MoveP1Up.String(), c.Controls.P1Up},
		{game.MoveP1Down.String(), c.Controls.P1Down},
		{game.MoveP2Up.String(), c.Controls.P2Up},
		{game.MoveP2Down.String(), c.Controls.P2Down},
		{"pause", c.Controls.Pause},
		{"restart", c.Controls.Restart},
		{"quit", c.Controls.Quit},
	}
}

// KeyMap converts the controls block into an input key map.
func (c *Config) KeyMap() input.KeyMap {
	var m input.KeyMap
	m.Move[game.MoveP1Up] = c.Controls.P1Up
	m.Move[game.MoveP1Down] = c.Controls.P1Down
	m.Move[game.MoveP2Up] = c.Controls.P2Up
	m.Move[game.MoveP2Down] = c.Controls.P2Down
	m.Pause = c.Controls.Pause
	m.Restart = c.Controls.Restart
	m.Quit = c.Controls.Quit
	return m
}

// Theme returns the configured palette.
func (c *Config) Theme() render.Theme {
	if t, ok := render.LookupTheme(c.Display.Theme); ok {
		return t
	}
	return render.DefaultTheme
}

// ColorProfile returns the forced colour profile, or false for "auto".
func (c *Config) ColorProfile() (termenv.Profile, bool) {
	p, ok := colorProfiles[c.Display.Color]
	return p, ok
}

// MaxFrameDelta returns the largest frame step in seconds. Zero means no cap.
func (c *Config) MaxFrameDelta() float64 {
	if c.Display.MaxFrameDelta == nil {
		return loop.DefaultMaxFrameDelta
	}
	return *c.Display.MaxFrameDelta
}

// FrameInterval is the time between frames at the configured rate.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Display.FPS)
}

// Hold returns the autorepeat hold window.
func (c *Config) Hold() time.Duration {
	return time.Duration(c.Input.HoldMs) * time.Millisecond
}

// RepeatDelay returns the fresh-press hold window.
func (c *Config) RepeatDelay() time.Duration {
	return time.Duration(c.Input.RepeatDelayMs) * time.Millisecond
}
