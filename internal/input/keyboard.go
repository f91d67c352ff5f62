// Package input turns terminal key presses into the held-key set and
// discrete events a frame loop consumes.
package input

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pong/internal/game"
)

// Default hold timings. Terminals report presses and autorepeats but never
// releases, so a movement key counts as held for a while after each report.
const (
	DefaultRepeatDelay = 450 * time.Millisecond
	DefaultHold        = 120 * time.Millisecond
)

// Option configures a Keyboard.
type Option func(*Keyboard)

// WithHold sets how long a key stays held after an autorepeat.
func WithHold(d time.Duration) Option {
	return func(k *Keyboard) {
		k.hold = d
	}
}

// WithRepeatDelay sets how long a key stays held after a fresh press, which
// must cover the terminal's delay before autorepeat starts.
func WithRepeatDelay(d time.Duration) Option {
	return func(k *Keyboard) {
		k.repeatDelay = d
	}
}

// Keyboard tracks terminal key presses
type Keyboard struct {
	clock       quartz.Clock
	bindings    Bindings
	logger      *log.Logger
	hold        time.Duration
	repeatDelay time.Duration

	heldUntil [4]time.Time
	events    []game.Event
}

// NewKeyboard creates a keyboard that times holds on clock.
func NewKeyboard(clock quartz.Clock, bindings Bindings, logger *log.Logger, opts ...Option) *Keyboard {
	k := &Keyboard{
		clock:       clock,
		bindings:    bindings,
		logger:      logger.WithPrefix("input"),
		hold:        DefaultHold,
		repeatDelay: DefaultRepeatDelay,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// HandleKey records a key press. It reports whether the key was bound.
func (k *Keyboard) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, k.bindings.Quit):
		k.queue(game.Quit)
		return true
	case key.Matches(msg, k.bindings.Pause):
		k.queue(game.TogglePause)
		return true
	case key.Matches(msg, k.bindings.Restart):
		k.queue(game.Restart)
		return true
	}

	for i, b := range k.bindings.Move {
		if key.Matches(msg, b) {
			k.press(game.Key(i))
			return true
		}
	}
	return false
}

func (k *Keyboard) queue(ev game.Event) {
	k.logger.Debug("Discrete event", "event", ev)
	k.events = append(k.events, ev)
}

func (k *Keyboard) press(pressed game.Key) {
	now := k.clock.Now("input", "press")

	window := k.hold
	if !now.Before(k.heldUntil[pressed]) {
		window = k.repeatDelay
	}
	// a repeat never shortens a hold already granted
	if until := now.Add(window); until.After(k.heldUntil[pressed]) {
		k.heldUntil[pressed] = until
	}

	// a paddle can only travel one way; the other direction is released
	for _, ctl := range game.Controls {
		switch pressed {
		case ctl.Up:
			k.heldUntil[ctl.Down] = time.Time{}
		case ctl.Down:
			k.heldUntil[ctl.Up] = time.Time{}
		}
	}
}

// HeldKeys returns the movement keys currently considered held.
func (k *Keyboard) HeldKeys() game.KeySet {
	now := k.clock.Now("input", "held")
	var held game.KeySet
	for i, until := range k.heldUntil {
		if now.Before(until) {
			held = held.With(game.Key(i))
		}
	}
	return held
}

// PollDiscreteEvents drains events queued since the previous call, in
// arrival order.
func (k *Keyboard) PollDiscreteEvents() []game.Event {
	events := k.events
	k.events = nil
	return events
}

// Bindings returns the keyboard's bindings.
func (k *Keyboard) Bindings() Bindings {
	return k.bindings
}
