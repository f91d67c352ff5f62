// Package loop drives a game.Game one frame at a time: poll discrete events,
// apply them, advance the simulation, then draw.
package loop

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/pong/internal/game"
	"github.com/lox/pong/internal/render"
)

// DefaultMaxFrameDelta caps the step fed to the simulation after a stall.
const DefaultMaxFrameDelta = 0.25

// InputSource supplies held movement keys and queued discrete events.
type InputSource interface {
	HeldKeys() game.KeySet
	PollDiscreteEvents() []game.Event
}

// Option configures a Loop.
type Option func(*Loop)

// WithMaxFrameDelta sets the largest dt passed to Update. Zero disables the cap.
func WithMaxFrameDelta(seconds float64) Option {
	return func(l *Loop) {
		l.maxDelta = seconds
	}
}

// WithTheme sets the palette frames are drawn with.
func WithTheme(theme render.Theme) Option {
	return func(l *Loop) {
		l.theme = theme
	}
}

// Loop owns the per-frame ordering between its collaborators.
type Loop struct {
	game     *game.Game
	clock    Clock
	input    InputSource
	renderer render.Renderer
	logger   *log.Logger
	theme    render.Theme
	maxDelta float64
	frames   uint64
	elapsed  float64
}

// New wires a loop around an existing game.
func New(g *game.Game, clock Clock, input InputSource, renderer render.Renderer, logger *log.Logger, opts ...Option) *Loop {
	l := &Loop{
		game:     g,
		clock:    clock,
		input:    input,
		renderer: renderer,
		logger:   logger.WithPrefix("loop"),
		theme:    render.DefaultTheme,
		maxDelta: DefaultMaxFrameDelta,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Frame runs one iteration and returns false once a Quit event is seen.
// Nothing is updated or drawn on the quitting frame.
func (l *Loop) Frame() bool {
	dt := l.clamp(l.clock.Elapsed())

	if l.game.HandleDiscreteEvents(l.input.PollDiscreteEvents()) {
		l.logger.Info("Quit received", "frames", l.frames)
		return false
	}

	l.game.Update(dt, l.input.HeldKeys())
	render.DrawFrame(l.renderer, l.game.Snapshot(), l.theme)
	l.frames++
	l.elapsed += dt
	return true
}

// Run calls Frame until quit or until ctx is cancelled. It does not pace
// frames; callers with a real clock schedule frames themselves.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !l.Frame() {
			return nil
		}
	}
}

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Elapsed returns the simulated seconds fed to completed frames, after
// clamping. It runs on while the game is paused.
func (l *Loop) Elapsed() float64 {
	return l.elapsed
}

// Game returns the game driven by this loop.
func (l *Loop) Game() *game.Game {
	return l.game
}

func (l *Loop) clamp(dt float64) float64 {
	if dt < 0 {
		l.logger.Debug("Negative frame delta clamped", "dt", dt)
		return 0
	}
	if l.maxDelta > 0 && dt > l.maxDelta {
		l.logger.Debug("Long frame delta clamped", "dt", dt, "max", l.maxDelta)
		return l.maxDelta
	}
	return dt
}
