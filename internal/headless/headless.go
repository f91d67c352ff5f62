// Package headless plays a scripted match without a terminal and reports
// the outcome.
package headless

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/pong/internal/font"
	"github.com/lox/pong/internal/game"
	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/render"
	"github.com/lox/pong/internal/script"
	"github.com/muesli/termenv"
)

// Options configures a headless run
type Options struct {
	Script        *script.Script
	Font          *font.Font
	Theme         render.Theme
	Cols, Rows    int
	MaxFrameDelta float64
	Logger        *log.Logger
}

// Summary is the result of a headless run
type Summary struct {
	Frames  uint64  `json:"frames"`
	Seconds float64 `json:"seconds"` // simulated time, after frame clamping
	P1      int     `json:"p1"`
	P2      int     `json:"p2"`
	Round   string  `json:"round"`
	Winner  int     `json:"winner,omitempty"`

	// Frame is the last drawn frame as ASCII art
	Frame string `json:"-"`
}

// Run replays the script against a fresh game until its implicit Quit.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Script == nil {
		return nil, fmt.Errorf("no script given")
	}
	if opts.Font == nil {
		return nil, fmt.Errorf("no font given")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	canvas := render.NewCanvas(opts.Font, game.FieldWidth, game.FieldHeight,
		render.WithLipglossRenderer(lipgloss.NewRenderer(io.Discard)),
		render.WithProfile(termenv.Ascii))
	canvas.Resize(opts.Cols, opts.Rows)

	clock := &loop.FixedClock{Step: opts.Script.Step}
	g := game.New(game.WithLogger(logger))
	l := loop.New(g, clock, script.NewPlayer(opts.Script, clock), canvas, logger,
		loop.WithTheme(opts.Theme),
		loop.WithMaxFrameDelta(opts.MaxFrameDelta),
	)

	if opts.MaxFrameDelta > 0 && opts.Script.Step > opts.MaxFrameDelta {
		logger.Warn("Script step exceeds the frame cap, the match runs slower than script time",
			"step", opts.Script.Step, "max_frame_delta", opts.MaxFrameDelta)
	}
	logger.Info("Starting headless run", "duration", opts.Script.Duration, "step", opts.Script.Step)
	if err := l.Run(ctx); err != nil {
		return nil, fmt.Errorf("headless run stopped: %w", err)
	}

	st := g.Snapshot()
	s := &Summary{
		Frames:  l.Frames(),
		Seconds: l.Elapsed(),
		P1:      st.Score.P1,
		P2:      st.Score.P2,
		Round:   st.Round.String(),
		Winner:  st.Winner(),
		Frame:   canvas.Frame(),
	}
	logger.Info("Headless run finished", "frames", s.Frames, "p1", s.P1, "p2", s.P2, "round", s.Round)
	return s, nil
}

// String formats the summary for the terminal.
func (s *Summary) String() string {
	out := fmt.Sprintf("%d frames in %.2fs, score %d - %d (%s)", s.Frames, s.Seconds, s.P1, s.P2, s.Round)
	if s.Winner != 0 {
		out += fmt.Sprintf(", player %d wins", s.Winner)
	}
	return out
}
