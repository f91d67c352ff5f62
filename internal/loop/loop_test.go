package loop

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pong/internal/game"
	"github.com/lox/pong/internal/render"
	"github.com/lox/pong/internal/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRenderer counts presented frames
type countingRenderer struct {
	presents int
}

func (r *countingRenderer) Clear(render.Color) {}
func (r *countingRenderer) DrawRect(x, y, w, h float64, c render.Color) {}
func (r *countingRenderer) DrawText(text string, x, y float64, c render.Color) {}
func (r *countingRenderer) MeasureText(string) (float64, float64) { return 0, 0 }
func (r *countingRenderer) Present() { r.presents++ }

// queuedInput hands out a fixed batch of events on the first poll
type queuedInput struct {
	events []game.Event
	held   game.KeySet
}

func (q *queuedInput) HeldKeys() game.KeySet { return q.held }
func (q *queuedInput) PollDiscreteEvents() []game.Event {
	ev := q.events
	q.events = nil
	return ev
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestFrameQuit(t *testing.T) {
	g := game.New()
	before := g.Snapshot()
	r := &countingRenderer{}
	in := &queuedInput{events: []game.Event{game.Quit}, held: game.NewKeySet(game.MoveP1Up)}
	l := New(g, &FixedClock{Step: 0.1}, in, r, quietLogger())

	assert.False(t, l.Frame())
	assert.Equal(t, 0, r.presents, "nothing drawn on the quitting frame")
	assert.Equal(t, uint64(0), l.Frames())
	assert.Equal(t, before, g.Snapshot(), "nothing updated on the quitting frame")
}

func TestFrameAppliesEventsBeforeUpdate(t *testing.T) {
	g := game.New()
	before := g.Snapshot()
	r := &countingRenderer{}
	in := &queuedInput{events: []game.Event{game.TogglePause}}
	l := New(g, &FixedClock{Step: 0.1}, in, r, quietLogger())

	require.True(t, l.Frame())
	assert.Equal(t, game.Paused, g.Round())
	assert.Equal(t, before.Ball, g.Snapshot().Ball, "paused before the update ran")
	assert.Equal(t, 1, r.presents, "paused frames are still drawn")
}

func TestFrameClampsDelta(t *testing.T) {
	tests := []struct {
		name  string
		step  float64
		opts  []Option
		wantX float64
	}{
		{"default cap", 5, nil, 400 + 0.25*400},
		{"custom cap", 5, []Option{WithMaxFrameDelta(0.1)}, 400 + 0.1*400},
		{"under the cap", 0.05, nil, 400 + 0.05*400},
		{"negative step", -1, nil, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := game.New()
			l := New(g, &FixedClock{Step: tt.step}, &queuedInput{}, &countingRenderer{}, quietLogger(), tt.opts...)
			require.True(t, l.Frame())
			assert.InDelta(t, tt.wantX, g.Snapshot().Ball.X, 1e-9)
		})
	}
}

func TestElapsedCountsClampedTime(t *testing.T) {
	l := New(game.New(), &FixedClock{Step: 0.5}, &queuedInput{}, &countingRenderer{}, quietLogger())
	for range 3 {
		require.True(t, l.Frame())
	}
	assert.InDelta(t, 0.75, l.Elapsed(), 1e-9)

	l.input = &queuedInput{events: []game.Event{game.Quit}}
	require.False(t, l.Frame())
	assert.InDelta(t, 0.75, l.Elapsed(), 1e-9, "the quitting frame adds nothing")
}

func TestFrameClock(t *testing.T) {
	ctx := context.Background()
	mock := quartz.NewMock(t)
	c := NewFrameClock(mock)

	mock.Advance(16 * time.Millisecond).MustWait(ctx)
	assert.InDelta(t, 0.016, c.Elapsed(), 1e-9)

	assert.Equal(t, 0.0, c.Elapsed(), "measured from the previous call")

	mock.Advance(time.Second).MustWait(ctx)
	assert.InDelta(t, 1.0, c.Elapsed(), 1e-9)
}

func TestFixedClock(t *testing.T) {
	c := &FixedClock{Step: 0.5}
	assert.Equal(t, 0.5, c.Elapsed())
	assert.Equal(t, 0.5, c.Elapsed())
	assert.Equal(t, 1.0, c.Now())
}

func TestRunScripted(t *testing.T) {
	s, err := script.Parse([]byte("duration = 1.5\n"), "run.hcl")
	require.NoError(t, err)

	clock := &FixedClock{Step: s.Step}
	r := &countingRenderer{}
	g := game.New()
	l := New(g, clock, script.NewPlayer(s, clock), r, quietLogger())

	require.NoError(t, l.Run(context.Background()))

	// the opening serve passes the right paddle after bouncing off the floor
	st := g.Snapshot()
	assert.Equal(t, game.Score{P1: 1}, st.Score)
	assert.Equal(t, game.Playing, st.Round)
	assert.GreaterOrEqual(t, clock.Now(), 1.5)
	assert.Equal(t, int(l.Frames()), r.presents)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(game.New(), &FixedClock{Step: 0.1}, &queuedInput{}, &countingRenderer{}, quietLogger())
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
	assert.Equal(t, uint64(0), l.Frames())
}
