package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/pong/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimer is a Timer the test sets directly
type manualTimer struct{ now float64 }

func (m *manualTimer) Now() float64 { return m.now }

const sample = `
duration = 5

hold "p1_up" {
  from = 0
  to   = 1
}

hold "p2_down" {
  from = 0.5
  to   = 2
}

press "restart" {
  at = 3
}

press "toggle_pause" {
  at = 1.5
}

press "toggle_pause" {
  at = 1.5
}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)

	assert.Equal(t, DefaultStep, s.Step)
	assert.Equal(t, 5.0, s.Duration)
	assert.Equal(t, []Hold{
		{Key: game.MoveP1Up, From: 0, To: 1},
		{Key: game.MoveP2Down, From: 0.5, To: 2},
	}, s.Holds)
	assert.Equal(t, []Press{
		{Event: game.TogglePause, At: 1.5},
		{Event: game.TogglePause, At: 1.5},
		{Event: game.Restart, At: 3},
	}, s.Presses)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"missing duration", `step = 0.1`, "failed to decode"},
		{"zero duration", `duration = 0`, "duration must be positive"},
		{"negative step", "duration = 1\nstep = -1", "step must be positive"},
		{"unknown key", "duration = 1\nhold \"jump\" {\n  from = 0\n  to = 1\n}\n", `unknown key "jump"`},
		{"empty hold", "duration = 1\nhold \"p1_up\" {\n  from = 1\n  to = 1\n}\n", "from < to"},
		{"unknown event", "duration = 1\npress \"serve\" {\n  at = 0\n}\n", `unknown event "serve"`},
		{"negative press", "duration = 1\npress \"quit\" {\n  at = -1\n}\n", "cannot be negative"},
		{"syntax", `duration = `, "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Presses, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestPlayer(t *testing.T) {
	s, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)

	timer := &manualTimer{}
	p := NewPlayer(s, timer)

	assert.Equal(t, game.NewKeySet(game.MoveP1Up), p.HeldKeys())
	assert.Empty(t, p.PollDiscreteEvents())

	timer.now = 0.75
	assert.Equal(t, game.NewKeySet(game.MoveP1Up, game.MoveP2Down), p.HeldKeys())

	timer.now = 1
	assert.Equal(t, game.NewKeySet(game.MoveP2Down), p.HeldKeys(), "hold end is exclusive")

	timer.now = 3.2
	assert.Equal(t, []game.Event{game.TogglePause, game.TogglePause, game.Restart}, p.PollDiscreteEvents(),
		"late polls deliver every due press in order")
	assert.Empty(t, p.PollDiscreteEvents())
	assert.True(t, p.HeldKeys().Empty())

	timer.now = 5
	assert.Equal(t, []game.Event{game.Quit}, p.PollDiscreteEvents())
	assert.Empty(t, p.PollDiscreteEvents(), "quit is emitted once")
}
