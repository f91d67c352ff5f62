package headless

import (
	"context"
	"strings"
	"testing"

	"github.com/lox/pong/internal/font"
	"github.com/lox/pong/internal/render"
	"github.com/lox/pong/internal/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T, src string) Options {
	t.Helper()
	s, err := script.Parse([]byte(src), "test.hcl")
	require.NoError(t, err)
	f, err := font.Load(font.DefaultName, "")
	require.NoError(t, err)
	return Options{
		Script:        s,
		Font:          f,
		Theme:         render.DefaultTheme,
		Cols:          80,
		Rows:          24,
		MaxFrameDelta: 0.25,
	}
}

func TestRun(t *testing.T) {
	t.Run("unattended match plays to a winner", func(t *testing.T) {
		// with nobody moving, the serve alternates and player 1 reaches five first
		s, err := Run(context.Background(), testOptions(t, "duration = 10\n"))
		require.NoError(t, err)

		assert.Equal(t, 5, s.P1)
		assert.Equal(t, 4, s.P2)
		assert.Equal(t, "game_over", s.Round)
		assert.Equal(t, 1, s.Winner)
		assert.InDelta(t, 10.0, s.Seconds, 2.0/60)
		assert.Contains(t, s.String(), "player 1 wins")

		lines := strings.Split(s.Frame, "\n")
		require.Len(t, lines, 24)
		for _, line := range lines {
			assert.Len(t, line, 80)
		}
	})

	t.Run("pausing freezes the score", func(t *testing.T) {
		s, err := Run(context.Background(), testOptions(t, `
duration = 3

press "toggle_pause" {
  at = 0.5
}
`))
		require.NoError(t, err)
		assert.Equal(t, 0, s.P1+s.P2)
		assert.Equal(t, "paused", s.Round)
		assert.Zero(t, s.Winner)
		assert.NotContains(t, s.String(), "wins")
	})

	t.Run("seconds follow the clamped frames", func(t *testing.T) {
		// four half-second steps reach the duration; three frames run, each capped at 0.25
		s, err := Run(context.Background(), testOptions(t, "duration = 2\nstep = 0.5\n"))
		require.NoError(t, err)
		assert.Equal(t, uint64(3), s.Frames)
		assert.InDelta(t, 0.75, s.Seconds, 1e-9)
	})

	t.Run("missing collaborators", func(t *testing.T) {
		opts := testOptions(t, "duration = 1\n")
		opts.Font = nil
		_, err := Run(context.Background(), opts)
		assert.ErrorContains(t, err, "no font")

		opts = testOptions(t, "duration = 1\n")
		opts.Script = nil
		_, err = Run(context.Background(), opts)
		assert.ErrorContains(t, err, "no script")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, testOptions(t, "duration = 1\n"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
