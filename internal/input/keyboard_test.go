package input

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pong/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestKeyboard(t *testing.T) (*Keyboard, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	kb := NewKeyboard(clock, NewBindings(DefaultKeyMap()), logger,
		WithRepeatDelay(400*time.Millisecond),
		WithHold(100*time.Millisecond))
	return kb, clock
}

func TestKeyboardHold(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh press covers the repeat delay", func(t *testing.T) {
		kb, clock := newTestKeyboard(t)
		require.True(t, kb.HandleKey(runeKey("w")))
		assert.True(t, kb.HeldKeys().Has(game.MoveP1Up))

		clock.Advance(399 * time.Millisecond).MustWait(ctx)
		assert.True(t, kb.HeldKeys().Has(game.MoveP1Up))

		clock.Advance(time.Millisecond).MustWait(ctx)
		assert.False(t, kb.HeldKeys().Has(game.MoveP1Up))
	})

	t.Run("autorepeat extends by the hold window", func(t *testing.T) {
		kb, clock := newTestKeyboard(t)
		kb.HandleKey(tea.KeyMsg{Type: tea.KeyUp})

		clock.Advance(350 * time.Millisecond).MustWait(ctx)
		kb.HandleKey(tea.KeyMsg{Type: tea.KeyUp})

		clock.Advance(90 * time.Millisecond).MustWait(ctx)
		assert.True(t, kb.HeldKeys().Has(game.MoveP2Up))

		clock.Advance(20 * time.Millisecond).MustWait(ctx)
		assert.True(t, kb.HeldKeys().Empty())
	})

	t.Run("second tap keeps the fresh press window", func(t *testing.T) {
		kb, clock := newTestKeyboard(t)
		kb.HandleKey(runeKey("s"))

		clock.Advance(50 * time.Millisecond).MustWait(ctx)
		kb.HandleKey(runeKey("s"))

		clock.Advance(200 * time.Millisecond).MustWait(ctx)
		assert.True(t, kb.HeldKeys().Has(game.MoveP1Down), "still inside the first press window")

		clock.Advance(150 * time.Millisecond).MustWait(ctx)
		assert.False(t, kb.HeldKeys().Has(game.MoveP1Down))
	})

	t.Run("opposite direction releases", func(t *testing.T) {
		kb, _ := newTestKeyboard(t)
		kb.HandleKey(runeKey("w"))
		kb.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
		kb.HandleKey(runeKey("s"))

		held := kb.HeldKeys()
		assert.False(t, held.Has(game.MoveP1Up))
		assert.True(t, held.Has(game.MoveP1Down))
		assert.True(t, held.Has(game.MoveP2Up), "other paddle unaffected")
	})
}

func TestKeyboardEvents(t *testing.T) {
	kb, _ := newTestKeyboard(t)

	assert.True(t, kb.HandleKey(runeKey("p")))
	assert.True(t, kb.HandleKey(runeKey("r")))
	assert.True(t, kb.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.False(t, kb.HandleKey(runeKey("x")))

	assert.Equal(t, []game.Event{game.TogglePause, game.Restart, game.Quit}, kb.PollDiscreteEvents())
	assert.Empty(t, kb.PollDiscreteEvents(), "events are drained once")
	assert.True(t, kb.HeldKeys().Empty(), "discrete keys never count as held")
}

func TestCustomBindings(t *testing.T) {
	m := DefaultKeyMap()
	m.Move[game.MoveP2Up] = []string{"i"}
	m.Move[game.MoveP2Down] = []string{"k"}
	m.Pause = []string{" ", "p"}

	b := NewBindings(m)
	kb := NewKeyboard(quartz.NewMock(t), b, log.NewWithOptions(io.Discard, log.Options{}))

	kb.HandleKey(runeKey("i"))
	assert.True(t, kb.HeldKeys().Has(game.MoveP2Up))
	assert.False(t, kb.HandleKey(tea.KeyMsg{Type: tea.KeyUp}), "default arrow no longer bound")

	kb.HandleKey(runeKey(" "))
	assert.Equal(t, []game.Event{game.TogglePause}, kb.PollDiscreteEvents())

	help := b.ShortHelp()
	require.Len(t, help, 5)
	assert.Equal(t, "w/s", help[0].Help().Key)
	assert.Equal(t, "i/k", help[1].Help().Key)
	assert.Equal(t, "right paddle", help[1].Help().Desc)
	assert.Contains(t, b.String(), "p2_up=i")
}
