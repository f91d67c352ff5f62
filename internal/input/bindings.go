package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/lox/pong/internal/game"
)

// KeyMap names the terminal keys for every control, in bubbletea key
// notation ("w", "up", "ctrl+c", ...).
type KeyMap struct {
	Move    [4][]string // indexed by game.Key
	Pause   []string
	Restart []string
	Quit    []string
}

// DefaultKeyMap is W/S for the left paddle and the arrow keys for the right.
func DefaultKeyMap() KeyMap {
	var m KeyMap
	m.Move[game.MoveP1Up] = []string{"w"}
	m.Move[game.MoveP1Down] = []string{"s"}
	m.Move[game.MoveP2Up] = []string{"up"}
	m.Move[game.MoveP2Down] = []string{"down"}
	m.Pause = []string{"p"}
	m.Restart = []string{"r"}
	m.Quit = []string{"q", "esc", "ctrl+c"}
	return m
}

// Bindings is the resolved set of key bindings. It implements help.KeyMap.
type Bindings struct {
	Move    [4]key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding

	paddles [2]key.Binding // help-only, one per side
}

// NewBindings resolves a KeyMap into bindings.
func NewBindings(m KeyMap) Bindings {
	b := Bindings{
		Pause:   key.NewBinding(key.WithKeys(m.Pause...), key.WithHelp(first(m.Pause), "pause")),
		Restart: key.NewBinding(key.WithKeys(m.Restart...), key.WithHelp(first(m.Restart), "restart")),
		Quit:    key.NewBinding(key.WithKeys(m.Quit...), key.WithHelp(first(m.Quit), "quit")),
	}
	for k, keys := range m.Move {
		b.Move[k] = key.NewBinding(key.WithKeys(keys...))
	}
	for side, ctl := range game.Controls {
		up, down := m.Move[ctl.Up], m.Move[ctl.Down]
		b.paddles[side] = key.NewBinding(
			key.WithKeys(append(append([]string{}, up...), down...)...),
			key.WithHelp(first(up)+"/"+first(down), game.PaddleSide(side).String()+" paddle"),
		)
	}
	return b
}

func first(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	return keys[0]
}

// ShortHelp implements help.KeyMap.
func (b Bindings) ShortHelp() []key.Binding {
	return []key.Binding{b.paddles[game.Left], b.paddles[game.Right], b.Pause, b.Restart, b.Quit}
}

// FullHelp implements help.KeyMap.
func (b Bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.paddles[game.Left], b.paddles[game.Right]},
		{b.Pause, b.Restart, b.Quit},
	}
}

// String lists every binding, for logging.
func (b Bindings) String() string {
	var parts []string
	for k, mb := range b.Move {
		parts = append(parts, game.Key(k).String()+"="+strings.Join(mb.Keys(), ","))
	}
	parts = append(parts,
		"pause="+strings.Join(b.Pause.Keys(), ","),
		"restart="+strings.Join(b.Restart.Keys(), ","),
		"quit="+strings.Join(b.Quit.Keys(), ","),
	)
	return strings.Join(parts, " ")
}
