// Package tui runs the frame loop inside a Bubble Tea program.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/pong/internal/input"
	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/render"
)

// footerHeight is the number of terminal rows reserved below the field
const footerHeight = 1

// frameMsg asks the model to run one frame
type frameMsg time.Time

// TUIModel represents the Bubble Tea model for a local match
type TUIModel struct {
	loop     *loop.Loop
	keyboard *input.Keyboard
	canvas   *render.Canvas
	help     help.Model
	interval time.Duration
	logger   *log.Logger

	// Dimensions
	width       int
	height      int
	initialized bool

	quitting bool
}

// NewTUIModel creates a model that advances l every interval.
func NewTUIModel(l *loop.Loop, kb *input.Keyboard, canvas *render.Canvas, interval time.Duration, logger *log.Logger) *TUIModel {
	h := help.New()
	h.Styles.ShortKey = HelpKeyStyle
	h.Styles.ShortDesc = HelpDescStyle
	h.Styles.ShortSeparator = HelpSeparatorStyle

	return &TUIModel{
		loop:     l,
		keyboard: kb,
		canvas:   canvas,
		help:     h,
		interval: interval,
		logger:   logger.WithPrefix("tui"),
	}
}

// Init starts the frame ticker
func (m *TUIModel) Init() tea.Cmd {
	return m.tick()
}

func (m *TUIModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.canvas.Resize(msg.Width, max(0, msg.Height-footerHeight))
		m.initialized = true
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		if !m.keyboard.HandleKey(msg) {
			m.logger.Debug("Ignoring unbound key", "key", msg.String())
		}

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		if !m.loop.Frame() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.tick()
	}

	return m, nil
}

// View renders the field and the help footer
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.canvas.Frame(),
		m.help.View(m.keyboard.Bindings()),
	)
}

// Quitting reports whether the loop has asked to exit.
func (m *TUIModel) Quitting() bool {
	return m.quitting
}
