package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/lox/pong/internal/config"
	"github.com/lox/pong/internal/font"
	"github.com/lox/pong/internal/game"
	"github.com/lox/pong/internal/input"
	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/render"
	"github.com/lox/pong/internal/tui"
	"golang.org/x/sync/errgroup"
)

type PlayCmd struct {
	Config string `kong:"default='pong.hcl',help='Settings file (defaults apply when it does not exist)'"`
	Theme  string `kong:"help='Override the colour theme'"`
	Debug  bool   `kong:"help='Log at debug level'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.Theme != "" {
		cfg.Display.Theme = c.Theme
	}
	if c.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	f, err := font.Load(cfg.Display.Font, cfg.Display.FontDir)
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	// the terminal belongs to the game, so logs go to a file
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, cfg.Log.Level, "pong")
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	bindings := input.NewBindings(cfg.KeyMap())
	logger.Info("Starting match", "fps", cfg.Display.FPS, "theme", cfg.Display.Theme, "font", f.Name)
	logger.Debug("Key bindings", "bindings", bindings.String())

	kb := input.NewKeyboard(clock, bindings, logger,
		input.WithHold(cfg.Hold()),
		input.WithRepeatDelay(cfg.RepeatDelay()),
	)

	canvasOpts := []render.CanvasOption{render.WithLipglossRenderer(lipgloss.NewRenderer(os.Stdout))}
	if profile, forced := cfg.ColorProfile(); forced {
		canvasOpts = append(canvasOpts, render.WithProfile(profile))
	}
	canvas := render.NewCanvas(f, game.FieldWidth, game.FieldHeight, canvasOpts...)

	l := loop.New(game.New(game.WithLogger(logger)), loop.NewFrameClock(clock), kb, canvas, logger,
		loop.WithTheme(cfg.Theme()),
		loop.WithMaxFrameDelta(cfg.MaxFrameDelta()),
	)
	model := tui.NewTUIModel(l, kb, canvas, cfg.FrameInterval(), logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	eg.Go(func() error {
		defer close(done)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("terminal program failed: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		select {
		case <-ctx.Done():
			logger.Info("Received signal, shutting down")
			p.Quit()
		case <-done:
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Info("Match closed", "frames", l.Frames())
	return nil
}
