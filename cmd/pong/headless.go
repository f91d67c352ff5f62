package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/pong/internal/config"
	"github.com/lox/pong/internal/fileutil"
	"github.com/lox/pong/internal/font"
	"github.com/lox/pong/internal/headless"
	"github.com/lox/pong/internal/script"
)

type HeadlessCmd struct {
	Script   string `kong:"required,type='existingfile',help='Input script (HCL)'"`
	Config   string `kong:"default='pong.hcl',help='Settings file for theme and font'"`
	Cols     int    `kong:"default='80',help='Frame width in characters'"`
	Rows     int    `kong:"default='24',help='Frame height in lines'"`
	Out      string `kong:"help='Write a JSON summary to this file'"`
	Quiet    bool   `kong:"short='q',help='Only print the summary line'"`
	LogLevel string `kong:"default='warn',enum='debug,info,warn,error',help='Log level for stderr'"`
}

func (c *HeadlessCmd) Run() error {
	logger, err := newLogger(os.Stderr, c.LogLevel, "headless")
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	f, err := font.Load(cfg.Display.Font, cfg.Display.FontDir)
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	s, err := script.Load(c.Script)
	if err != nil {
		return err
	}

	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", c.Cols, c.Rows)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := headless.Run(ctx, headless.Options{
		Script:        s,
		Font:          f,
		Theme:         cfg.Theme(),
		Cols:          c.Cols,
		Rows:          c.Rows,
		MaxFrameDelta: cfg.MaxFrameDelta(),
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if !c.Quiet {
		fmt.Println(summary.Frame)
	}
	fmt.Println(summary)

	if c.Out != "" {
		if err := fileutil.WriteJSON(c.Out, summary); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		logger.Info("Summary written", "path", c.Out)
	}
	return nil
}
