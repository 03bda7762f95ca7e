package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/fps/internal/config"
	"github.com/tomz197/fps/internal/loop"
	"github.com/tomz197/fps/internal/score"
	"golang.org/x/term"
)

const defaultDataApp = "fps-arena"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal belongs to the game, so logs only go to a file when asked.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("FPS_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "fps")

	settings, err := config.Load(config.GetEnv("FPS_CONFIG", ""))
	if err != nil {
		return err
	}
	scores := score.Open(config.GetEnv("FPS_DATA_APP", defaultDataApp), logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	t := loop.NewTerminal(reader, os.Stdout, loop.TerminalOptions{
		Settings: settings,
		Scores:   scores,
		Logger:   logger,
		Username: os.Getenv("USER"),
	})
	if err := t.Run(ctx); err != nil {
		return err
	}

	if rec := scores.Record(); rec.Games > 0 {
		logger.Info("scores", "best", rec.Best, "games", rec.Games)
	}
	return nil
}
