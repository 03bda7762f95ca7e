package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/fps/internal/config"
	"github.com/tomz197/fps/internal/loop/server"
	"github.com/tomz197/fps/internal/score"
	"github.com/tomz197/fps/internal/session"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHost    = "0.0.0.0"
	defaultPort    = "8080"
	defaultDataApp = "fps-arena-web"
)

// Browser sessions get this long to finish after a shutdown notice.
const shutdownGrace = 5 * time.Second

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "web")
	if err := run(logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	settings, err := config.Load(config.GetEnv("FPS_CONFIG", ""))
	if err != nil {
		return err
	}
	scores := score.Open(config.GetEnv("FPS_DATA_APP", defaultDataApp), logger)
	sessions := server.NewServer()

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.Handle("/play", &session.Handler{
		Settings: settings,
		Scores:   scores,
		Logger:   logger,
		Server:   sessions,
	})

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting web server", "url", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "sessions", sessions.Count())
		sessions.Shutdown(shutdownGrace)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
