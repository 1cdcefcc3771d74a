package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rpggio/projeto/internal/config"
	"github.com/rpggio/projeto/internal/domain/message"
	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/rpggio/projeto/internal/restclient"
	"github.com/rpggio/projeto/internal/sqlite"
)

// app holds the wired services shared by every command.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	messages *message.Service
	projetos *projeto.Service

	closers []func() error
}

// newApp loads configuration and wires storage, the REST client and the
// domain services. stdio is true when stdout carries MCP frames.
func newApp(stdio bool) (*app, error) {
	if configPath != "" {
		if err := os.Setenv("PROJETO_CONFIG_PATH", configPath); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &app{cfg: cfg}

	// Command output goes to stdout, so logs always go to stderr or a file.
	logWriter := io.Writer(os.Stderr)
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file.Close)
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	a.logger.Debug("starting", "version", version, "stdio", stdio, "api", cfg.API.BaseURL)

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, db.Close)
	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, err
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client := restclient.New(cfg.API.BaseURL,
		restclient.WithTimeout(cfg.API.Timeout),
		restclient.WithToken(cfg.API.Token),
		restclient.WithMetrics(restclient.NewMetrics(a.registry)),
		restclient.WithLogger(a.logger),
	)

	a.messages = message.NewService(sqlite.NewMessageRepository(db), a.logger)

	var opts []projeto.ServiceOption
	if cfg.API.SilentListings {
		opts = append(opts, projeto.WithSilentListings())
	}
	a.projetos = projeto.NewService(client, a.messages, a.logger, opts...)

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
