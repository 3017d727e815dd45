// Package main is the entry point for the books and wines API server.
// It wires together configuration, the document store, and the HTTP router.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aoideee/crud-api/internal/data"
	"github.com/aoideee/crud-api/internal/store"
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup. Defaults
// come from the environment; command-line flags override them.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (PORT, default 3000)
	environment string // Runtime environment: development, staging, or production
	db          struct {
		url string // Document store connection string
	}
	log struct {
		format string // text or json
		level  string // debug, info, warn or error
	}
	limiter struct {
		enabled bool    // Per-IP rate limiting, off by default
		rps     float64 // Tokens added per second
		burst   int     // Bucket capacity
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig
	logger *slog.Logger
	store  store.Store // Process-wide store handle, used for readiness checks
	models data.Models // Typed access to the books and wines collections
}

func main() {
	// A missing .env file is fine; real environment variables always win.
	_ = godotenv.Load()

	settings, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(settings.log.format, settings.log.level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	s, err := store.Open(ctx, settings.db.url)
	cancel()
	if err != nil {
		logger.Error(err.Error(), "db", store.Redact(settings.db.url))
		os.Exit(1)
	}

	logger.Info("document store connection established", "db", store.Redact(settings.db.url))

	app := &applicationDependencies{
		config: settings,
		logger: logger,
		store:  s,
		models: data.NewModels(s),
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// loadConfig reads defaults from getenv and then parses args over them.
func loadConfig(args []string, getenv func(string) string) (serverConfig, error) {
	var cfg serverConfig

	port := 3000
	if v := getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		port = p
	}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.IntVar(&cfg.port, "port", port, "Server port")
	fs.StringVar(&cfg.environment, "env", envOr(getenv, "APP_ENV", "development"), "Environment (development|staging|production)")
	fs.StringVar(&cfg.db.url, "db-url", store.URLFromEnv(getenv), "Document store URL (mongodb://, postgres://, sqlite://, memory://)")
	fs.StringVar(&cfg.log.format, "log-format", envOr(getenv, "LOG_FORMAT", "text"), "Log format (text|json)")
	fs.StringVar(&cfg.log.level, "log-level", envOr(getenv, "LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.limiter.enabled, "limiter-enabled", false, "Enable per-IP rate limiting")
	fs.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	fs.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger creates a structured logger that writes to stdout.
func newLogger(format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
