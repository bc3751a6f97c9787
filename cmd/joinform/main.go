package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	joinform "github.com/goliatone/go-joinform"
	"github.com/goliatone/go-joinform/pkg/config"
	"github.com/goliatone/go-joinform/pkg/logging"
	"github.com/goliatone/go-joinform/pkg/renderers/tui"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	mode := flag.String("mode", "tui", "front end to run: tui or serve")
	addr := flag.String("addr", "", "listen address for serve mode (overrides config)")
	endpoint := flag.String("endpoint", "", "onboarding endpoint URL (overrides config)")
	variant := flag.String("variant", "", "HTML theme variant")
	flag.Parse()

	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *endpoint != "" {
		cfg.Endpoint.URL = *endpoint
	}
	if *variant != "" {
		cfg.Theme.Variant = *variant
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("configure logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *mode); err != nil {
		logger.Error("joinform exited", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		_ = logger.Sync()
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, mode string) error {
	app, err := joinform.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	switch mode {
	case "tui":
		session, err := app.NewSession(tui.WithPromptDriver(tui.NewSurveyDriver(os.Stdout)))
		if err != nil {
			return err
		}
		if err := session.Run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case "serve":
		srv, err := app.NewServer()
		if err != nil {
			return err
		}
		logger.Info("serving onboarding form",
			zap.String("addr", cfg.Server.Addr),
			zap.String("endpoint", cfg.Endpoint.URL))
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	default:
		return fmt.Errorf("unknown mode %q (want tui or serve)", mode)
	}
}
