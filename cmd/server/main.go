package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtding233/payout-engine/internal/api"
	"github.com/xtding233/payout-engine/internal/config"
	"github.com/xtding233/payout-engine/internal/config/env"
	"github.com/xtding233/payout-engine/internal/logging"
	"github.com/xtding233/payout-engine/internal/preset"
)

const serviceName = "payout-engine"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := config.Load(".env"); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	logCfg, err := env.NewLogConfig()
	if err != nil {
		return err
	}
	logger := logging.Setup(logCfg.Level(), serviceName)

	httpCfg, err := env.NewHTTPConfig()
	if err != nil {
		return err
	}
	presetCfg, err := env.NewPresetConfig()
	if err != nil {
		return err
	}
	engineCfg, err := env.NewEngineConfig()
	if err != nil {
		return err
	}

	loader := preset.NewLoader(presetCfg.Dir())
	if names, err := loader.Names(); err != nil {
		logger.Warn("listing presets failed", slog.Any("error", err))
	} else {
		logger.Info("presets available", slog.String("dir", presetCfg.Dir()), slog.Any("names", names))
	}

	watcher := preset.NewFileWatcher(presetCfg.Dir(), presetCfg.PollInterval(), func(string) { loader.Invalidate() })
	watcher.Logger = logger
	watcher.Start()
	defer watcher.Stop()

	handler := api.NewHandler(api.HandlerDeps{
		Presets: loader,
		Engine:  engineCfg,
		Logger:  logger,
	})
	srv := &http.Server{
		Addr:              httpCfg.Address(),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
