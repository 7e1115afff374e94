package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/internal/app"
	"github.com/goliatone/go-resumegen/internal/config"
	"github.com/goliatone/go-resumegen/internal/logging"
	"github.com/goliatone/go-resumegen/internal/server"
)

func main() {
	cfg, err := config.Load("resumegen-server", os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewLogger(logging.EncodingJSON)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("build editor", zap.Error(err))
	}

	srv, err := server.New(deps.Controller,
		server.WithGenerator(deps.Generator),
		server.WithTheme(deps.Selector, cfg.Theme),
		server.WithLogger(logger.Named("http")),
	)
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}
	httpServer := srv.HTTPServer(cfg.Addr)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("data_dir", cfg.DataDir))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	if err := deps.Controller.Close(); err != nil {
		logger.Error("flush pending save", zap.Error(err))
	}
	logger.Info("stopped")
}
