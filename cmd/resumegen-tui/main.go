package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/internal/app"
	"github.com/goliatone/go-resumegen/internal/config"
	"github.com/goliatone/go-resumegen/internal/logging"
	"github.com/goliatone/go-resumegen/pkg/renderers/tui"
)

func main() {
	cfg, err := config.Load("resumegen-tui", os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewLogger(logging.EncodingConsole, "stderr")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	deps, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("build editor", zap.Error(err))
	}
	defer func() { _ = deps.Controller.Close() }()

	editor, err := tui.NewEditor(deps.Controller, tui.WithLogger(logger.Named("tui")))
	if err != nil {
		logger.Fatal("build tui", zap.Error(err))
	}

	if err := editor.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted")
			return
		}
		logger.Error("editor stopped", zap.Error(err))
		_ = deps.Controller.Close()
		os.Exit(1)
	}
}
