// Package app wires a controller from a loaded Config for the binaries.
package app

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/internal/config"
	"github.com/goliatone/go-resumegen/pkg/controller"
	"github.com/goliatone/go-resumegen/pkg/notify"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/storage"
	"github.com/goliatone/go-resumegen/pkg/themes"
	"github.com/goliatone/go-resumegen/pkg/transfer"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

// Deps are the collaborators built from a Config.
type Deps struct {
	Controller *controller.Controller
	Generator  *orchestrator.Orchestrator
	Selector   theme.ThemeSelector
}

// NewKV returns the file store under cfg.DataDir, or an in-memory store when
// no directory is configured.
func NewKV(cfg config.Config) (storage.KV, error) {
	if cfg.DataDir == "" {
		return storage.NewMemoryKV(int(cfg.QuotaBytes)), nil
	}
	kv, err := storage.NewFileKV(cfg.DataDir, cfg.QuotaBytes)
	if err != nil {
		return nil, fmt.Errorf("app: storage: %w", err)
	}
	return kv, nil
}

// Build assembles the controller and the renderer pipeline, then loads the
// stored record.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Deps, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	kv, err := NewKV(cfg)
	if err != nil {
		return nil, err
	}
	schema, err := validation.NewSchemaValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: schema: %w", err)
	}
	selector, err := themes.NewSelector(themes.Manifest())
	if err != nil {
		return nil, fmt.Errorf("app: themes: %w", err)
	}
	importer := transfer.NewImporter(transfer.WithSchemaValidator(schema))

	gen := orchestrator.New(
		orchestrator.WithLogger(logger.Named("orchestrator")),
		orchestrator.WithImporter(importer),
		orchestrator.WithThemeSelector(selector, cfg.Theme),
	)
	adapter := storage.New(kv,
		storage.WithLogger(logger.Named("storage")),
		storage.WithDataKey(cfg.StorageKey),
		storage.WithPrefsKey(cfg.PrefsKey),
	)
	ctrl := controller.New(
		controller.WithContext(ctx),
		controller.WithStorage(adapter),
		controller.WithPreviewer(gen),
		controller.WithImporter(importer),
		controller.WithNotifier(notify.New(
			notify.WithDuration(cfg.ToastDuration),
			notify.WithLogger(logger.Named("notify")),
		)),
		controller.WithLogger(logger.Named("controller")),
		controller.WithAutoSaveDelay(cfg.AutoSaveDelay),
		controller.WithDefaultFormat(cfg.DefaultFormat),
	)
	ctrl.Load(ctx)

	return &Deps{Controller: ctrl, Generator: gen, Selector: selector}, nil
}
