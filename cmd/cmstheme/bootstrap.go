package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	cmstheme "github.com/goliatone/go-cmstheme"
	"github.com/goliatone/go-cmstheme/internal/config"
	"github.com/goliatone/go-cmstheme/internal/logging"
	"github.com/goliatone/go-cmstheme/internal/store/postgres"
	"github.com/goliatone/go-cmstheme/internal/store/sqlite"
	"github.com/goliatone/go-cmstheme/internal/store/sqlstore"
	"github.com/goliatone/go-cmstheme/pkg/components"
	"github.com/goliatone/go-cmstheme/pkg/theming"
)

func loadConfig(path string) (*config.Config, error) {
	return config.Load(path)
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	return logging.New(w, cfg.Log.Level, cfg.Log.Format)
}

func openStore(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.Database.DSN)
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.Database.DSN)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func newRegistry(cfg *config.Config) (*components.Registry, error) {
	return cmstheme.NewComponentRegistry(cfg.Choices)
}

func newSelector(cfg *config.Config) (*theming.Selector, error) {
	selector := theming.NewSelector(cfg.Theme.Name, cfg.Theme.Variant)
	manifest, err := theming.DefaultManifest()
	if err != nil {
		return nil, err
	}
	if err := selector.Register(manifest); err != nil {
		return nil, err
	}
	if cfg.Theme.Manifest == "" {
		return selector, nil
	}
	data, err := os.ReadFile(cfg.Theme.Manifest)
	if err != nil {
		return nil, fmt.Errorf("read theme manifest: %w", err)
	}
	custom, err := theming.LoadManifest(data)
	if err != nil {
		return nil, err
	}
	if err := selector.Register(custom); err != nil {
		return nil, err
	}
	return selector, nil
}
