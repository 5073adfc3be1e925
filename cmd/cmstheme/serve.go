package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cmstheme "github.com/goliatone/go-cmstheme"
	"github.com/goliatone/go-cmstheme/internal/seed"
	"github.com/goliatone/go-cmstheme/internal/server"
	"github.com/goliatone/go-cmstheme/pkg/blog"
	"github.com/goliatone/go-cmstheme/pkg/i18n"
)

func serveCmd(configPath func() string) *cobra.Command {
	var (
		addr    string
		seedNow bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog, component API, static assets and metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath())
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if seedNow || cfg.Database.Seed {
				if err := seedIfEmpty(ctx, store, logger); err != nil {
					return err
				}
			}

			registry, err := newRegistry(cfg)
			if err != nil {
				return err
			}
			selector, err := newSelector(cfg)
			if err != nil {
				return err
			}
			catalog, err := i18n.DefaultCatalog()
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, server.Deps{
				Logger:     logger,
				Store:      store,
				Components: registry,
				Translator: catalog,
				Themes:     selector,
				Templates:  cmstheme.TemplatesFS(),
				Static:     cmstheme.StaticFS(),
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&seedNow, "seed", false, "load sample posts into an empty database")
	return cmd
}

func seedIfEmpty(ctx context.Context, store blog.Store, logger *slog.Logger) error {
	fixture, err := seed.Sample()
	if err != nil {
		return err
	}
	res, applied, err := seed.ApplyIfEmpty(ctx, store, fixture)
	if err != nil {
		return err
	}
	if applied {
		logger.Info("seeded sample content", slog.Int("categories", res.Categories), slog.Int("posts", res.Posts))
	}
	return nil
}
