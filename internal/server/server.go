// Package server assembles the theme's HTTP surface: the searchable blog
// listing and its vendor routes, the component editor API, static assets,
// health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cmstheme/components/postlist"
	"github.com/goliatone/go-cmstheme/components/stories"
	"github.com/goliatone/go-cmstheme/internal/config"
	"github.com/goliatone/go-cmstheme/pkg/blog"
	"github.com/goliatone/go-cmstheme/pkg/components"
	"github.com/goliatone/go-cmstheme/pkg/i18n"
	"github.com/goliatone/go-cmstheme/pkg/render/template/pongo"
	"github.com/goliatone/go-cmstheme/pkg/routes"
	"github.com/goliatone/go-cmstheme/pkg/templatetags"
	"github.com/goliatone/go-cmstheme/pkg/theming"
)

// StaticPath is where StaticFS is served; it matches the bundled theme
// manifest's asset prefix.
const StaticPath = "/static"

// Deps are the collaborators a Server is built from.
type Deps struct {
	Logger     *slog.Logger
	Store      blog.Store
	Components *components.Registry
	Translator i18n.Translator
	Themes     theme.ThemeSelector
	Templates  fs.FS
	Static     fs.FS
	Metrics    *Metrics
}

// Server is a configured HTTP handler plus its listener settings.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	routes  routes.Table
	metrics *Metrics
	handler http.Handler
}

// New wires the blog views, template engine and API onto one router.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Store == nil {
		return nil, errors.New("server: missing store")
	}
	if deps.Components == nil {
		return nil, errors.New("server: missing component registry")
	}
	if deps.Templates == nil && cfg.Theme.Templates == "" {
		return nil, errors.New("server: missing templates")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	negotiator := i18n.NewNegotiator(cfg.I18n.Languages...)
	language := func(r *http.Request) string {
		return negotiator.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	}

	engineOpts := []pongo.Option{
		pongo.WithTemplateFunc(i18n.TemplateFuncs(deps.Translator, nil)),
		pongo.WithGlobalData(map[string]any{"site_name": "Blog"}),
	}
	if cfg.Theme.Templates != "" {
		engineOpts = append(engineOpts, pongo.WithBaseDir(cfg.Theme.Templates))
	}
	if deps.Templates != nil {
		engineOpts = append(engineOpts, pongo.WithFS(deps.Templates))
	}
	engine, err := pongo.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("server: template engine: %w", err)
	}

	fallback := cfg.I18n.Default
	if fallback == "" {
		fallback = negotiator.Default()
	}
	tags := &templatetags.Library{
		Categories:  blog.NewService(deps.Store, fallback),
		PageParam:   cfg.Blog.PageParam,
		SearchParam: cfg.Blog.SearchParam,
	}

	storyOpts := []stories.OptionFn{
		stories.WithBasePath(cfg.Blog.BasePath),
		stories.WithPageParam(cfg.Blog.PageParam),
		stories.WithPerPage(cfg.Blog.PerPage),
		stories.WithRadius(cfg.Blog.Radius),
		stories.WithLanguage(language),
		stories.WithLogger(logger),
	}
	if deps.Themes != nil {
		storyOpts = append(storyOpts, stories.WithContextHook(
			theming.ContextHook(deps.Themes, cfg.Theme.Name, cfg.Theme.Variant, cfg.Theme.VariantParam)))
	}
	app, err := stories.New(deps.Store, engine, tags, storyOpts...)
	if err != nil {
		return nil, fmt.Errorf("server: blog views: %w", err)
	}

	table := postlist.Routes(app, postlist.WithSearchParam(cfg.Blog.SearchParam))
	tags.Routes = table
	for name, fn := range tags.Globals() {
		if err := engine.RegisterFunc(name, fn); err != nil {
			return nil, fmt.Errorf("server: template func %s: %w", name, err)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	if err := table.Mount(r); err != nil {
		return nil, fmt.Errorf("server: mount blog routes: %w", err)
	}
	if latest, err := table.Reverse(stories.RouteLatest); err == nil && latest != "/" {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, latest, http.StatusFound)
		})
	}

	api := &componentAPI{
		registry:   deps.Components,
		translator: deps.Translator,
		negotiator: negotiator,
		metrics:    metrics,
		logger:     logger,
	}
	r.Route(APIBasePath, api.routes)

	if deps.Static != nil {
		r.Handle(StaticPath+"/*", http.StripPrefix(StaticPath+"/", http.FileServer(http.FS(deps.Static))))
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Server.Metrics {
		r.Handle("/metrics", metrics.Handler())
	}

	return &Server{
		cfg:     cfg,
		logger:  logger,
		routes:  table,
		metrics: metrics,
		handler: r,
	}, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Routes returns the blog route table the server mounted.
func (s *Server) Routes() routes.Table { return s.routes }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
	}

	s.logger.Info("listening", slog.String("addr", httpServer.Addr), slog.String("blog", s.cfg.Blog.BasePath))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	grace := s.cfg.Server.ShutdownTimeout
	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("stopped")
	return nil
}
