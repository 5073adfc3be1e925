package stories

import (
	"log/slog"
	"net/http"
)

// Route names published by the route table.
const (
	RouteLatest   = "posts-latest"
	RouteCategory = "posts-category"
	RouteArchive  = "posts-archive"
	RouteDetail   = "posts-detail"
)

// LanguageFunc picks the display language of a request.
type LanguageFunc func(r *http.Request) string

type Options struct {
	BasePath       string
	PageParam      string
	PerPage        int
	Radius         int
	ListTemplate   string
	DetailTemplate string
	Language       LanguageFunc
	Logger         *slog.Logger
	ContextHooks   []ContextHook
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BasePath:       "/blog",
		PageParam:      "page",
		PerPage:        10,
		Radius:         1,
		ListTemplate:   "blog/post_list",
		DetailTemplate: "blog/post_detail",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.PageParam == "" {
		opts.PageParam = "page"
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 10
	}
	if opts.Radius < 0 {
		opts.Radius = 0
	}
	if opts.ListTemplate == "" {
		opts.ListTemplate = "blog/post_list"
	}
	if opts.DetailTemplate == "" {
		opts.DetailTemplate = "blog/post_detail"
	}
	if opts.Language == nil {
		opts.Language = func(*http.Request) string { return "en" }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ContextHooks != nil {
		opts.ContextHooks = append([]ContextHook{}, opts.ContextHooks...)
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithPageParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageParam = name
	}
}

func WithPerPage(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PerPage = n
	}
}

func WithRadius(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Radius = n
	}
}

func WithTemplates(list, detail string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ListTemplate = list
		o.DetailTemplate = detail
	}
}

func WithLanguage(fn LanguageFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Language = fn
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithContextHook adds a hook run on every view's template context.
func WithContextHook(hook ContextHook) OptionFn {
	return func(o *Options) {
		if o == nil || hook == nil {
			return
		}
		o.ContextHooks = append(o.ContextHooks, hook)
	}
}
