package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-cmstheme/pkg/components"
	"github.com/goliatone/go-cmstheme/pkg/forms"
	"github.com/goliatone/go-cmstheme/pkg/i18n"
	"github.com/goliatone/go-cmstheme/pkg/model"
	"github.com/goliatone/go-cmstheme/pkg/schema"
)

// APIBasePath is where the component API is mounted.
const APIBasePath = "/api/components"

const maxSettingsBytes = 1 << 20

type componentSummary struct {
	Name           string   `json:"name"`
	Plugin         string   `json:"plugin"`
	Label          string   `json:"label"`
	Description    string   `json:"description,omitempty"`
	Template       string   `json:"template,omitempty"`
	AllowChildren  bool     `json:"allowChildren"`
	RequiresParent bool     `json:"requiresParent,omitempty"`
	ChildClasses   []string `json:"childClasses,omitempty"`
	ParentClasses  []string `json:"parentClasses,omitempty"`
	Mixins         []string `json:"mixins,omitempty"`
}

type componentDetail struct {
	componentSummary
	Locale string     `json:"locale"`
	Form   model.Form `json:"form"`
}

type componentAPI struct {
	registry   *components.Registry
	translator i18n.Translator
	negotiator *i18n.Negotiator
	metrics    *Metrics
	logger     *slog.Logger
}

func (a *componentAPI) routes(r chi.Router) {
	r.Get("/", a.list)
	r.Get("/openapi.json", a.openapi)
	r.Get("/{name}", a.show)
	r.Post("/{name}/validate", a.validate)
}

func (a *componentAPI) list(w http.ResponseWriter, r *http.Request) {
	locale := a.locale(r)
	defs := a.registry.Definitions()
	out := make([]componentSummary, 0, len(defs))
	for _, def := range defs {
		out = append(out, a.summary(def, locale))
	}
	a.writeJSON(w, r, http.StatusOK, out)
}

func (a *componentAPI) show(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, err := a.registry.Get(name)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	form, err := a.registry.Form(def.Name)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	locale := a.locale(r)
	i18n.LocalizeForm(&form, locale, a.translator)
	a.writeJSON(w, r, http.StatusOK, componentDetail{
		componentSummary: a.summary(def, locale),
		Locale:           locale,
		Form:             form,
	})
}

func (a *componentAPI) validate(w http.ResponseWriter, r *http.Request) {
	form, err := a.registry.Form(chi.URLParam(r, "name"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var submitted map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSettingsBytes))
	dec.UseNumber()
	if err := dec.Decode(&submitted); err != nil {
		a.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "request body must be a JSON object"})
		return
	}

	cleaned, err := forms.Clean(form, submitted)
	a.metrics.observeValidation(form.Component, err == nil)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, r, http.StatusOK, map[string]any{
		"component": form.Component,
		"settings":  cleaned,
	})
}

func (a *componentAPI) openapi(w http.ResponseWriter, r *http.Request) {
	doc, err := schema.Document(a.registry, schema.DocumentOptions{BasePath: APIBasePath})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, r, http.StatusOK, doc)
}

func (a *componentAPI) summary(def model.Definition, locale string) componentSummary {
	return componentSummary{
		Name:           def.Name,
		Plugin:         def.PluginName(),
		Label:          i18n.Translate(a.translator, locale, def.Label, def.Label),
		Description:    def.Description,
		Template:       def.Template,
		AllowChildren:  def.AllowChildren,
		RequiresParent: def.RequiresParent,
		ChildClasses:   def.ChildClasses,
		ParentClasses:  def.ParentClasses,
		Mixins:         def.Mixins,
	}
}

func (a *componentAPI) locale(r *http.Request) string {
	return a.negotiator.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

func (a *componentAPI) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		a.writeJSON(w, r, verr.StatusCode(), verr)
	case errors.Is(err, components.ErrNotFound):
		a.writeJSON(w, r, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		a.logger.ErrorContext(r.Context(), "component api failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		a.writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": http.StatusText(http.StatusInternalServerError)})
	}
}

func (a *componentAPI) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.WarnContext(r.Context(), "write json response", slog.Any("error", err))
	}
}
