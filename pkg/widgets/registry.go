package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetToggle             = "toggle"
	WidgetNumber             = "number"
	WidgetSelect             = "select"
	WidgetColoredButtonGroup = "colored-button-group"
	WidgetIconPicker         = "icon-picker"
	WidgetRichText           = "rich-text"
	WidgetKeyValue           = "key-value"
	WidgetTextInput          = "text-input"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects editor widgets for fields based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. The latest registration wins on ties.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit
// Metadata["widget"] hint is honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order > rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, setting Metadata["widget"] on every
// field of the form that resolves to a widget.
func (r *Registry) Decorate(form *model.Form) error {
	if r == nil || form == nil {
		return nil
	}
	for i, field := range form.Fields {
		widget, ok := r.Resolve(field)
		if !ok || widget == "" {
			continue
		}
		meta := make(map[string]string, len(field.Metadata)+1)
		for key, value := range field.Metadata {
			meta[key] = value
		}
		meta["widget"] = widget
		form.Fields[i].Metadata = meta
	}
	return nil
}

func explicitWidget(field model.Field) string {
	if field.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(field.Metadata["widget"])
}

func (r *Registry) registerBuiltins() {
	byType := []struct {
		name string
		kind model.FieldType
	}{
		{WidgetToggle, model.FieldTypeBoolean},
		{WidgetNumber, model.FieldTypeInteger},
		{WidgetSelect, model.FieldTypeChoice},
		{WidgetIconPicker, model.FieldTypeIcon},
		{WidgetRichText, model.FieldTypeRichText},
		{WidgetKeyValue, model.FieldTypeAttributes},
	}
	for _, entry := range byType {
		kind := entry.kind
		r.Register(entry.name, 50, func(field model.Field) bool {
			return field.Type == kind
		})
	}

	r.Register(WidgetTextInput, 10, func(field model.Field) bool {
		return field.Type == model.FieldTypeText
	})
}
