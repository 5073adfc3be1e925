package components

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

var (
	// ErrNotFound is returned when a component is not registered.
	ErrNotFound = errors.New("components: component not found")
	// ErrDuplicate is returned when a component name is registered twice.
	ErrDuplicate = errors.New("components: component already registered")
)

// MixinResolver expands mixin tags into editor fields.
type MixinResolver interface {
	Known(tag string) bool
	Fields(tag string) ([]model.Field, error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithMixins sets the resolver used to validate mixin tags and to append
// mixin fields to component forms.
func WithMixins(resolver MixinResolver) Option {
	return func(r *Registry) {
		r.mixins = resolver
	}
}

// WithDecorators appends decorators applied to every form returned by Form.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(r *Registry) {
		for _, decorator := range decorators {
			if decorator != nil {
				r.decorators = append(r.decorators, decorator)
			}
		}
	}
}

// Registry is the component pool: it stores definitions by name, rejects
// duplicates and invalid declarations, and answers nesting questions for a
// single parent/child pair.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]model.Definition
	mixins      MixinResolver
	decorators  []model.Decorator
}

// NewRegistry creates an empty registry instance.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		definitions: make(map[string]model.Definition),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register validates and adds a definition. Duplicate names return
// ErrDuplicate.
func (r *Registry) Register(def model.Definition) error {
	def.Name = strings.TrimSpace(def.Name)
	if err := validateDefinition(def, r.mixins); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, def.Name)
	}
	r.definitions[def.Name] = cloneDefinition(def)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def model.Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get retrieves a definition by component name or plugin name.
func (r *Registry) Get(name string) (model.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.lookup(name)
	if !ok {
		return model.Definition{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return cloneDefinition(def), nil
}

// MustGet panics if the definition is missing.
func (r *Registry) MustGet(name string) model.Definition {
	def, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return def
}

// Has reports whether a component is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.lookup(name)
	return ok
}

// List returns a sorted list of component names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns every registered definition ordered by name.
func (r *Registry) Definitions() []model.Definition {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Definition, 0, len(names))
	for _, name := range names {
		out = append(out, cloneDefinition(r.definitions[name]))
	}
	return out
}

// Form assembles the editor form of a component: declared fields first, then
// the fields of each mixin in declaration order. Registry decorators run last.
func (r *Registry) Form(name string) (model.Form, error) {
	def, err := r.Get(name)
	if err != nil {
		return model.Form{}, err
	}

	form := model.Form{
		Component: def.Name,
		Label:     def.Label,
		Fields:    append([]model.Field(nil), def.Fields...),
		Metadata: map[string]string{
			"template": def.Template,
			"plugin":   def.PluginName(),
		},
	}
	if r.mixins != nil {
		for _, tag := range def.Mixins {
			fields, err := r.mixins.Fields(tag)
			if err != nil {
				return model.Form{}, fmt.Errorf("components: form %q: %w", def.Name, err)
			}
			form.Fields = append(form.Fields, fields...)
		}
	}
	for _, decorator := range r.decorators {
		if err := decorator.Decorate(&form); err != nil {
			return model.Form{}, fmt.Errorf("components: decorate form %q: %w", def.Name, err)
		}
	}
	return form, nil
}

// AllowsChild reports whether child may be placed directly inside parent.
// An empty parent means the page root. Either side may name a plugin that is
// not registered here (core plugins such as TextPlugin); only the constraints
// of registered components are checked.
func (r *Registry) AllowsChild(parent, child string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	childDef, childKnown := r.lookup(child)
	if strings.TrimSpace(parent) == "" {
		return !childKnown || !childDef.RequiresParent
	}

	if parentDef, ok := r.lookup(parent); ok {
		if !parentDef.AllowChildren {
			return false
		}
		if len(parentDef.ChildClasses) > 0 && !containsClass(parentDef.ChildClasses, child) {
			return false
		}
	}
	if childKnown && len(childDef.ParentClasses) > 0 && !containsClass(childDef.ParentClasses, parent) {
		return false
	}
	return true
}

func (r *Registry) lookup(name string) (model.Definition, bool) {
	name = strings.TrimSpace(name)
	if def, ok := r.definitions[name]; ok {
		return def, true
	}
	def, ok := r.definitions[strings.TrimSuffix(name, model.PluginSuffix)]
	return def, ok
}

// containsClass matches plugin references with or without the Plugin suffix.
func containsClass(classes []string, name string) bool {
	want := strings.TrimSuffix(strings.TrimSpace(name), model.PluginSuffix)
	for _, class := range classes {
		if strings.TrimSuffix(strings.TrimSpace(class), model.PluginSuffix) == want {
			return true
		}
	}
	return false
}

func cloneDefinition(def model.Definition) model.Definition {
	def.ChildClasses = append([]string(nil), def.ChildClasses...)
	def.ParentClasses = append([]string(nil), def.ParentClasses...)
	def.Mixins = append([]string(nil), def.Mixins...)
	fields := make([]model.Field, len(def.Fields))
	for i, field := range def.Fields {
		field.Choices = append([]model.Choice(nil), field.Choices...)
		field.Validations = append([]model.ValidationRule(nil), field.Validations...)
		if field.Metadata != nil {
			meta := make(map[string]string, len(field.Metadata))
			for key, value := range field.Metadata {
				meta[key] = value
			}
			field.Metadata = meta
		}
		fields[i] = field
	}
	def.Fields = fields
	return def
}
