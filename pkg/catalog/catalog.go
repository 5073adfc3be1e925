// Package catalog loads the theme's component declarations from YAML and
// registers them with a component registry. The embedded components.yaml is
// the authoritative declaration set; choice sets it names can be overridden
// by configuration the way host settings override defaults.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

//go:embed components.yaml
var embeddedCatalog []byte

// Registrar receives definitions. *components.Registry satisfies it.
type Registrar interface {
	Register(def model.Definition) error
}

// Catalog is a resolved set of declarations plus the choice sets they use.
type Catalog struct {
	Choices     model.ChoiceSets
	Definitions []model.Definition
}

type document struct {
	Choices    model.ChoiceSets `yaml:"choices"`
	Components []declaration    `yaml:"components"`
}

type declaration struct {
	Name           string        `yaml:"name"`
	Label          string        `yaml:"label"`
	Description    string        `yaml:"description"`
	Template       string        `yaml:"template"`
	AllowChildren  bool          `yaml:"allow_children"`
	RequiresParent bool          `yaml:"requires_parent"`
	ChildClasses   []string      `yaml:"child_classes"`
	ParentClasses  []string      `yaml:"parent_classes"`
	Mixins         []string      `yaml:"mixins"`
	Fields         []fieldSource `yaml:"fields"`
}

type fieldSource struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	Label       string         `yaml:"label"`
	HelpText    string         `yaml:"help_text"`
	Required    bool           `yaml:"required"`
	Default     any            `yaml:"default"`
	Min         *int           `yaml:"min"`
	Choices     []model.Choice `yaml:"choices"`
	ChoicesFrom []string       `yaml:"choices_from"`
	Widget      string         `yaml:"widget"`
}

// Default loads the embedded catalog, applying choice set overrides.
func Default(overrides model.ChoiceSets) (Catalog, error) {
	return Load(embeddedCatalog, overrides)
}

// Load parses a catalog document. Overrides replace whole choice sets by name
// before field choices are resolved.
func Load(data []byte, overrides model.ChoiceSets) (Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse: %w", err)
	}

	sets := doc.Choices.Clone()
	if sets == nil {
		sets = make(model.ChoiceSets)
	}
	for name, choices := range overrides {
		sets[name] = append([]model.Choice(nil), choices...)
	}

	out := Catalog{
		Choices:     sets,
		Definitions: make([]model.Definition, 0, len(doc.Components)),
	}
	for _, decl := range doc.Components {
		def, err := decl.definition(sets)
		if err != nil {
			return Catalog{}, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	return out, nil
}

// Register adds every definition to reg, stopping at the first failure.
func (c Catalog) Register(reg Registrar) error {
	if reg == nil {
		return fmt.Errorf("catalog: missing registrar")
	}
	for _, def := range c.Definitions {
		if err := reg.Register(def); err != nil {
			return fmt.Errorf("catalog: register %s: %w", def.Name, err)
		}
	}
	return nil
}

func (d declaration) definition(sets model.ChoiceSets) (model.Definition, error) {
	def := model.Definition{
		Name:           strings.TrimSpace(d.Name),
		Label:          strings.TrimSpace(d.Label),
		Description:    strings.TrimSpace(d.Description),
		Template:       strings.TrimSpace(d.Template),
		AllowChildren:  d.AllowChildren,
		RequiresParent: d.RequiresParent,
		ChildClasses:   d.ChildClasses,
		ParentClasses:  d.ParentClasses,
		Mixins:         d.Mixins,
		Fields:         make([]model.Field, 0, len(d.Fields)),
	}
	if def.Label == "" {
		def.Label = def.Name
	}
	for _, src := range d.Fields {
		field, err := src.field(sets)
		if err != nil {
			return model.Definition{}, fmt.Errorf("catalog: %s.%s: %w", def.Name, src.Name, err)
		}
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

func (f fieldSource) field(sets model.ChoiceSets) (model.Field, error) {
	field := model.Field{
		Name:     strings.TrimSpace(f.Name),
		Type:     model.FieldType(strings.TrimSpace(f.Type)),
		Label:    strings.TrimSpace(f.Label),
		HelpText: strings.TrimSpace(f.HelpText),
		Required: f.Required,
		Default:  f.Default,
	}
	if f.Min != nil {
		field.Validations = append(field.Validations, model.MinRule(*f.Min))
	}

	field.Choices = append(field.Choices, f.Choices...)
	for _, name := range f.ChoicesFrom {
		set, ok := sets[name]
		if !ok {
			return model.Field{}, fmt.Errorf("unknown choice set %q", name)
		}
		field.Choices = append(field.Choices, set...)
	}

	if widget := strings.TrimSpace(f.Widget); widget != "" {
		field.Metadata = map[string]string{"widget": widget}
		if widget == "colored-button-group" {
			field.Metadata["attrs.class"] = "flex-wrap"
		}
	}
	return field, nil
}
