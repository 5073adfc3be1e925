package model

import "strconv"

// FieldType enumerates the editor-facing field kinds a component can declare.
type FieldType string

const (
	FieldTypeText       FieldType = "text"
	FieldTypeBoolean    FieldType = "boolean"
	FieldTypeInteger    FieldType = "integer"
	FieldTypeChoice     FieldType = "choice"
	FieldTypeIcon       FieldType = "icon"
	FieldTypeRichText   FieldType = "richtext"
	FieldTypeAttributes FieldType = "attributes"
)

// Valid reports whether t is one of the known field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeBoolean, FieldTypeInteger, FieldTypeChoice,
		FieldTypeIcon, FieldTypeRichText, FieldTypeAttributes:
		return true
	}
	return false
}

const (
	ValidationRuleMin = "min"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds encode their threshold in Params["value"] so JSON snapshots
// stay stable.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// MinRule builds a lower-bound rule for integer fields.
func MinRule(limit int) ValidationRule {
	return ValidationRule{
		Kind:   ValidationRuleMin,
		Params: map[string]string{"value": strconv.Itoa(limit)},
	}
}

// Choice is a single value/label pair offered by a choice field.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// ChoiceSets maps a named choice list (color styles, spacer sizes, ...) to its
// entries. Component declarations reference sets by name.
type ChoiceSets map[string][]Choice

// Clone returns a deep copy of the sets.
func (s ChoiceSets) Clone() ChoiceSets {
	if s == nil {
		return nil
	}
	out := make(ChoiceSets, len(s))
	for name, choices := range s {
		out[name] = append([]Choice(nil), choices...)
	}
	return out
}

// Field models an individual editor input of a component declaration.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	HelpText    string            `json:"helpText,omitempty"`
	Default     any               `json:"default,omitempty"`
	Choices     []Choice          `json:"choices,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Min returns the declared lower bound for the field, if any.
func (f Field) Min() (int, bool) {
	for _, rule := range f.Validations {
		if rule.Kind != ValidationRuleMin {
			continue
		}
		value, err := strconv.Atoi(rule.Params["value"])
		if err != nil {
			continue
		}
		return value, true
	}
	return 0, false
}

// HasChoice reports whether value is one of the field's choices.
func (f Field) HasChoice(value string) bool {
	for _, choice := range f.Choices {
		if choice.Value == value {
			return true
		}
	}
	return false
}

// Definition is the static declaration of a page-builder component: display
// name, template, nesting constraints, mixin tags and editor fields. It is data
// only; nothing in a Definition executes.
type Definition struct {
	Name           string   `json:"name"`
	Label          string   `json:"label"`
	Description    string   `json:"description,omitempty"`
	Template       string   `json:"template,omitempty"`
	AllowChildren  bool     `json:"allowChildren"`
	RequiresParent bool     `json:"requiresParent,omitempty"`
	ChildClasses   []string `json:"childClasses,omitempty"`
	ParentClasses  []string `json:"parentClasses,omitempty"`
	Mixins         []string `json:"mixins,omitempty"`
	Fields         []Field  `json:"fields"`
}

// PluginName returns the plugin class identifier other declarations use to
// reference this component (Hero -> HeroPlugin).
func (d Definition) PluginName() string {
	if d.Name == "" {
		return ""
	}
	return d.Name + PluginSuffix
}

// PluginSuffix is appended to component names to form plugin identifiers.
const PluginSuffix = "Plugin"

// Form is the editor form of a component: its own fields followed by the
// fields contributed by its mixins.
type Form struct {
	Component string            `json:"component"`
	Label     string            `json:"label"`
	Fields    []Field           `json:"fields"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Field returns the named field of the form.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
