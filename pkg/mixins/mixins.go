// Package mixins resolves the reusable style bundles a component opts into.
// A mixin is a capability tag on a definition; resolving the tag yields the
// extra editor fields the host appends to the component form.
package mixins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

// Built-in mixin tags.
const (
	Background = "Background"
	Spacing    = "Spacing"
	Attributes = "Attributes"
)

// Choice set names the built-in mixins read from.
const (
	ChoiceSetColorStyles = "color_styles"
	ChoiceSetSpacerSizes = "spacer_sizes"
)

// Builder produces the fields of a mixin from the configured choice sets.
type Builder func(sets model.ChoiceSets) []model.Field

// Set holds the known mixins and the choice sets their fields draw from.
type Set struct {
	sets     model.ChoiceSets
	builders map[string]Builder
}

// NewSet constructs a Set with the built-in mixins registered.
func NewSet(sets model.ChoiceSets) *Set {
	s := &Set{
		sets:     sets.Clone(),
		builders: make(map[string]Builder),
	}
	s.Register(Background, backgroundFields)
	s.Register(Spacing, spacingFields)
	s.Register(Attributes, attributeFields)
	return s
}

// Register adds or replaces a mixin builder.
func (s *Set) Register(tag string, builder Builder) {
	tag = strings.TrimSpace(tag)
	if s == nil || tag == "" || builder == nil {
		return
	}
	s.builders[tag] = builder
}

// Known reports whether tag names a registered mixin.
func (s *Set) Known(tag string) bool {
	if s == nil {
		return false
	}
	_, ok := s.builders[tag]
	return ok
}

// Tags returns the registered mixin tags in sorted order.
func (s *Set) Tags() []string {
	if s == nil {
		return nil
	}
	tags := make([]string, 0, len(s.builders))
	for tag := range s.builders {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Fields returns the editor fields contributed by tag. Each field carries
// Metadata["mixin"] so renderers can group them.
func (s *Set) Fields(tag string) ([]model.Field, error) {
	if s == nil {
		return nil, fmt.Errorf("mixins: unknown mixin %q", tag)
	}
	builder, ok := s.builders[tag]
	if !ok {
		return nil, fmt.Errorf("mixins: unknown mixin %q", tag)
	}
	fields := builder(s.sets)
	for i := range fields {
		if fields[i].Metadata == nil {
			fields[i].Metadata = make(map[string]string)
		}
		fields[i].Metadata["mixin"] = tag
	}
	return fields, nil
}

func backgroundFields(sets model.ChoiceSets) []model.Field {
	return []model.Field{
		{
			Name:     "background_context",
			Type:     model.FieldTypeChoice,
			Label:    "Background context",
			Choices:  append([]model.Choice(nil), sets[ChoiceSetColorStyles]...),
			Metadata: map[string]string{"widget": "colored-button-group"},
		},
		{
			Name:  "background_opacity",
			Type:  model.FieldTypeChoice,
			Label: "Background opacity",
			Choices: []model.Choice{
				{Value: "100", Label: "100%"},
				{Value: "75", Label: "75%"},
				{Value: "50", Label: "50%"},
				{Value: "25", Label: "25%"},
				{Value: "0", Label: "Transparent"},
			},
			Default: "100",
		},
		{
			Name:  "background_shadow",
			Type:  model.FieldTypeChoice,
			Label: "Background shadow",
			Choices: []model.Choice{
				{Value: "none", Label: "No shadow"},
				{Value: "sm", Label: "Small"},
				{Value: "reg", Label: "Regular"},
				{Value: "lg", Label: "Large"},
			},
			Default: "none",
		},
	}
}

func spacingFields(sets model.ChoiceSets) []model.Field {
	sizes := sets[ChoiceSetSpacerSizes]
	fields := make([]model.Field, 0, 4)
	for _, side := range []struct{ name, label string }{
		{"margin_x", "Horizontal margin"},
		{"margin_y", "Vertical margin"},
		{"padding_x", "Horizontal padding"},
		{"padding_y", "Vertical padding"},
	} {
		fields = append(fields, model.Field{
			Name:    side.name,
			Type:    model.FieldTypeChoice,
			Label:   side.label,
			Choices: append([]model.Choice(nil), sizes...),
		})
	}
	return fields
}

func attributeFields(model.ChoiceSets) []model.Field {
	return []model.Field{
		{
			Name:     "attributes",
			Type:     model.FieldTypeAttributes,
			Label:    "Attributes",
			HelpText: "Additional HTML attributes rendered on the component's root element.",
		},
	}
}
