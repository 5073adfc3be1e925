package mixins

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

func TestSet_BuiltinTags(t *testing.T) {
	set := NewSet(nil)

	want := []string{Attributes, Background, Spacing}
	if diff := cmp.Diff(want, set.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if set.Known("Carousel") {
		t.Fatalf("expected unknown mixin to be rejected")
	}
}

func TestSet_FieldsUseChoiceSets(t *testing.T) {
	sets := model.ChoiceSets{
		ChoiceSetColorStyles: {{Value: "primary", Label: "Primary"}},
		ChoiceSetSpacerSizes: {{Value: "0", Label: "* 0"}, {Value: "3", Label: "* 1"}},
	}
	set := NewSet(sets)

	background, err := set.Fields(Background)
	if err != nil {
		t.Fatalf("background fields: %v", err)
	}
	if got := background[0].Choices; len(got) != 1 || got[0].Value != "primary" {
		t.Fatalf("expected color styles on background_context, got %#v", got)
	}
	for _, field := range background {
		if field.Metadata["mixin"] != Background {
			t.Fatalf("expected mixin metadata on %s, got %#v", field.Name, field.Metadata)
		}
	}

	spacing, err := set.Fields(Spacing)
	if err != nil {
		t.Fatalf("spacing fields: %v", err)
	}
	if len(spacing) != 4 {
		t.Fatalf("expected 4 spacing fields, got %d", len(spacing))
	}
	if !spacing[2].HasChoice("3") {
		t.Fatalf("expected spacer sizes on %s", spacing[2].Name)
	}
}

func TestSet_FieldsUnknownTag(t *testing.T) {
	if _, err := NewSet(nil).Fields("Unknown"); err == nil {
		t.Fatalf("expected error for unknown mixin")
	}
}

func TestSet_CloneIsolatesChoiceSets(t *testing.T) {
	sets := model.ChoiceSets{ChoiceSetColorStyles: {{Value: "primary", Label: "Primary"}}}
	set := NewSet(sets)
	sets[ChoiceSetColorStyles][0].Value = "mutated"

	fields, err := set.Fields(Background)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if fields[0].Choices[0].Value != "primary" {
		t.Fatalf("expected set to keep its own copy, got %q", fields[0].Choices[0].Value)
	}
}
