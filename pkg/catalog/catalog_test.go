package catalog

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmstheme/pkg/components"
	"github.com/goliatone/go-cmstheme/pkg/mixins"
	"github.com/goliatone/go-cmstheme/pkg/model"
)

func TestDefault_RegistersEveryComponent(t *testing.T) {
	cat, err := Default(nil)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	reg := components.NewRegistry(components.WithMixins(mixins.NewSet(cat.Choices)))
	if err := cat.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	want := []string{
		"BenefitsCard", "BenefitsPanel", "CTAPanel", "Features", "Footer",
		"FooterLinksList", "HorizontalPlanCard", "LogoCarousel", "MembershipPlans",
		"MembershipTopSectionGroup", "PlanCard", "PlanCardGroup", "TimelineContainer", "Hero",
	}
	got := reg.List()
	if diff := cmp.Diff(sorted(want), got); diff != "" {
		t.Fatalf("registered components mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_LogoCarouselBounds(t *testing.T) {
	cat, err := Default(nil)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	def := find(t, cat, "LogoCarousel")

	cases := map[string]struct {
		min     int
		initial int
	}{
		"space_between_slides": {min: 0, initial: 20},
		"delay":                {min: 500, initial: 3000},
	}
	for name, want := range cases {
		field := fieldOf(t, def, name)
		limit, ok := field.Min()
		if !ok || limit != want.min {
			t.Fatalf("%s: expected min %d, got %d (ok=%v)", name, want.min, limit, ok)
		}
		if field.Default != want.initial {
			t.Fatalf("%s: expected default %d, got %#v", name, want.initial, field.Default)
		}
	}
	if autoplay := fieldOf(t, def, "autoplay"); autoplay.Default != true {
		t.Fatalf("expected autoplay default true, got %#v", autoplay.Default)
	}
}

func TestDefault_PlanCardConcatenatesChoiceSets(t *testing.T) {
	cat, err := Default(nil)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	tier := fieldOf(t, find(t, cat, "PlanCard"), "tier_color")

	want := len(cat.Choices["color_styles"]) + len(cat.Choices["tier_colors"])
	if len(tier.Choices) != want {
		t.Fatalf("expected %d tier choices, got %d", want, len(tier.Choices))
	}
	if !tier.HasChoice("accent-gold") || !tier.HasChoice("primary") {
		t.Fatalf("expected both color styles and tier colors, got %#v", tier.Choices)
	}
	if tier.Metadata["widget"] != "colored-button-group" || tier.Metadata["attrs.class"] != "flex-wrap" {
		t.Fatalf("unexpected widget metadata: %#v", tier.Metadata)
	}
}

func TestDefault_CTAPanelAlignmentRequired(t *testing.T) {
	cat, err := Default(nil)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	field := fieldOf(t, find(t, cat, "CTAPanel"), "content_alignment")
	if !field.Required || field.Default != "center" {
		t.Fatalf("unexpected content_alignment declaration: %#v", field)
	}
}

func TestDefault_TimelineDisplayName(t *testing.T) {
	cat, err := Default(nil)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	def := find(t, cat, "TimelineContainer")
	if def.Label != "Timeline" || def.Template != "timeline/timeline.html" {
		t.Fatalf("unexpected timeline declaration: %#v", def)
	}
}

func TestLoad_ChoiceOverrides(t *testing.T) {
	overrides := model.ChoiceSets{
		"color_styles": {
			{Value: "default", Label: "Default"},
			{Value: "primary", Label: "Brand"},
			{Value: "secondary", Label: "Accent"},
			{Value: "white", Label: "White"},
		},
	}
	cat, err := Default(overrides)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	divider := fieldOf(t, find(t, cat, "TimelineContainer"), "divider_color")
	if len(divider.Choices) != 4 || divider.Choices[1].Label != "Brand" {
		t.Fatalf("expected override to apply, got %#v", divider.Choices)
	}
}

func TestLoad_UnknownChoiceSet(t *testing.T) {
	data := []byte(`
components:
  - name: Panel
    fields:
      - {name: tone, type: choice, choices_from: [moods]}
`)
	if _, err := Load(data, nil); err == nil {
		t.Fatalf("expected unknown choice set error")
	}
}

func TestRegister_StopsOnInvalidDefinition(t *testing.T) {
	data := []byte(`
components:
  - name: Carousel
    fields:
      - {name: delay, type: integer, default: 10, min: 500}
`)
	cat, err := Load(data, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	err = cat.Register(components.NewRegistry())
	if !errors.Is(err, components.ErrInvalidDefinition) {
		t.Fatalf("expected invalid definition, got %v", err)
	}
}

func find(t *testing.T, cat Catalog, name string) model.Definition {
	t.Helper()
	for _, def := range cat.Definitions {
		if def.Name == name {
			return def
		}
	}
	t.Fatalf("definition %q not found", name)
	return model.Definition{}
}

func fieldOf(t *testing.T, def model.Definition, name string) model.Field {
	t.Helper()
	for _, field := range def.Fields {
		if field.Name == name {
			return field
		}
	}
	t.Fatalf("field %s.%s not found", def.Name, name)
	return model.Field{}
}

func sorted(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
