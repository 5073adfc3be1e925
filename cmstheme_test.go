package cmstheme

import (
	"testing"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

func TestNewComponentRegistryRegistersCatalog(t *testing.T) {
	reg, err := NewComponentRegistry(nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if got := len(reg.List()); got != 14 {
		t.Fatalf("expected 14 components, got %d: %v", got, reg.List())
	}

	form, err := reg.Form("LogoCarouselPlugin")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	delay, ok := form.Field("delay")
	if !ok {
		t.Fatalf("expected delay field")
	}
	if limit, _ := delay.Min(); limit != 500 {
		t.Fatalf("expected delay minimum 500, got %d", limit)
	}
	if delay.Metadata["widget"] != "number" {
		t.Fatalf("expected number widget, got %q", delay.Metadata["widget"])
	}
}

func TestNewComponentRegistryAppliesChoiceOverrides(t *testing.T) {
	reg, err := NewComponentRegistry(model.ChoiceSets{
		"spacer_sizes": {{Value: "0", Label: "None"}, {Value: "xl", Label: "Extra large"}},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	form, err := reg.Form("Hero")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	field, ok := form.Field("padding_y")
	if !ok {
		t.Fatalf("expected spacing mixin field on Hero")
	}
	if !field.HasChoice("xl") || field.HasChoice("5") {
		t.Fatalf("expected overridden spacer sizes, got %+v", field.Choices)
	}
}
