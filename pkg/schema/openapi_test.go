package schema

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

func carouselForm() model.Form {
	return model.Form{
		Component: "LogoCarousel",
		Label:     "Logo Carousel",
		Metadata:  map[string]string{"plugin": "LogoCarouselPlugin"},
		Fields: []model.Field{
			{Name: "loop", Type: model.FieldTypeBoolean, Default: false},
			{Name: "delay", Type: model.FieldTypeInteger, Default: 3000, Validations: []model.ValidationRule{model.MinRule(500)}},
			{
				Name:     "btn_color",
				Type:     model.FieldTypeChoice,
				Default:  "primary",
				Choices:  []model.Choice{{Value: "primary"}, {Value: "secondary"}},
				Metadata: map[string]string{"widget": "colored-button-group"},
			},
			{Name: "alignment", Type: model.FieldTypeChoice, Required: true, Choices: []model.Choice{{Value: "center"}}},
			{Name: "attributes", Type: model.FieldTypeAttributes, Metadata: map[string]string{"mixin": "Attributes"}},
		},
	}
}

func TestForForm_Constraints(t *testing.T) {
	obj := ForForm(carouselForm())

	delay := obj.Properties["delay"].Value
	if delay.Min == nil || *delay.Min != 500 {
		t.Fatalf("expected minimum 500, got %v", delay.Min)
	}
	if delay.Default != 3000 {
		t.Fatalf("expected default 3000, got %#v", delay.Default)
	}

	color := obj.Properties["btn_color"].Value
	if len(color.Enum) != 2 || color.Enum[0] != "primary" {
		t.Fatalf("unexpected enum: %#v", color.Enum)
	}
	if color.Extensions[ExtensionWidget] != "colored-button-group" {
		t.Fatalf("expected widget extension, got %#v", color.Extensions)
	}

	if len(obj.Required) != 1 || obj.Required[0] != "alignment" {
		t.Fatalf("unexpected required set: %v", obj.Required)
	}
	if obj.Extensions[ExtensionPlugin] != "LogoCarouselPlugin" {
		t.Fatalf("expected plugin extension, got %#v", obj.Extensions)
	}
}

func TestForForm_ValidatesPayloads(t *testing.T) {
	obj := ForForm(carouselForm())

	valid := map[string]any{"loop": true, "delay": float64(500), "btn_color": "secondary", "alignment": "center"}
	if err := obj.VisitJSON(valid); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	belowMin := map[string]any{"delay": float64(499), "alignment": "center"}
	if err := obj.VisitJSON(belowMin); err == nil {
		t.Fatalf("expected minimum violation")
	}

	badChoice := map[string]any{"btn_color": "neon", "alignment": "center"}
	if err := obj.VisitJSON(badChoice); err == nil {
		t.Fatalf("expected enum violation")
	}

	if err := obj.VisitJSON(map[string]any{}); err == nil {
		t.Fatalf("expected required violation")
	}
}

type stubSource struct{ forms map[string]model.Form }

func (s stubSource) List() []string {
	return []string{"LogoCarousel"}
}

func (s stubSource) Form(name string) (model.Form, error) {
	return s.forms[name], nil
}

func TestDocument_IncludesSchemasAndPaths(t *testing.T) {
	doc, err := Document(stubSource{forms: map[string]model.Form{"LogoCarousel": carouselForm()}}, DocumentOptions{})
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if _, ok := doc.Components.Schemas["LogoCarousel"]; !ok {
		t.Fatalf("expected LogoCarousel schema")
	}
	item := doc.Paths.Value("/api/components/LogoCarousel/validate")
	if item == nil || item.Post == nil || item.Post.OperationID != "validateLogoCarousel" {
		t.Fatalf("unexpected path item: %#v", item)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("document should validate: %v", err)
	}
	body := item.Post.RequestBody.Value.Content.Get("application/json").Schema
	if body.Ref != "#/components/schemas/LogoCarousel" || body.Value != doc.Components.Schemas["LogoCarousel"].Value {
		t.Fatalf("expected request body to reference the component schema, got %q", body.Ref)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version: %v", decoded["openapi"])
	}
}
