// Package schema describes component forms as OpenAPI 3 schemas so editor
// payloads can be validated and documented with the same declaration.
package schema

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

// Extension keys carried on generated schemas.
const (
	ExtensionWidget = "x-widget"
	ExtensionMixin  = "x-mixin"
	ExtensionPlugin = "x-plugin"
)

// ForForm builds an object schema for a component form. Integer minimums and
// choice lists become minimum and enum constraints; required fields are
// listed in the object's required set.
func ForForm(form model.Form) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Title = form.Label
	obj.Extensions = map[string]any{}
	if plugin := form.Metadata["plugin"]; plugin != "" {
		obj.Extensions[ExtensionPlugin] = plugin
	}

	var required []string
	for _, field := range form.Fields {
		obj.WithProperty(field.Name, ForField(field))
		if field.Required {
			required = append(required, field.Name)
		}
	}
	obj.Required = required
	return obj
}

// ForField builds the property schema of a single field.
func ForField(field model.Field) *openapi3.Schema {
	var prop *openapi3.Schema
	switch field.Type {
	case model.FieldTypeBoolean:
		prop = openapi3.NewBoolSchema()
	case model.FieldTypeInteger:
		prop = openapi3.NewIntegerSchema()
		if limit, ok := field.Min(); ok {
			prop.WithMin(float64(limit))
		}
	case model.FieldTypeChoice:
		prop = openapi3.NewStringSchema()
		values := make([]any, 0, len(field.Choices))
		for _, choice := range field.Choices {
			values = append(values, choice.Value)
		}
		if len(values) > 0 {
			prop.WithEnum(values...)
		}
	case model.FieldTypeRichText:
		prop = openapi3.NewStringSchema()
		prop.Format = "html"
	case model.FieldTypeIcon:
		prop = openapi3.NewStringSchema()
		prop.Format = "icon"
	case model.FieldTypeAttributes:
		prop = openapi3.NewObjectSchema()
		prop.AdditionalProperties = openapi3.AdditionalProperties{
			Schema: openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		}
	default:
		prop = openapi3.NewStringSchema()
	}

	prop.Title = field.Label
	prop.Description = field.HelpText
	if field.Default != nil {
		prop.Default = field.Default
	}

	ext := map[string]any{}
	if widget := field.Metadata["widget"]; widget != "" {
		ext[ExtensionWidget] = widget
	}
	if mixin := field.Metadata["mixin"]; mixin != "" {
		ext[ExtensionMixin] = mixin
	}
	if len(ext) > 0 {
		prop.Extensions = ext
	}
	return prop
}

// FormSource yields the forms a document should describe.
type FormSource interface {
	List() []string
	Form(name string) (model.Form, error)
}

// DocumentOptions configures Document.
type DocumentOptions struct {
	Title    string
	Version  string
	BasePath string
}

// Document assembles an OpenAPI 3 document with one schema per component and
// one validate operation per component.
func Document(source FormSource, opts DocumentOptions) (*openapi3.T, error) {
	if source == nil {
		return nil, fmt.Errorf("schema: missing form source")
	}
	if opts.Title == "" {
		opts.Title = "Theme components"
	}
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}
	if opts.BasePath == "" {
		opts.BasePath = "/api/components"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   opts.Title,
			Version: opts.Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}

	for _, name := range source.List() {
		form, err := source.Form(name)
		if err != nil {
			return nil, fmt.Errorf("schema: form %q: %w", name, err)
		}
		obj := ForForm(form)
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", obj)

		op := openapi3.NewOperation()
		op.OperationID = "validate" + name
		op.Summary = "Validate " + form.Label + " settings"
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/"+name, obj)),
		}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Cleaned settings")}),
			openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Field errors")}),
		)
		doc.Paths.Set(opts.BasePath+"/"+name+"/validate", &openapi3.PathItem{Post: op})
	}
	return doc, nil
}
