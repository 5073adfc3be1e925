package components

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

// ErrInvalidDefinition wraps every declaration problem found at registration.
var ErrInvalidDefinition = errors.New("components: invalid definition")

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func validateDefinition(def model.Definition, mixins MixinResolver) error {
	if def.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if !identifierPattern.MatchString(def.Name) {
		return fmt.Errorf("%w: %q is not a valid component name", ErrInvalidDefinition, def.Name)
	}

	seen := make(map[string]struct{}, len(def.Fields))
	for _, field := range def.Fields {
		if err := validateField(field); err != nil {
			return fmt.Errorf("%w: %s.%s: %v", ErrInvalidDefinition, def.Name, field.Name, err)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidDefinition, def.Name, field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	if mixins == nil {
		return nil
	}
	for _, tag := range def.Mixins {
		if !mixins.Known(tag) {
			return fmt.Errorf("%w: %s: unknown mixin %q", ErrInvalidDefinition, def.Name, tag)
		}
		fields, err := mixins.Fields(tag)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, def.Name, err)
		}
		for _, field := range fields {
			if _, dup := seen[field.Name]; dup {
				return fmt.Errorf("%w: %s: field %q collides with mixin %s", ErrInvalidDefinition, def.Name, field.Name, tag)
			}
			seen[field.Name] = struct{}{}
		}
	}
	return nil
}

func validateField(field model.Field) error {
	if field.Name == "" || !identifierPattern.MatchString(field.Name) {
		return errors.New("invalid field name")
	}
	if !field.Type.Valid() {
		return fmt.Errorf("unknown field type %q", field.Type)
	}

	if _, hasMin := field.Min(); hasMin && field.Type != model.FieldTypeInteger {
		return errors.New("min validation requires an integer field")
	}

	if field.Default == nil {
		return nil
	}
	switch field.Type {
	case model.FieldTypeBoolean:
		if _, ok := field.Default.(bool); !ok {
			return fmt.Errorf("default %v is not a boolean", field.Default)
		}
	case model.FieldTypeInteger:
		value, ok := asInt(field.Default)
		if !ok {
			return fmt.Errorf("default %v is not an integer", field.Default)
		}
		if limit, hasMin := field.Min(); hasMin && value < limit {
			return fmt.Errorf("default %d is below minimum %d", value, limit)
		}
	case model.FieldTypeChoice:
		value, ok := field.Default.(string)
		if !ok {
			return fmt.Errorf("default %v is not a string", field.Default)
		}
		if value != "" && !field.HasChoice(value) {
			return fmt.Errorf("default %q is not one of the choices", value)
		}
	}
	return nil
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}
