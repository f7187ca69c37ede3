package templates

import (
	"fmt"

	"sheetforge/core/types"
	"sheetforge/internal/errors"
)

// validateConfig checks a caller-supplied config against a template's
// field schema and returns a complete config: absent keys take their
// declared defaults, unknown keys and mistyped values are rejected, and
// number/select constraints are enforced. Builders receive the result
// and trust its shapes.
func validateConfig(fields []types.ConfigField, cfg types.TemplateConfig) (types.TemplateConfig, error) {
	known := make(map[string]types.ConfigField, len(fields))
	for _, f := range fields {
		known[f.Key] = f
	}

	for key := range cfg {
		if _, ok := known[key]; !ok {
			return nil, errors.Newf(errors.TypeTemplate, "unknown config field %q", key)
		}
	}

	out := make(types.TemplateConfig, len(fields))
	for _, f := range fields {
		raw, present := cfg[f.Key]
		if !present || raw == nil {
			out[f.Key] = f.Default
			continue
		}
		val, err := coerceField(f, raw)
		if err != nil {
			return nil, err
		}
		out[f.Key] = val
	}
	return out, nil
}

func coerceField(f types.ConfigField, raw interface{}) (interface{}, error) {
	switch f.Type {
	case types.FieldText, types.FieldTextarea, types.FieldColor:
		s, ok := raw.(string)
		if !ok {
			return nil, typeMismatch(f, "string", raw)
		}
		return s, nil

	case types.FieldNumber:
		var n float64
		switch v := raw.(type) {
		case float64:
			n = v
		case int:
			n = float64(v)
		default:
			return nil, typeMismatch(f, "number", raw)
		}
		if f.Min != nil && n < *f.Min {
			return nil, errors.Newf(errors.TypeTemplate, "field %q: %v is below the minimum %v", f.Key, n, *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return nil, errors.Newf(errors.TypeTemplate, "field %q: %v exceeds the maximum %v", f.Key, n, *f.Max)
		}
		return n, nil

	case types.FieldSelect:
		s, ok := raw.(string)
		if !ok {
			return nil, typeMismatch(f, "string", raw)
		}
		for _, opt := range f.Options {
			if opt.Value == s {
				return s, nil
			}
		}
		return nil, errors.Newf(errors.TypeTemplate, "field %q: %q is not one of the allowed options", f.Key, s)

	case types.FieldToggle:
		b, ok := raw.(bool)
		if !ok {
			return nil, typeMismatch(f, "bool", raw)
		}
		return b, nil

	case types.FieldTags:
		switch v := raw.(type) {
		case []string:
			return v, nil
		case []interface{}:
			tags := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, typeMismatch(f, "string list", raw)
				}
				tags = append(tags, s)
			}
			return tags, nil
		}
		return nil, typeMismatch(f, "string list", raw)
	}
	return nil, errors.Newf(errors.TypeTemplate, "field %q has unsupported type %q", f.Key, f.Type)
}

func typeMismatch(f types.ConfigField, want string, got interface{}) *errors.Error {
	return errors.Newf(errors.TypeTemplate, "field %q: expected %s, got %s", f.Key, want, fmt.Sprintf("%T", got))
}
