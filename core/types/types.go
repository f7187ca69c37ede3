// Package types defines the shared data model: template configuration,
// field schemas, resolved resources, and preview rows.
package types

// FieldType identifies how a configuration field is entered and validated.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldColor    FieldType = "color"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldToggle   FieldType = "toggle"
	FieldTags     FieldType = "tags"
)

// SelectOption is one choice of a select field.
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ConfigField declares one field of a template's configuration schema.
// The schema drives boundary validation and defaulting; builders consume
// the validated config and never re-check shapes.
type ConfigField struct {
	Key         string         `json:"key"`
	Label       string         `json:"label"`
	Type        FieldType      `json:"type"`
	Default     interface{}    `json:"defaultValue"`
	Placeholder string         `json:"placeholder,omitempty"`
	Options     []SelectOption `json:"options,omitempty"`
	Min         *float64       `json:"min,omitempty"`
	Max         *float64       `json:"max,omitempty"`
	Group       string         `json:"group,omitempty"`
}

// TemplateConfig maps field keys to values. Valid value types are
// string, float64, bool, and []string.
type TemplateConfig map[string]interface{}

// String returns the string value for key, or "" when absent or mistyped.
func (c TemplateConfig) String(key string) string {
	v, _ := c[key].(string)
	return v
}

// Number returns the numeric value for key. JSON decoding produces float64;
// int is accepted for configs built in code.
func (c TemplateConfig) Number(key string) float64 {
	switch v := c[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Int returns Number truncated toward zero.
func (c TemplateConfig) Int(key string) int {
	return int(c.Number(key))
}

// Bool returns the boolean value for key, or false.
func (c TemplateConfig) Bool(key string) bool {
	v, _ := c[key].(bool)
	return v
}

// Tags returns the ordered string list for key. JSON decoding produces
// []interface{}; both representations are accepted.
func (c TemplateConfig) Tags(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// CurrencySymbol maps a currency code to its display symbol. Unknown
// codes fall back to "$", matching the workbook number formats.
func CurrencySymbol(currency string) string {
	switch currency {
	case "GBP":
		return "£"
	case "EUR":
		return "€"
	default: // AUD, USD, CAD and anything else
		return "$"
	}
}
