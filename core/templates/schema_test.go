package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetforge/core/types"
	"sheetforge/internal/errors"
)

func TestValidateConfigDefaults(t *testing.T) {
	def, ok := Lookup("budget")
	require.True(t, ok)

	out, err := validateConfig(def.Fields, types.TemplateConfig{})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", out.String("companyName"))
	assert.Equal(t, 12, out.Int("months"))
	assert.Equal(t, "AUD", out.String("currency"))
	assert.Len(t, out.Tags("categories"), 6)
}

func TestValidateConfigRejectsUnknownKey(t *testing.T) {
	def, _ := Lookup("budget")
	_, err := validateConfig(def.Fields, types.TemplateConfig{"surprise": "x"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeTemplate))
}

func TestValidateConfigTypeMismatch(t *testing.T) {
	def, _ := Lookup("budget")
	tests := []struct {
		name string
		cfg  types.TemplateConfig
	}{
		{"number for text", types.TemplateConfig{"companyName": 42}},
		{"string for number", types.TemplateConfig{"months": "six"}},
		{"string for toggle", types.TemplateConfig{"categories": "not-a-list"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateConfig(def.Fields, tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeTemplate))
		})
	}
}

func TestValidateConfigNumberBounds(t *testing.T) {
	def, _ := Lookup("budget")

	_, err := validateConfig(def.Fields, types.TemplateConfig{"months": float64(13)})
	require.Error(t, err)

	_, err = validateConfig(def.Fields, types.TemplateConfig{"months": float64(0)})
	require.Error(t, err)

	out, err := validateConfig(def.Fields, types.TemplateConfig{"months": float64(6)})
	require.NoError(t, err)
	assert.Equal(t, 6, out.Int("months"))
}

func TestValidateConfigSelectConstraint(t *testing.T) {
	def, _ := Lookup("budget")
	_, err := validateConfig(def.Fields, types.TemplateConfig{"currency": "BTC"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeTemplate))
}

func TestValidateConfigJSONDecodedShapes(t *testing.T) {
	def, _ := Lookup("budget")
	out, err := validateConfig(def.Fields, types.TemplateConfig{
		"categories": []interface{}{"Rent", "Travel"},
		"months":     float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rent", "Travel"}, out.Tags("categories"))
}
