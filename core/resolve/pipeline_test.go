package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetforge/core/ai"
	"sheetforge/internal/errors"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Complete(ctx context.Context, messages []ai.Message, systemPrompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubProvider) Name() string { return "stub" }

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{-5, 1},
		{0.4, 1},
		{1, 1},
		{2.6, 3},
		{3.4, 3},
		{10, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampQuantity(tt.in), "input %v", tt.in)
	}
}

func TestStripCodeFence(t *testing.T) {
	const body = `{"resources": [], "summary": "nothing"}`
	variants := []string{
		body,
		"```json\n" + body + "\n```",
		"```\n" + body + "\n```",
		"  ```json\n" + body + "\n```  ",
	}
	for _, v := range variants {
		assert.Equal(t, body, StripCodeFence(v))
	}
}

func TestResolvePricesFromCatalogue(t *testing.T) {
	reply := `{
		"resources": [
			{"name": "Secrets vault", "serviceName": "Key Vault", "skuName": "Standard",
			 "environment": "Production", "quantity": 1, "category": "Security"}
		],
		"summary": "Matched a standard key vault."
	}`
	r := NewResolver(&stubProvider{reply: reply})

	result, err := r.Resolve(context.Background(), "a key vault for secrets")
	require.NoError(t, err)
	require.Len(t, result.Resources, 1)

	res := result.Resources[0]
	assert.Equal(t, "Key Vault", res.ServiceName)
	assert.Equal(t, 1, res.Quantity)
	// 0.03/hour * 730 hours
	assert.InDelta(t, 21.9, res.UnitMonthlyCost, 0.0001)
	assert.InDelta(t, 21.9, result.TotalMonthly, 0.0001)
	assert.Equal(t, "Matched a standard key vault.", result.Summary)
}

func TestResolveFencedReplyParsesLikeUnfenced(t *testing.T) {
	body := `{"resources": [{"name": "vm", "serviceName": "Key Vault", "skuName": "Standard", "environment": "Production", "quantity": 2, "category": "Security"}], "summary": "ok"}`

	plain := NewResolver(&stubProvider{reply: body})
	fenced := NewResolver(&stubProvider{reply: "```json\n" + body + "\n```"})

	a, err := plain.Resolve(context.Background(), "two vaults")
	require.NoError(t, err)
	b, err := fenced.Resolve(context.Background(), "two vaults")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestResolveUnknownSkuGetsFallbackNote(t *testing.T) {
	reply := `{
		"resources": [
			{"name": "mystery", "serviceName": "No Such Service", "skuName": "Nope",
			 "environment": "Production", "quantity": 1, "category": "Other",
			 "notes": "May need manual review — SKU estimated"}
		],
		"summary": "guessed"
	}`
	r := NewResolver(&stubProvider{reply: reply})

	result, err := r.Resolve(context.Background(), "something odd")
	require.NoError(t, err)
	require.Len(t, result.Resources, 1)

	res := result.Resources[0]
	assert.Zero(t, res.UnitMonthlyCost)
	assert.Equal(t, "May need manual review — SKU estimated; "+FallbackNote, res.Notes)
	assert.Zero(t, result.TotalMonthly)
}

func TestResolveUnknownSkuWithoutNotes(t *testing.T) {
	reply := `{"resources": [{"name": "x", "serviceName": "Nope", "skuName": "Nope", "environment": "Dev", "quantity": 1, "category": "Other"}], "summary": ""}`
	r := NewResolver(&stubProvider{reply: reply})

	result, err := r.Resolve(context.Background(), "unknown thing")
	require.NoError(t, err)
	assert.Equal(t, FallbackNote, result.Resources[0].Notes)
}

func TestResolveRejectsEmptyMessage(t *testing.T) {
	r := NewResolver(&stubProvider{reply: "{}"})
	_, err := r.Resolve(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestResolveProviderErrorPropagates(t *testing.T) {
	r := NewResolver(&stubProvider{err: errors.Provider("upstream refused", nil)})
	_, err := r.Resolve(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeProvider))
}

func TestResolveNonJSONReply(t *testing.T) {
	r := NewResolver(&stubProvider{reply: "Sure! Here is your estimate: lots of money."})
	_, err := r.Resolve(context.Background(), "a vm")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestResolveNonArrayResources(t *testing.T) {
	r := NewResolver(&stubProvider{reply: `{"resources": {"oops": true}, "summary": "bad"}`})
	_, err := r.Resolve(context.Background(), "a vm")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestResolveNullResources(t *testing.T) {
	r := NewResolver(&stubProvider{reply: `{"resources": null, "summary": "empty"}`})
	_, err := r.Resolve(context.Background(), "a vm")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
	assert.Contains(t, err.Error(), "resources array")
}

func TestSystemPromptIncludesCatalogue(t *testing.T) {
	p := SystemPrompt()
	assert.Contains(t, p, "Key Vault")
	assert.Contains(t, p, "AZURE SERVICE CATALOGUE")
}
