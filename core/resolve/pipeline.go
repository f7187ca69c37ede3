// Package resolve turns a free-text infrastructure description into
// priced, catalogue-validated resource line items.
//
// The trust boundary: the model supplies identifying fields only
// (service, SKU, quantity, category). Every cost figure is derived from
// the pricing catalogue on this side of the boundary.
package resolve

import (
	"context"
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sheetforge/core/ai"
	"sheetforge/core/catalogue"
	"sheetforge/core/types"
	"sheetforge/internal/errors"
	"sheetforge/internal/logging"
)

// FallbackNote annotates resources whose (service, SKU) pair is missing
// from the catalogue. The wording is part of the output contract.
const FallbackNote = "SKU not found in pricing data — enter cost manually"

const systemPromptPreamble = `You are an Azure cost estimation assistant. Users describe their Azure infrastructure in plain English. You map their requirements to real Azure services and SKUs from the catalogue provided.

RULES:
1. Return ONLY a valid JSON object — no markdown, no explanation, just the JSON.
2. The JSON must match this exact schema:
{
  "resources": [
    {
      "name": "string (friendly display name for the spreadsheet row)",
      "serviceName": "string (MUST exactly match a service name from the catalogue below)",
      "skuName": "string (MUST exactly match one of that service's SKUs from the catalogue)",
      "environment": "string (e.g. Production, Development, UAT — infer from context, default Production)",
      "quantity": number,
      "category": "string (one of: Compute, Storage, Networking, Databases, AI & ML, Security, Monitoring, Other)"
    }
  ],
  "summary": "string (1-2 sentences explaining what you matched and any assumptions)"
}
3. serviceName and skuName MUST be exact character-for-character matches from the catalogue.
4. If you cannot confidently match a resource, use your best guess and add a "notes" field: "May need manual review — SKU estimated".
5. If the user specifies an environment (prod, dev, uat, staging), map it to the full word (Production, Development, UAT, Staging).
6. If quantity is not specified, default to 1.
7. Do not add resources the user did not mention.

AZURE SERVICE CATALOGUE (ServiceName: sku1, sku2, ...):
`

// resourceItem is the shape the model is asked to produce per resource.
// Costs are deliberately absent.
type resourceItem struct {
	Name        string  `json:"name"`
	ServiceName string  `json:"serviceName"`
	SkuName     string  `json:"skuName"`
	Environment string  `json:"environment"`
	Quantity    float64 `json:"quantity"`
	Category    string  `json:"category"`
	Notes       string  `json:"notes,omitempty"`
}

// Result is the priced outcome of one resolution request.
type Result struct {
	Resources    []types.AzureResource `json:"resources"`
	Summary      string                `json:"summary"`
	TotalMonthly float64               `json:"totalMonthly"`
}

// Resolver runs the resolution pipeline against one provider.
type Resolver struct {
	provider ai.Provider
}

// NewResolver creates a resolver bound to the given provider.
func NewResolver(provider ai.Provider) *Resolver {
	return &Resolver{provider: provider}
}

// SystemPrompt returns the full system prompt: fixed preamble plus the
// catalogue text.
func SystemPrompt() string {
	return systemPromptPreamble + catalogue.PromptText()
}

// Resolve sends the user's message to the provider, validates the
// reply, and prices each claimed resource against the catalogue.
// Provider failures and malformed replies are terminal; a missing
// catalogue entry is not: it degrades to a zero-cost annotated row.
func (r *Resolver) Resolve(ctx context.Context, message string) (*Result, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.Input("message is required")
	}

	raw, err := r.provider.Complete(ctx, []ai.Message{{Role: "user", Content: message}}, SystemPrompt())
	if err != nil {
		return nil, err
	}

	cleaned := StripCodeFence(raw)

	var reply struct {
		Resources json.RawMessage `json:"resources"`
		Summary   string          `json:"summary"`
	}
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		logging.Warn("model returned non-JSON reply",
			zap.String("provider", r.provider.Name()), zap.Int("reply_len", len(raw)))
		return nil, errors.Parsing("model returned an unexpected format", err)
	}

	var items []resourceItem
	if err := json.Unmarshal(reply.Resources, &items); err != nil {
		return nil, errors.Parsing("model reply is missing a resources array", err)
	}
	// An explicit JSON null unmarshals without error but carries no array.
	if items == nil {
		return nil, errors.Parsing("model reply is missing a resources array", nil)
	}

	resources := make([]types.AzureResource, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		res := priceResource(item)
		total = total.Add(res.MonthlyCost())
		resources = append(resources, res)
	}

	logging.Info("resolved resources",
		zap.String("provider", r.provider.Name()),
		zap.Int("count", len(resources)))

	return &Result{
		Resources:    resources,
		Summary:      reply.Summary,
		TotalMonthly: total.InexactFloat64(),
	}, nil
}

// priceResource applies the catalogue lookup to one claimed resource.
func priceResource(item resourceItem) types.AzureResource {
	notes := item.Notes
	unitMonthly := 0.0

	if entry, ok := catalogue.FindPricing(item.ServiceName, item.SkuName); ok {
		if catalogue.IsHourly(entry.Unit) {
			unitMonthly = catalogue.MonthlyFromHourly(entry.Price)
		} else {
			unitMonthly = entry.Price
		}
	} else {
		if notes != "" {
			notes = notes + "; " + FallbackNote
		} else {
			notes = FallbackNote
		}
	}

	return types.AzureResource{
		Name:            item.Name,
		ServiceName:     item.ServiceName,
		SkuName:         item.SkuName,
		Environment:     item.Environment,
		Quantity:        ClampQuantity(item.Quantity),
		UnitMonthlyCost: unitMonthly,
		Category:        item.Category,
		Notes:           notes,
	}
}

// ClampQuantity normalizes a claimed quantity: never zero, never
// negative, never fractional.
func ClampQuantity(q float64) int {
	n := int(math.Round(q))
	if n < 1 {
		return 1
	}
	return n
}

var (
	fenceOpenRe  = regexp.MustCompile("(?m)^```(?:json)?[ \t]*\n?")
	fenceCloseRe = regexp.MustCompile("(?m)\n?[ \t]*```[ \t]*$")
)

// StripCodeFence removes a leading/trailing markdown code fence so a
// fenced JSON reply parses identically to an unfenced one.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
