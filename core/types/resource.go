package types

import "github.com/shopspring/decimal"

// AzureResource is one priced line item produced by the resolution
// pipeline and consumed by the Azure calculator builder.
//
// UnitMonthlyCost is always derived from the pricing catalogue on the
// server side. The model supplies identifying fields only; any cost it
// claims is discarded.
type AzureResource struct {
	Name            string  `json:"name"`
	ServiceName     string  `json:"serviceName"`
	SkuName         string  `json:"skuName"`
	Environment     string  `json:"environment"`
	Quantity        int     `json:"quantity"`
	UnitMonthlyCost float64 `json:"unitMonthlyCost"`
	Category        string  `json:"category"`
	Notes           string  `json:"notes,omitempty"`
}

// MonthlyCost returns UnitMonthlyCost * Quantity as an exact decimal.
func (r AzureResource) MonthlyCost() decimal.Decimal {
	return decimal.NewFromFloat(r.UnitMonthlyCost).Mul(decimal.NewFromInt(int64(r.Quantity)))
}
