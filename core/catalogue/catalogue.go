// Package catalogue provides read-only access to the static Azure retail
// pricing snapshot. The snapshot is embedded at build time, parsed once on
// first access, and shared immutably across all requests.
package catalogue

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

//go:embed azure-pricing.json
var pricingData []byte

// HoursPerMonth is the fixed averaging policy used to convert hourly
// rates to monthly costs. Not configurable; changing it breaks numeric
// parity with previously generated estimates.
const HoursPerMonth = 730

// MonthsPerYear converts monthly costs to annual.
const MonthsPerYear = 12

// PriceEntry is one priced SKU of the snapshot.
type PriceEntry struct {
	Price  float64 `json:"price"`
	Unit   string  `json:"unit"`
	Family string  `json:"family"`
	Sku    string  `json:"sku"`
}

// ServiceInfo groups the SKUs of one service under its family.
type ServiceInfo struct {
	Family string   `json:"family"`
	Skus   []string `json:"skus"`
}

// Lookup is the full pricing snapshot. Pricing is keyed "service|sku".
type Lookup struct {
	Currency    string                 `json:"currency"`
	Region      string                 `json:"region"`
	GeneratedAt string                 `json:"generatedAt"`
	Pricing     map[string]PriceEntry  `json:"pricing"`
	Services    map[string]ServiceInfo `json:"services"`
}

var (
	loadOnce sync.Once
	lookup   *Lookup
)

// Get returns the shared pricing snapshot, parsing it on first call.
// A malformed embedded snapshot is a build defect, not a runtime
// condition, so the load fault panics.
func Get() *Lookup {
	loadOnce.Do(func() {
		l := &Lookup{}
		if err := json.Unmarshal(pricingData, l); err != nil {
			panic(fmt.Sprintf("catalogue: embedded pricing snapshot is invalid: %v", err))
		}
		lookup = l
	})
	return lookup
}

// FindPricing looks up the price entry for a (service, SKU) pair.
func FindPricing(serviceName, skuName string) (PriceEntry, bool) {
	entry, ok := Get().Pricing[serviceName+"|"+skuName]
	return entry, ok
}

// ServiceSkus returns the ordered SKU names of a service. Unknown
// services yield an empty slice.
func ServiceSkus(serviceName string) []string {
	info, ok := Get().Services[serviceName]
	if !ok {
		return nil
	}
	return info.Skus
}

// Services returns all service names in sorted order.
func Services() []string {
	services := Get().Services
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServicesByFamily returns the sorted service names belonging to a family.
func ServicesByFamily(family string) []string {
	var names []string
	for name, info := range Get().Services {
		if info.Family == family {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// MonthlyFromHourly converts an hourly rate to a monthly cost using the
// fixed 730 hour policy. Decimal math keeps the result exact.
func MonthlyFromHourly(hourly float64) float64 {
	return decimal.NewFromFloat(hourly).
		Mul(decimal.NewFromInt(HoursPerMonth)).
		InexactFloat64()
}

// AnnualFromMonthly converts a monthly cost to an annual one.
func AnnualFromMonthly(monthly float64) float64 {
	return decimal.NewFromFloat(monthly).
		Mul(decimal.NewFromInt(MonthsPerYear)).
		InexactFloat64()
}

// IsHourly reports whether a price unit denotes an hourly rate.
func IsHourly(unit string) bool {
	return strings.Contains(unit, "Hour")
}

// MonthlyTotal resolves the monthly cost of quantity units of a
// (service, SKU) pair. Unknown pairs cost zero.
func MonthlyTotal(serviceName, skuName string, quantity int) float64 {
	entry, ok := FindPricing(serviceName, skuName)
	if !ok {
		return 0
	}
	unit := entry.Price
	if IsHourly(entry.Unit) {
		unit = MonthlyFromHourly(entry.Price)
	}
	return decimal.NewFromFloat(unit).
		Mul(decimal.NewFromInt(int64(quantity))).
		InexactFloat64()
}
