package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetforge/core/types"
)

func azureTestResources() []types.AzureResource {
	return []types.AzureResource{
		{Name: "Web App Plan", ServiceName: "App Service", SkuName: "P1v3", Environment: "Production", Quantity: 2, UnitMonthlyCost: 290, Category: "Compute"},
		{Name: "Batch VM", ServiceName: "Virtual Machines", SkuName: "D4s v5", Environment: "Production", Quantity: 1, UnitMonthlyCost: 310, Category: "Compute"},
		{Name: "Blob Store", ServiceName: "Storage Accounts", SkuName: "Standard LRS", Environment: "Production", Quantity: 1, UnitMonthlyCost: 42, Category: "Storage"},
	}
}

func TestAzureResolvedResourcesGroupedByCategory(t *testing.T) {
	f, err := GenerateWithResources("azure-calculator", types.TemplateConfig{}, azureTestResources())
	require.NoError(t, err)

	const sheet = "Cost Estimate"

	// Two category blocks, not three: rows 6..9 Compute, 11..13 Storage
	v, _ := f.GetCellValue(sheet, "A6")
	assert.Equal(t, "▶  COMPUTE", v)
	v, _ = f.GetCellValue(sheet, "A7")
	assert.Equal(t, "Web App Plan", v)
	v, _ = f.GetCellValue(sheet, "A8")
	assert.Equal(t, "Batch VM", v)
	v, _ = f.GetCellValue(sheet, "A9")
	assert.Equal(t, "Compute Subtotal", v)

	v, _ = f.GetCellValue(sheet, "A11")
	assert.Equal(t, "▶  STORAGE", v)
	v, _ = f.GetCellValue(sheet, "A12")
	assert.Equal(t, "Blob Store", v)
	v, _ = f.GetCellValue(sheet, "A13")
	assert.Equal(t, "Storage Subtotal", v)

	// Row totals multiply quantity by unit cost; annual multiplies by 12
	formula, _ := f.GetCellFormula(sheet, "G7")
	assert.Equal(t, "E7*F7", formula)
	formula, _ = f.GetCellFormula(sheet, "H7")
	assert.Equal(t, "G7*12", formula)

	// Subtotals span the actual data rows of each block
	formula, _ = f.GetCellFormula(sheet, "G9")
	assert.Equal(t, "SUM(G7:G8)", formula)
	formula, _ = f.GetCellFormula(sheet, "G13")
	assert.Equal(t, "SUM(G12:G12)", formula)
}

func TestAzureGrandTotalReferencesRecordedSubtotalRows(t *testing.T) {
	f, err := GenerateWithResources("azure-calculator", types.TemplateConfig{}, azureTestResources())
	require.NoError(t, err)

	const sheet = "Cost Estimate"

	v, _ := f.GetCellValue(sheet, "A16")
	assert.Equal(t, "GRAND TOTAL (before contingency)", v)
	formula, _ := f.GetCellFormula(sheet, "G16")
	assert.Equal(t, "G9+G13", formula)

	// Contingency, reserved savings, and the final total chain off it
	formula, _ = f.GetCellFormula(sheet, "G17")
	assert.Equal(t, "G16*0.15", formula)
	formula, _ = f.GetCellFormula(sheet, "G18")
	assert.Equal(t, "G16*-0.3", formula)
	formula, _ = f.GetCellFormula(sheet, "G19")
	assert.Equal(t, "G16+G17+G18", formula)
}

func TestAzurePlaceholderModeUsesSameAddressArithmetic(t *testing.T) {
	f, err := Generate("azure-calculator", types.TemplateConfig{
		"resourceCategories": []string{"Compute", "Storage"},
		"includeReserved":    false,
	})
	require.NoError(t, err)

	const sheet = "Cost Estimate"

	// Four placeholder rows per category: block one rows 6..11
	v, _ := f.GetCellValue(sheet, "A7")
	assert.Equal(t, "Compute Resource 1", v)
	v, _ = f.GetCellValue(sheet, "A11")
	assert.Equal(t, "Compute Subtotal", v)
	formula, _ := f.GetCellFormula(sheet, "G11")
	assert.Equal(t, "SUM(G7:G10)", formula)

	v, _ = f.GetCellValue(sheet, "A18")
	assert.Equal(t, "Storage Subtotal", v)

	formula, _ = f.GetCellFormula(sheet, "G21")
	assert.Equal(t, "G11+G18", formula)

	// Without reserved savings the final total sums only two rows
	formula, _ = f.GetCellFormula(sheet, "G23")
	assert.Equal(t, "G21+G22", formula)
}

func TestAzureAuxiliarySheets(t *testing.T) {
	f, err := Generate("azure-calculator", types.TemplateConfig{})
	require.NoError(t, err)

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "By Environment")
	assert.Contains(t, sheets, "Pricing Reference")

	v, _ := f.GetCellValue("By Environment", "B2")
	assert.Equal(t, "Production", v)
	v, _ = f.GetCellValue("By Environment", "A3")
	assert.Equal(t, "Compute", v)

	// Pricing reference carries the embedded snapshot
	v, _ = f.GetCellValue("Pricing Reference", "A1")
	assert.Equal(t, "Service", v)
	v, _ = f.GetCellValue("Pricing Reference", "A2")
	assert.NotEmpty(t, v)
}

func TestAzurePricingReferenceCanBeDisabled(t *testing.T) {
	f, err := Generate("azure-calculator", types.TemplateConfig{"includePricingReference": false})
	require.NoError(t, err)
	assert.NotContains(t, f.GetSheetList(), "Pricing Reference")
}
