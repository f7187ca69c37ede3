package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetforge/core/types"
)

func TestInvoiceTotalsChain(t *testing.T) {
	f, err := Generate("invoice", types.TemplateConfig{"lineItems": 3})
	require.NoError(t, err)

	const sheet = "Invoice"
	require.Contains(t, f.GetSheetList(), sheet)

	// Line rows 11..13 multiply qty by rate
	formula, _ := f.GetCellFormula(sheet, "E11")
	assert.Equal(t, "C11*D11", formula)
	formula, _ = f.GetCellFormula(sheet, "E13")
	assert.Equal(t, "C13*D13", formula)

	// Subtotal, tax, total stack directly below a single blank row
	v, _ := f.GetCellValue(sheet, "A15")
	assert.Equal(t, "SUBTOTAL", v)
	formula, _ = f.GetCellFormula(sheet, "E15")
	assert.Equal(t, "SUM(E11:E13)", formula)

	v, _ = f.GetCellValue(sheet, "A16")
	assert.Equal(t, "GST (10%)", v)
	formula, _ = f.GetCellFormula(sheet, "E16")
	assert.Equal(t, "E15*0.1", formula)

	v, _ = f.GetCellValue(sheet, "A17")
	assert.Equal(t, "TOTAL DUE", v)
	formula, _ = f.GetCellFormula(sheet, "E17")
	assert.Equal(t, "E15+E16", formula)
}

func TestInvoiceHeaderAndMetadata(t *testing.T) {
	f, err := Generate("invoice", types.TemplateConfig{
		"documentType": "Quote",
		"lineItems":    3,
	})
	require.NoError(t, err)

	const sheet = "Quote"
	v, _ := f.GetCellValue(sheet, "A1")
	assert.Equal(t, "Acme Consulting Pty Ltd", v)
	v, _ = f.GetCellValue(sheet, "A3")
	assert.Equal(t, "QUOTE", v)

	v, _ = f.GetCellValue(sheet, "A5")
	assert.Equal(t, "BILL TO", v)
	v, _ = f.GetCellValue(sheet, "D5")
	assert.Equal(t, "Invoice #", v)
	v, _ = f.GetCellValue(sheet, "E5")
	assert.Equal(t, "INV-0001", v)
	v, _ = f.GetCellValue(sheet, "E8")
	assert.Equal(t, "Net 30 days", v)
}

func TestInvoiceBankDetailsSplitAcrossRows(t *testing.T) {
	f, err := Generate("invoice", types.TemplateConfig{
		"lineItems":   3,
		"bankDetails": "BSB: 000-000\nAccount: 42",
	})
	require.NoError(t, err)

	// Payment details start two rows below the total at row 19
	const sheet = "Invoice"
	v, _ := f.GetCellValue(sheet, "A19")
	assert.Equal(t, "PAYMENT DETAILS", v)
	v, _ = f.GetCellValue(sheet, "A20")
	assert.Equal(t, "BSB: 000-000", v)
	v, _ = f.GetCellValue(sheet, "A21")
	assert.Equal(t, "Account: 42", v)
}

func TestInvoiceTaxLabelUsesConfiguredRate(t *testing.T) {
	f, err := Generate("invoice", types.TemplateConfig{
		"lineItems": 3,
		"taxRate":   12.5,
		"taxLabel":  "VAT",
	})
	require.NoError(t, err)

	v, _ := f.GetCellValue("Invoice", "A16")
	assert.Equal(t, "VAT (12.5%)", v)
	formula, _ := f.GetCellFormula("Invoice", "E16")
	assert.Equal(t, "E15*0.125", formula)
}
