package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetforge/core/types"
	"sheetforge/internal/errors"
)

func TestRowsUnknownTemplate(t *testing.T) {
	_, err := Rows("nonexistent", types.TemplateConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestBudgetPreviewCapsCategories(t *testing.T) {
	rows, err := Rows("budget", types.TemplateConfig{
		"companyName": "Acme",
		"reportTitle": "FY26 Budget",
		"currency":    "GBP",
		"categories":  []string{"Rent", "Travel", "Software", "Payroll", "Marketing", "Legal"},
	})
	require.NoError(t, err)

	// Banner, title, header, four capped category rows, total
	require.Len(t, rows, 8)
	assert.Equal(t, "Acme", rows[0][0].Value)
	assert.Equal(t, 4, rows[0][0].ColSpan)
	assert.Equal(t, "Rent", rows[3][0].Value)
	assert.Equal(t, "Payroll", rows[6][0].Value)
	assert.Equal(t, "£ -", rows[3][1].Value)
	assert.Equal(t, "TOTAL", rows[7][0].Value)
	assert.Equal(t, "£ 0", rows[7][3].Value)
}

func TestInvoicePreviewTotals(t *testing.T) {
	rows, err := Rows("invoice", types.TemplateConfig{
		"companyName":  "Acme Consulting",
		"documentType": "Quote",
		"currency":     "AUD",
		"taxLabel":     "GST",
		"taxRate":      float64(10),
	})
	require.NoError(t, err)

	require.Len(t, rows, 8)
	assert.Equal(t, "Quote", rows[1][0].Value)
	assert.Equal(t, "GST (10%)", rows[6][0].Value)
	last := rows[7]
	assert.Equal(t, "TOTAL DUE", last[0].Value)
	assert.Equal(t, "$2,200.00", last[3].Value)
	assert.True(t, last[3].Style.Bold)
}

func TestGanttPreviewPhaseBands(t *testing.T) {
	rows, err := Rows("gantt", types.TemplateConfig{
		"projectName": "Migration",
		"headerColor": "#1E3A5F",
		"taskColor":   "#2E86AB",
	})
	require.NoError(t, err)

	require.Len(t, rows, 7)
	assert.Equal(t, "▶ Initiation", rows[2][0].Value)
	assert.Equal(t, 5, rows[2][0].ColSpan)

	bar := rows[3][2]
	assert.Equal(t, "█", bar.Value)
	assert.Equal(t, "#2E86AB", bar.Style.Background)
}

func TestRbacPreviewCapsRoles(t *testing.T) {
	rows, err := Rows("rbac", types.TemplateConfig{
		"projectName": "Platform RBAC",
		"roles":       []string{"Owner", "Contributor", "Reader", "Security Admin", "Helpdesk"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, rows[0][0].ColSpan)
	require.Len(t, rows[1], 5)
	assert.Equal(t, "Security Admin", rows[1][4].Value)
}

func TestAzurePreviewSampleBlocks(t *testing.T) {
	rows, err := Rows("azure-calculator", types.TemplateConfig{
		"projectName": "Modernisation",
		"currency":    "GBP",
	})
	require.NoError(t, err)

	require.Len(t, rows, 8)
	assert.Equal(t, "▶ Compute", rows[3][0].Value)
	assert.Equal(t, "£580", rows[4][3].Value)
	assert.Equal(t, "TOTAL (excl. contingency)", rows[7][0].Value)
	assert.Equal(t, "£7,464", rows[7][1].Value)
}

func TestStoriesPreviewSampleRows(t *testing.T) {
	rows, err := Rows("user-stories", types.TemplateConfig{"projectName": "Transformation"})
	require.NoError(t, err)

	require.Len(t, rows, 6)
	assert.Equal(t, "US-001", rows[3][0].Value)
	assert.Equal(t, "Must Have", rows[3][4].Value)
	assert.Equal(t, "#FFE9E9", rows[3][4].Style.Background)
	assert.Equal(t, "Should Have", rows[5][4].Value)
}
