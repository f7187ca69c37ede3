package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetforge/core/types"
)

func TestRbacMatrixLayout(t *testing.T) {
	f, err := Generate("rbac", types.TemplateConfig{
		"roles":          []string{"Admin", "Operator"},
		"resourceGroups": []string{"Prod", "Dev", "Hub"},
	})
	require.NoError(t, err)

	const sheet = "RBAC Matrix"

	v, _ := f.GetCellValue(sheet, "A3")
	assert.Equal(t, "Resource Group / Scope", v)

	// Description column sits between the scope and role columns
	v, _ = f.GetCellValue(sheet, "B3")
	assert.Equal(t, "Role Description", v)
	v, _ = f.GetCellValue(sheet, "C3")
	assert.Equal(t, "Admin", v)
	v, _ = f.GetCellValue(sheet, "D3")
	assert.Equal(t, "Operator", v)
	v, _ = f.GetCellValue(sheet, "E3")
	assert.Equal(t, "Justification / Notes", v)

	v, _ = f.GetCellValue(sheet, "A4")
	assert.Equal(t, "Prod", v)
	v, _ = f.GetCellValue(sheet, "A6")
	assert.Equal(t, "Hub", v)
}

func TestRbacOptionalColumnsCollapse(t *testing.T) {
	f, err := Generate("rbac", types.TemplateConfig{
		"roles":                []string{"Admin", "Operator"},
		"resourceGroups":       []string{"Prod"},
		"includeDescription":   false,
		"includeJustification": false,
	})
	require.NoError(t, err)

	const sheet = "RBAC Matrix"
	v, _ := f.GetCellValue(sheet, "B3")
	assert.Equal(t, "Admin", v)
	v, _ = f.GetCellValue(sheet, "C3")
	assert.Equal(t, "Operator", v)
	v, _ = f.GetCellValue(sheet, "D3")
	assert.Empty(t, v)
}

func TestRbacPermissionDropdowns(t *testing.T) {
	f, err := Generate("rbac", types.TemplateConfig{
		"roles":            []string{"Admin"},
		"resourceGroups":   []string{"Prod", "Dev"},
		"permissionValues": "Azure",
	})
	require.NoError(t, err)

	dvs, err := f.GetDataValidations("RBAC Matrix")
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Equal(t, "C4:C5", dvs[0].Sqref)
	assert.Contains(t, dvs[0].Formula1, "Owner")
	assert.Contains(t, dvs[0].Formula1, "Contributor")
	assert.True(t, dvs[0].AllowBlank)
}

func TestRbacUnknownPermissionModeRejected(t *testing.T) {
	_, err := Generate("rbac", types.TemplateConfig{"permissionValues": "Weird"})
	require.Error(t, err)
}

func TestRbacLegendEnumeratesVocabulary(t *testing.T) {
	f, err := Generate("rbac", types.TemplateConfig{"permissionValues": "Levels"})
	require.NoError(t, err)

	const sheet = "Legend & Key"
	require.Contains(t, f.GetSheetList(), sheet)

	v, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "Permission Mode: Levels", v)
	v, _ = f.GetCellValue(sheet, "A3")
	assert.Equal(t, "Full Access", v)
	v, _ = f.GetCellValue(sheet, "A5")
	assert.Equal(t, "No Access", v)
}

func TestRbacRolesRegister(t *testing.T) {
	f, err := Generate("rbac", types.TemplateConfig{"roles": []string{"Admin", "Operator"}})
	require.NoError(t, err)

	const sheet = "Roles Register"
	v, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "Admin", v)
	v, _ = f.GetCellValue(sheet, "D3")
	assert.Equal(t, "No", v)

	dvs, err := f.GetDataValidations(sheet)
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Equal(t, "D2:D3", dvs[0].Sqref)
	assert.False(t, dvs[0].AllowBlank)
}
