package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetforge/core/types"
)

func TestGanttPhaseDistribution(t *testing.T) {
	f, err := Generate("gantt", types.TemplateConfig{
		"taskRows": 7,
		"phases":   []string{"Discovery", "Build", "Launch"},
	})
	require.NoError(t, err)

	const sheet = "Gantt Chart"

	// Seven tasks over three phases split 3 / 3 / 1, last phase takes
	// the remainder
	v, _ := f.GetCellValue(sheet, "A5")
	assert.Equal(t, "▶  DISCOVERY", v)
	v, _ = f.GetCellValue(sheet, "B6")
	assert.Equal(t, "Task 1", v)
	v, _ = f.GetCellValue(sheet, "B8")
	assert.Equal(t, "Task 3", v)

	v, _ = f.GetCellValue(sheet, "A9")
	assert.Equal(t, "▶  BUILD", v)
	v, _ = f.GetCellValue(sheet, "B12")
	assert.Equal(t, "Task 6", v)

	v, _ = f.GetCellValue(sheet, "A13")
	assert.Equal(t, "▶  LAUNCH", v)
	v, _ = f.GetCellValue(sheet, "B14")
	assert.Equal(t, "Task 7", v)
	v, _ = f.GetCellValue(sheet, "D14")
	assert.Equal(t, "Launch", v)

	v, _ = f.GetCellValue(sheet, "A16")
	assert.Equal(t, "LEGEND", v)
}

func TestGanttHeaderGrid(t *testing.T) {
	f, err := Generate("gantt", types.TemplateConfig{"weeks": 8})
	require.NoError(t, err)

	const sheet = "Gantt Chart"

	// Status and RACI are on by default, so the fixed block is six
	// columns and weeks start at column G
	v, _ := f.GetCellValue(sheet, "E3")
	assert.Equal(t, "Status", v)
	v, _ = f.GetCellValue(sheet, "F3")
	assert.Equal(t, "RACI", v)
	v, _ = f.GetCellValue(sheet, "G3")
	assert.Equal(t, "W1", v)
	v, _ = f.GetCellValue(sheet, "N3")
	assert.Equal(t, "W8", v)

	// Month bands cover four-week spans
	v, _ = f.GetCellValue(sheet, "G4")
	assert.Equal(t, "Month 1", v)
	v, _ = f.GetCellValue(sheet, "K4")
	assert.Equal(t, "Month 2", v)

	// Default task status seeds in
	v, _ = f.GetCellValue(sheet, "E6")
	assert.Equal(t, "Not Started", v)
}

func TestGanttHidingOptionalColumnsNarrowsGrid(t *testing.T) {
	f, err := Generate("gantt", types.TemplateConfig{
		"weeks":      8,
		"showStatus": false,
		"showRaci":   false,
	})
	require.NoError(t, err)

	v, _ := f.GetCellValue("Gantt Chart", "E3")
	assert.Equal(t, "W1", v)
}

func TestGanttTaskRegister(t *testing.T) {
	f, err := Generate("gantt", types.TemplateConfig{"taskRows": 5})
	require.NoError(t, err)

	const sheet = "Task Register"
	require.Contains(t, f.GetSheetList(), sheet)

	v, _ := f.GetCellValue(sheet, "G1")
	assert.Equal(t, "Duration (d)", v)

	formula, _ := f.GetCellFormula(sheet, "G2")
	assert.Equal(t, `IF(AND(E2<>"",F2<>""),F2-E2,"")`, formula)
	formula, _ = f.GetCellFormula(sheet, "G6")
	assert.Equal(t, `IF(AND(E6<>"",F6<>""),F6-E6,"")`, formula)

	v, _ = f.GetCellValue(sheet, "A6")
	assert.Equal(t, "5", v)
}
