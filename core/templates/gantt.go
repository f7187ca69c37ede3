package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetforge/core/types"
)

// buildGantt lays out the weekly timeline grid plus a Task Register
// sheet. Tasks are distributed evenly across phases with the last
// phase absorbing the remainder.
func buildGantt(cfg types.TemplateConfig) (*excelize.File, error) {
	f := excelize.NewFile()
	s := newStylist(f)
	_ = f.SetDocProps(&excelize.DocProperties{Creator: cfg.String("companyName")})

	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	weeks := cfg.Int("weeks")
	if weeks < 1 {
		weeks = 12
	}
	if weeks > 52 {
		weeks = 52
	}
	taskRows := cfg.Int("taskRows")
	if taskRows < 1 {
		taskRows = 15
	}
	phases := cfg.Tags("phases")
	if len(phases) == 0 {
		phases = []string{"Phase 1"}
	}
	showRaci := cfg.Bool("showRaci")
	showStatus := cfg.Bool("showStatus")

	fixedCols := 4
	if showStatus {
		fixedCols++
	}
	if showRaci {
		fixedCols++
	}
	lastCol := fixedCols + weeks

	const sheet = "Gantt Chart"
	_ = f.SetSheetName("Sheet1", sheet)
	freeze(f, sheet, 4, 5)

	for i, w := range []float64{6, 32, 14, 16} {
		col := colName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}
	c := 5
	if showStatus {
		_ = f.SetColWidth(sheet, colName(c), colName(c), 14)
		c++
	}
	if showRaci {
		_ = f.SetColWidth(sheet, colName(c), colName(c), 12)
	}
	_ = f.SetColWidth(sheet, colName(fixedCols+1), colName(lastCol), 5)

	r := 1

	// Title
	mergeAcross(f, sheet, r, 1, lastCol)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("%s  —  Project Timeline", cfg.String("projectName")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.title(hdr, 16))
	_ = f.SetRowHeight(sheet, r, 32)
	r++

	// Metadata row
	half := fixedCols / 2
	mergeAcross(f, sheet, r, 1, half)
	_ = f.SetCellValue(sheet, cell(1, r), "Client: "+cfg.String("companyName"))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.fill("#F5F5F5", "#444444", false, false))
	mergeAcross(f, sheet, r, half+1, fixedCols)
	_ = f.SetCellValue(sheet, cell(half+1, r), fmt.Sprintf("PM: %s  |  Generated: %s",
		cfg.String("projectManager"), time.Now().Format("02/01/2006")))
	_ = f.SetCellStyle(sheet, cell(half+1, r), cell(half+1, r), s.fill("#F5F5F5", "#444444", false, false))
	_ = f.SetRowHeight(sheet, r, 16)
	r++

	// Column headers + week numbers
	headers := []string{"#", "Task / Milestone", "Owner", "Phase"}
	if showStatus {
		headers = append(headers, "Status")
	}
	if showRaci {
		headers = append(headers, "RACI")
	}
	for i, h := range headers {
		addr := cell(i+1, r)
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(hdr))
	}
	for w := 1; w <= weeks; w++ {
		addr := cell(fixedCols+w, r)
		_ = f.SetCellValue(sheet, addr, fmt.Sprintf("W%d", w))
		_ = f.SetCellStyle(sheet, addr, addr, s.header(hdr, "#FFFFFF", "center", 8))
	}
	_ = f.SetRowHeight(sheet, r, 16)
	r++

	// Month bands over four-week spans
	col := fixedCols + 1
	month := 1
	for col <= lastCol {
		span := 4
		if lastCol-col+1 < span {
			span = lastCol - col + 1
		}
		if span > 1 {
			_ = f.MergeCell(sheet, cell(col, r), cell(col+span-1, r))
		}
		_ = f.SetCellValue(sheet, cell(col, r), fmt.Sprintf("Month %d", month))
		_ = f.SetCellStyle(sheet, cell(col, r), cell(col, r), s.header(acc, "#FFFFFF", "center", 8))
		col += span
		month++
	}
	_ = f.SetRowHeight(sheet, r, 14)
	r++

	// Phase bands and task rows
	tasksPerPhase := (taskRows + len(phases) - 1) / len(phases)
	taskNum := 1
	for phaseIdx, phase := range phases {
		mergeAcross(f, sheet, r, 1, lastCol)
		_ = f.SetCellValue(sheet, cell(1, r), "▶  "+strings.ToUpper(phase))
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.fill("#34495E", "#FFFFFF", true, false))
		_ = f.SetRowHeight(sheet, r, 18)
		r++

		count := tasksPerPhase
		if phaseIdx == len(phases)-1 {
			count = taskRows - tasksPerPhase*phaseIdx
		}
		for t := 0; t < count; t++ {
			alt := ""
			weekBg := "#FFFFFF"
			if taskNum%2 == 0 {
				alt = "#F9FAFB"
				weekBg = "#FAFAFA"
			}
			_ = f.SetCellValue(sheet, cell(1, r), taskNum)
			_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(alt, "center"))
			_ = f.SetCellValue(sheet, cell(2, r), fmt.Sprintf("Task %d", taskNum))
			_ = f.SetCellStyle(sheet, cell(2, r), cell(2, r), s.data(alt, "left"))
			_ = f.SetCellStyle(sheet, cell(3, r), cell(3, r), s.data(alt, "center"))
			_ = f.SetCellValue(sheet, cell(4, r), phase)
			_ = f.SetCellStyle(sheet, cell(4, r), cell(4, r), s.data(alt, "center"))

			nextCol := 5
			if showStatus {
				_ = f.SetCellValue(sheet, cell(nextCol, r), "Not Started")
				_ = f.SetCellStyle(sheet, cell(nextCol, r), cell(nextCol, r), s.data(alt, "center"))
				nextCol++
			}
			if showRaci {
				_ = f.SetCellStyle(sheet, cell(nextCol, r), cell(nextCol, r), s.data(alt, "center"))
			}
			_ = f.SetCellStyle(sheet, cell(fixedCols+1, r), cell(lastCol, r), s.data(weekBg, "center"))
			_ = f.SetRowHeight(sheet, r, 16)
			taskNum++
			r++
		}
	}

	// Legend
	r++
	mergeAcross(f, sheet, r, 1, 3)
	_ = f.SetCellValue(sheet, cell(1, r), "LEGEND")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(hdr, "#FFFFFF", "left", 10))
	_ = f.SetRowHeight(sheet, r, 16)
	r++
	legend := []struct{ label, color string }{
		{"Task In Progress", cfg.String("taskColor")},
		{"Task Completed", cfg.String("completedColor")},
		{"Milestone", cfg.String("accentColor")},
	}
	for _, item := range legend {
		_ = f.SetCellValue(sheet, cell(1, r), " ")
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.fill(item.color, "#000000", false, false))
		_ = f.SetCellValue(sheet, cell(2, r), item.label)
		_ = f.SetRowHeight(sheet, r, 14)
		r++
	}

	writeTaskRegister(f, s, hdr, taskRows)
	return f, nil
}

// writeTaskRegister emits the flat task list with start/end date
// columns and a guarded duration formula.
func writeTaskRegister(f *excelize.File, s *stylist, hdr string, taskRows int) {
	const sheet = "Task Register"
	_, _ = f.NewSheet(sheet)

	for i, w := range []float64{6, 32, 18, 16, 14, 14, 14, 12, 40} {
		col := colName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	headers := []string{"#", "Task / Milestone", "Phase", "Owner", "Start Date", "End Date", "Duration (d)", "Status", "Notes"}
	for i, h := range headers {
		addr := cell(i+1, 1)
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(hdr))
	}
	_ = f.SetRowHeight(sheet, 1, 20)

	for t := 0; t < taskRows; t++ {
		r := t + 2
		alt := ""
		if t%2 == 0 {
			alt = "#F9FAFB"
		}
		_ = f.SetCellValue(sheet, cell(1, r), t+1)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(alt, "center"))
		for c := 2; c <= 4; c++ {
			_ = f.SetCellStyle(sheet, cell(c, r), cell(c, r), s.data(alt, "left"))
		}
		_ = f.SetCellStyle(sheet, cell(5, r), cell(5, r), s.dateCell(alt))
		_ = f.SetCellStyle(sheet, cell(6, r), cell(6, r), s.dateCell(alt))
		_ = f.SetCellFormula(sheet, cell(7, r),
			fmt.Sprintf(`IF(AND(E%d<>"",F%d<>""),F%d-E%d,"")`, r, r, r, r))
		_ = f.SetCellStyle(sheet, cell(7, r), cell(7, r), s.data(alt, "center"))
		for c := 8; c <= 9; c++ {
			_ = f.SetCellStyle(sheet, cell(c, r), cell(c, r), s.data(alt, "left"))
		}
		_ = f.SetRowHeight(sheet, r, 16)
	}
}
