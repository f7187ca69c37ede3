package templates

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetforge/core/types"
)

var storyStatuses = []string{"Backlog", "Refined", "Ready", "In Progress", "In Review", "Done"}

var moscowPriorities = []string{"Must Have", "Should Have", "Could Have", "Won't Have"}

// storyPointOptions returns the dropdown vocabulary for a point scale.
func storyPointOptions(scale string) []string {
	switch scale {
	case "Fibonacci":
		return []string{"1", "2", "3", "5", "8", "13", "21"}
	case "TShirt":
		return []string{"XS", "S", "M", "L", "XL"}
	}
	return []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
}

// buildUserStories lays out the story backlog with its dropdown
// columns, the Epic Register, and optionally the pivoted Persona
// Profiles sheet.
func buildUserStories(cfg types.TemplateConfig) (*excelize.File, error) {
	f := excelize.NewFile()
	s := newStylist(f)
	_ = f.SetDocProps(&excelize.DocProperties{Creator: cfg.String("companyName")})

	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	storyCount := cfg.Int("storyCount")
	if storyCount <= 0 {
		storyCount = 20
	}
	epics := cfg.Tags("epicNames")
	personas := cfg.Tags("personas")
	includeMoSCoW := cfg.Bool("includeMoSCoW")
	scale := cfg.String("storyPointScale")

	totalCols := 9
	if includeMoSCoW {
		totalCols = 10
	}

	const sheet = "Story Backlog"
	_ = f.SetSheetName("Sheet1", sheet)
	freeze(f, sheet, 0, 5)

	widths := []float64{10, 18, 18, 36, 36, 36, 10, 14}
	if includeMoSCoW {
		widths = append(widths, 14)
	}
	widths = append(widths, 24)
	for i, w := range widths {
		col := colName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	r := 1

	// Title
	mergeAcross(f, sheet, r, 1, totalCols)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("%s  —  User Story Backlog", cfg.String("projectName")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.title(hdr, 15))
	_ = f.SetRowHeight(sheet, r, 30)
	r++

	// Subtitle
	mergeAcross(f, sheet, r, 1, totalCols)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("Organisation: %s   |   Story Points: %s   |   Generated: %s",
		cfg.String("companyName"), scale, time.Now().Format("02/01/2006")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(acc, "#FFFFFF", "center", 9))
	_ = f.SetRowHeight(sheet, r, 16)
	r += 2

	// Column headers
	headers := []string{
		"Story ID", "Epic", "Persona", "User Story (As a [persona], I want to [action])",
		"So That... (Benefit)", "Acceptance Criteria", "Points", "Status",
	}
	if includeMoSCoW {
		headers = append(headers, "MoSCoW")
	}
	headers = append(headers, "Notes")
	for i, h := range headers {
		addr := cell(i+1, r)
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(hdr))
	}
	_ = f.SetRowHeight(sheet, r, 40)
	r++

	// Story rows
	storyStart := r
	for i := 0; i < storyCount; i++ {
		row := r + i
		alt := ""
		if i%2 == 0 {
			alt = "#FAF5FF"
		}
		_ = f.SetCellValue(sheet, cell(1, row), fmt.Sprintf("US-%03d", i+1))
		_ = f.SetCellStyle(sheet, cell(1, row), cell(1, row), s.data(alt, "center"))
		for c := 2; c <= 3; c++ {
			_ = f.SetCellStyle(sheet, cell(c, row), cell(c, row), s.data(alt, "center"))
		}
		for c := 4; c <= 6; c++ {
			_ = f.SetCellStyle(sheet, cell(c, row), cell(c, row), s.data(alt, "left"))
		}
		_ = f.SetCellStyle(sheet, cell(7, row), cell(7, row), s.data(alt, "center"))
		_ = f.SetCellValue(sheet, cell(8, row), "Backlog")
		_ = f.SetCellStyle(sheet, cell(8, row), cell(8, row), s.data(alt, "center"))
		if includeMoSCoW {
			_ = f.SetCellStyle(sheet, cell(9, row), cell(9, row), s.data(alt, "center"))
		}
		_ = f.SetCellStyle(sheet, cell(totalCols, row), cell(totalCols, row), s.data(alt, "left"))
		_ = f.SetRowHeight(sheet, row, 36)
	}
	storyEnd := storyStart + storyCount - 1

	// Dropdown constraints per column
	if len(epics) > 0 {
		setDropList(f, sheet, fmt.Sprintf("B%d:B%d", storyStart, storyEnd), epics, true)
	}
	if len(personas) > 0 {
		setDropList(f, sheet, fmt.Sprintf("C%d:C%d", storyStart, storyEnd), personas, true)
	}
	setDropList(f, sheet, fmt.Sprintf("G%d:G%d", storyStart, storyEnd), storyPointOptions(scale), true)
	setDropList(f, sheet, fmt.Sprintf("H%d:H%d", storyStart, storyEnd), storyStatuses, false)
	if includeMoSCoW {
		setDropList(f, sheet, fmt.Sprintf("I%d:I%d", storyStart, storyEnd), moscowPriorities, true)
	}

	writeEpicRegister(f, s, hdr, acc, epics)
	if cfg.Bool("includePersonaSheet") {
		writePersonaProfiles(f, s, hdr, acc, personas)
	}
	return f, nil
}

func writeEpicRegister(f *excelize.File, s *stylist, hdr, acc string, epics []string) {
	const sheet = "Epics"
	_, _ = f.NewSheet(sheet)
	for i, w := range []float64{8, 24, 40, 16, 20, 16} {
		col := colName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	mergeAcross(f, sheet, 1, 1, 6)
	_ = f.SetCellValue(sheet, "A1", "Epic Register")
	_ = f.SetCellStyle(sheet, "A1", "A1", s.title(hdr, 12))
	_ = f.SetRowHeight(sheet, 1, 24)

	for i, h := range []string{"#", "Epic Name", "Description", "Priority", "Owner", "Status"} {
		addr := cell(i+1, 2)
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(acc))
	}
	_ = f.SetRowHeight(sheet, 2, 20)

	for i, epic := range epics {
		r := i + 3
		alt := ""
		if i%2 == 0 {
			alt = "#FAF5FF"
		}
		_ = f.SetCellValue(sheet, cell(1, r), i+1)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(alt, "center"))
		_ = f.SetCellValue(sheet, cell(2, r), epic)
		_ = f.SetCellStyle(sheet, cell(2, r), cell(2, r), s.data(alt, "left"))
		for c := 3; c <= 5; c++ {
			_ = f.SetCellStyle(sheet, cell(c, r), cell(c, r), s.data(alt, "left"))
		}
		_ = f.SetCellValue(sheet, cell(6, r), "Not Started")
		_ = f.SetCellStyle(sheet, cell(6, r), cell(6, r), s.data(alt, "left"))
		_ = f.SetRowHeight(sheet, r, 20)
	}
}

var personaAttributes = []string{
	"Name", "Role / Job Title", "Age Range", "Technical Proficiency",
	"Key Goals", "Pain Points", "Needs from System", "Quote / Insight",
	"Devices Used", "Notes",
}

// writePersonaProfiles pivots the persona list: one column per persona
// and one row per profile attribute.
func writePersonaProfiles(f *excelize.File, s *stylist, hdr, acc string, personas []string) {
	const sheet = "Persona Profiles"
	_, _ = f.NewSheet(sheet)
	_ = f.SetColWidth(sheet, "A", "A", 24)
	if len(personas) > 0 {
		_ = f.SetColWidth(sheet, "B", colName(len(personas)+1), 40)
	}

	mergeAcross(f, sheet, 1, 1, len(personas)+1)
	_ = f.SetCellValue(sheet, "A1", "Persona Profiles")
	_ = f.SetCellStyle(sheet, "A1", "A1", s.title(hdr, 12))
	_ = f.SetRowHeight(sheet, 1, 24)

	_ = f.SetCellValue(sheet, "A2", "Attribute")
	_ = f.SetCellStyle(sheet, "A2", "A2", s.headerCell(acc))
	for i, p := range personas {
		addr := cell(i+2, 2)
		_ = f.SetCellValue(sheet, addr, p)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(acc))
	}
	_ = f.SetRowHeight(sheet, 2, 20)

	for ri, attr := range personaAttributes {
		r := ri + 3
		alt := ""
		if ri%2 == 0 {
			alt = "#FDFBFF"
		}
		_ = f.SetCellValue(sheet, cell(1, r), attr)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data("#FAF5FF", "left"))
		for pi := range personas {
			addr := cell(pi+2, r)
			_ = f.SetCellStyle(sheet, addr, addr, s.data(alt, "left"))
		}
		_ = f.SetRowHeight(sheet, r, 36)
	}
}
