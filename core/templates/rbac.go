package templates

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetforge/core/types"
)

// permissionVocabularies maps each permission mode to its dropdown
// values. The Legend sheet enumerates the active vocabulary.
var permissionVocabularies = map[string][]string{
	"CRUD":      {"Full", "C/R/U/D", "R Only", "None"},
	"AllowDeny": {"✓", "✗"},
	"Levels":    {"Full Access", "Read Only", "No Access"},
	"Azure":     {"Owner", "Contributor", "Reader", "None"},
}

var permissionColours = map[string]string{
	"Full": "#E74C3C", "C/R/U/D": "#E67E22", "R Only": "#27AE60",
	"None": "#D5D5D5", "✓": "#27AE60", "✗": "#E74C3C",
	"Full Access": "#E74C3C", "Read Only": "#27AE60", "No Access": "#D5D5D5",
	"Owner": "#E74C3C", "Contributor": "#F39C12", "Reader": "#27AE60",
}

// buildRbac lays out the role-by-scope matrix with dropdown-bound
// permission cells plus Legend and Roles Register sheets.
func buildRbac(cfg types.TemplateConfig) (*excelize.File, error) {
	f := excelize.NewFile()
	s := newStylist(f)
	_ = f.SetDocProps(&excelize.DocProperties{Creator: cfg.String("companyName")})

	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	roles := cfg.Tags("roles")
	resources := cfg.Tags("resourceGroups")
	includeDesc := cfg.Bool("includeDescription")
	includeJust := cfg.Bool("includeJustification")
	permMode := cfg.String("permissionValues")

	perms, ok := permissionVocabularies[permMode]
	if !ok {
		perms = []string{"Full", "Read", "None"}
	}

	totalCols := len(roles)
	if includeDesc {
		totalCols++
	}
	if includeJust {
		totalCols++
	}

	const sheet = "RBAC Matrix"
	_ = f.SetSheetName("Sheet1", sheet)
	freeze(f, sheet, 1, 4)

	_ = f.SetColWidth(sheet, "A", "A", 24)
	c := 2
	if includeDesc {
		_ = f.SetColWidth(sheet, colName(c), colName(c), 30)
		c++
	}
	if len(roles) > 0 {
		_ = f.SetColWidth(sheet, colName(c), colName(c+len(roles)-1), 16)
		c += len(roles)
	}
	if includeJust {
		_ = f.SetColWidth(sheet, colName(c), colName(c), 36)
	}

	r := 1

	// Title
	mergeAcross(f, sheet, r, 1, 1+totalCols)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("%s  —  RBAC Matrix", cfg.String("projectName")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.title(hdr, 15))
	_ = f.SetRowHeight(sheet, r, 30)
	r++

	// Metadata
	mergeAcross(f, sheet, r, 1, 1+totalCols)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("Organisation: %s   |   Environment: %s   |   Generated: %s",
		cfg.String("companyName"), cfg.String("azureEnvironment"), time.Now().Format("02/01/2006")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.fill("#F5F5F5", "#555555", false, true))
	_ = f.SetRowHeight(sheet, r, 16)
	r++

	// Column headers
	_ = f.SetCellValue(sheet, cell(1, r), "Resource Group / Scope")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.headerCell(hdr))
	hCol := 2
	if includeDesc {
		_ = f.SetCellValue(sheet, cell(hCol, r), "Role Description")
		_ = f.SetCellStyle(sheet, cell(hCol, r), cell(hCol, r), s.headerCell(hdr))
		hCol++
	}
	roleStartCol := hCol
	for _, role := range roles {
		_ = f.SetCellValue(sheet, cell(hCol, r), role)
		_ = f.SetCellStyle(sheet, cell(hCol, r), cell(hCol, r), s.headerCell(hdr))
		hCol++
	}
	if includeJust {
		_ = f.SetCellValue(sheet, cell(hCol, r), "Justification / Notes")
		_ = f.SetCellStyle(sheet, cell(hCol, r), cell(hCol, r), s.headerCell(hdr))
	}
	_ = f.SetRowHeight(sheet, r, 40)
	r++

	// Scope rows
	matrixStart := r
	for ri, resource := range resources {
		scopeBg := "#FFFFFF"
		alt := ""
		if ri%2 == 0 {
			scopeBg = "#F0F7FF"
			alt = "#F9FAFB"
		}
		_ = f.SetCellValue(sheet, cell(1, r), resource)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(scopeBg, "left"))

		dCol := 2
		if includeDesc {
			_ = f.SetCellStyle(sheet, cell(dCol, r), cell(dCol, r), s.data(alt, "left"))
			dCol++
		}
		for range roles {
			_ = f.SetCellStyle(sheet, cell(dCol, r), cell(dCol, r), s.data(alt, "center"))
			dCol++
		}
		if includeJust {
			_ = f.SetCellStyle(sheet, cell(dCol, r), cell(dCol, r), s.data(alt, "left"))
		}
		_ = f.SetRowHeight(sheet, r, 20)
		r++
	}

	// One dropdown per role column across all scope rows
	if len(resources) > 0 {
		for i := range roles {
			col := roleStartCol + i
			sqref := fmt.Sprintf("%s:%s", cell(col, matrixStart), cell(col, r-1))
			setDropList(f, sheet, sqref, perms, true)
		}
	}

	writeRbacLegend(f, s, hdr, acc, permMode, perms)
	writeRolesRegister(f, s, hdr, roles)
	return f, nil
}

func writeRbacLegend(f *excelize.File, s *stylist, hdr, acc, permMode string, perms []string) {
	const sheet = "Legend & Key"
	_, _ = f.NewSheet(sheet)
	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 40)

	mergeAcross(f, sheet, 1, 1, 2)
	_ = f.SetCellValue(sheet, "A1", "RBAC Permission Key")
	_ = f.SetCellStyle(sheet, "A1", "A1", s.title(hdr, 12))
	_ = f.SetRowHeight(sheet, 1, 24)

	mergeAcross(f, sheet, 2, 1, 2)
	_ = f.SetCellValue(sheet, "A2", "Permission Mode: "+permMode)
	_ = f.SetCellStyle(sheet, "A2", "A2", s.title(acc, 11))
	_ = f.SetRowHeight(sheet, 2, 18)

	for i, perm := range perms {
		r := i + 3
		colour, ok := permissionColours[perm]
		if !ok {
			colour = "#AAAAAA"
		}
		_ = f.SetCellValue(sheet, cell(1, r), perm)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(colour, "#FFFFFF", "center", 10))
		_ = f.SetCellValue(sheet, cell(2, r), "Level: "+perm)
		_ = f.SetCellStyle(sheet, cell(2, r), cell(2, r), s.data("", "left"))
		_ = f.SetRowHeight(sheet, r, 18)
	}
}

func writeRolesRegister(f *excelize.File, s *stylist, hdr string, roles []string) {
	const sheet = "Roles Register"
	_, _ = f.NewSheet(sheet)
	for i, w := range []float64{24, 40, 20, 20} {
		col := colName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	for i, h := range []string{"Role Name", "Description", "Azure Built-in Role", "Custom Role?"} {
		addr := cell(i+1, 1)
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(hdr))
	}
	_ = f.SetRowHeight(sheet, 1, 20)

	for i, role := range roles {
		r := i + 2
		alt := ""
		if i%2 == 0 {
			alt = "#F9FAFB"
		}
		_ = f.SetCellValue(sheet, cell(1, r), role)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(alt, "left"))
		_ = f.SetCellStyle(sheet, cell(2, r), cell(2, r), s.data(alt, "left"))
		_ = f.SetCellStyle(sheet, cell(3, r), cell(3, r), s.data(alt, "center"))
		_ = f.SetCellValue(sheet, cell(4, r), "No")
		_ = f.SetCellStyle(sheet, cell(4, r), cell(4, r), s.data(alt, "center"))
		_ = f.SetRowHeight(sheet, r, 18)
	}
	if len(roles) > 0 {
		sqref := fmt.Sprintf("D2:D%d", len(roles)+1)
		setDropList(f, sheet, sqref, []string{"Yes", "No"}, false)
	}
}
