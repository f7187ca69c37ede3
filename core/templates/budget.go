package templates

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sheetforge/core/types"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// buildBudget lays out the Expenses, Income, and Summary sheets. Row
// totals and column totals are SUM formulas over the month range, and
// the Summary pulls the two grand totals through cross-sheet
// references.
func buildBudget(cfg types.TemplateConfig) (*excelize.File, error) {
	f := excelize.NewFile()
	s := newStylist(f)
	_ = f.SetDocProps(&excelize.DocProperties{Creator: cfg.String("companyName")})

	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	sym := types.CurrencySymbol(cfg.String("currency"))
	months := cfg.Int("months")
	if months < 1 {
		months = 12
	}
	if months > 12 {
		months = 12
	}
	cats := cfg.Tags("categories")
	incCats := cfg.Tags("incomeCategories")
	title := fmt.Sprintf("%s — %s", cfg.String("companyName"), cfg.String("reportTitle"))

	const expSheet = "Expenses"
	_ = f.SetSheetName("Sheet1", expSheet)
	expTotalsRow := writeBudgetTracker(f, s, expSheet, budgetTracker{
		title:     title,
		subtitle:  "EXPENSE TRACKER",
		hdr:       hdr,
		acc:       acc,
		sym:       sym,
		months:    months,
		cats:      cats,
		hasBudget: true,
	})

	const incSheet = "Income"
	_, _ = f.NewSheet(incSheet)
	incTotalsRow := writeBudgetTracker(f, s, incSheet, budgetTracker{
		title:    title,
		subtitle: "INCOME TRACKER",
		hdr:      hdr,
		acc:      acc,
		sym:      sym,
		months:   months,
		cats:     incCats,
	})

	writeBudgetSummary(f, s, cfg, sym, months, incTotalsRow, expTotalsRow)
	return f, nil
}

type budgetTracker struct {
	title, subtitle string
	hdr, acc, sym   string
	months          int
	cats            []string
	hasBudget       bool
}

// writeBudgetTracker emits one tracker sheet and returns its totals
// row number.
func writeBudgetTracker(f *excelize.File, s *stylist, sheet string, t budgetTracker) int {
	freeze(f, sheet, 1, 4)
	lastCol := t.months + 3
	usedCols := t.months + 2
	if t.hasBudget {
		usedCols = t.months + 3
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", colName(lastCol), 14)

	mergeAcross(f, sheet, 1, 1, lastCol)
	_ = f.SetCellValue(sheet, "A1", t.title)
	_ = f.SetCellStyle(sheet, "A1", "A1", s.title(t.hdr, 14))
	_ = f.SetRowHeight(sheet, 1, 30)

	mergeAcross(f, sheet, 2, 1, lastCol)
	_ = f.SetCellValue(sheet, "A2", t.subtitle)
	_ = f.SetCellStyle(sheet, "A2", "A2", s.title(t.acc, 11))
	_ = f.SetRowHeight(sheet, 2, 20)
	_ = f.SetRowHeight(sheet, 3, 6)

	// Column headers
	_ = f.SetCellValue(sheet, "A4", "Category")
	_ = f.SetCellStyle(sheet, "A4", "A4", s.header(t.hdr, "#FFFFFF", "left", 11))
	for i := 0; i < t.months; i++ {
		addr := cell(i+2, 4)
		_ = f.SetCellValue(sheet, addr, monthNames[i])
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(t.hdr))
	}
	totalCol := t.months + 2
	_ = f.SetCellValue(sheet, cell(totalCol, 4), "Total")
	_ = f.SetCellStyle(sheet, cell(totalCol, 4), cell(totalCol, 4), s.headerCell(t.hdr))
	if t.hasBudget {
		_ = f.SetCellValue(sheet, cell(t.months+3, 4), "Budget")
		_ = f.SetCellStyle(sheet, cell(t.months+3, 4), cell(t.months+3, 4), s.headerCell(t.hdr))
	}
	_ = f.SetRowHeight(sheet, 4, 20)

	// Category rows
	const dataStart = 5
	for ri, cat := range t.cats {
		r := dataStart + ri
		alt := ""
		if ri%2 == 0 {
			alt = "#F9FAFB"
		}
		_ = f.SetCellValue(sheet, cell(1, r), cat)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data("", "left"))
		for ci := 0; ci < t.months; ci++ {
			addr := cell(ci+2, r)
			_ = f.SetCellValue(sheet, addr, 0)
			_ = f.SetCellStyle(sheet, addr, addr, s.money(t.sym, alt))
		}
		totalAddr := cell(totalCol, r)
		_ = f.SetCellFormula(sheet, totalAddr, fmt.Sprintf("SUM(B%d:%s%d)", r, colName(t.months+1), r))
		_ = f.SetCellStyle(sheet, totalAddr, totalAddr, s.money(t.sym, "#EBF5FB"))
		if t.hasBudget {
			bAddr := cell(t.months+3, r)
			_ = f.SetCellValue(sheet, bAddr, 0)
			_ = f.SetCellStyle(sheet, bAddr, bAddr, s.money(t.sym, "#FFF9E6"))
		}
		_ = f.SetRowHeight(sheet, r, 18)
	}

	// Totals row
	totalsRow := dataStart + len(t.cats)
	_ = f.SetCellValue(sheet, cell(1, totalsRow), "TOTAL")
	_ = f.SetCellStyle(sheet, cell(1, totalsRow), cell(1, totalsRow), s.header(t.acc, "#FFFFFF", "left", 11))
	for c := 2; c <= usedCols; c++ {
		addr := cell(c, totalsRow)
		col := colName(c)
		_ = f.SetCellFormula(sheet, addr, fmt.Sprintf("SUM(%s%d:%s%d)", col, dataStart, col, totalsRow-1))
		_ = f.SetCellStyle(sheet, addr, addr, s.moneyHeader(t.sym, t.acc, "#FFFFFF"))
	}
	_ = f.SetRowHeight(sheet, totalsRow, 22)
	return totalsRow
}

func writeBudgetSummary(f *excelize.File, s *stylist, cfg types.TemplateConfig, sym string, months, incTotalsRow, expTotalsRow int) {
	const sheet = "Summary"
	_, _ = f.NewSheet(sheet)
	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")

	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "D", 18)

	mergeAcross(f, sheet, 1, 1, 4)
	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("%s — Financial Summary", cfg.String("companyName")))
	_ = f.SetCellStyle(sheet, "A1", "A1", s.title(hdr, 14))
	_ = f.SetRowHeight(sheet, 1, 30)

	for ci, h := range []string{"", "Budget", "Actual", "Variance"} {
		addr := cell(ci+1, 3)
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(acc))
	}

	totalCol := colName(months + 2)
	rows := []struct {
		label   string
		formula string
	}{
		{"Total Income", fmt.Sprintf("'Income'!%s%d", totalCol, incTotalsRow)},
		{"Total Expenses", fmt.Sprintf("'Expenses'!%s%d", totalCol, expTotalsRow)},
		{"Net Position", "B4-B5"},
	}
	for ri, row := range rows {
		r := 4 + ri
		alt := ""
		if ri%2 == 1 {
			alt = "#F9FAFB"
		}
		_ = f.SetCellValue(sheet, cell(1, r), row.label)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(alt, "left"))
		_ = f.SetCellFormula(sheet, cell(2, r), row.formula)
		_ = f.SetCellStyle(sheet, cell(2, r), cell(2, r), s.money(sym, alt))
		for c := 3; c <= 4; c++ {
			_ = f.SetCellValue(sheet, cell(c, r), "—")
			_ = f.SetCellStyle(sheet, cell(c, r), cell(c, r), s.data(alt, "right"))
		}
		_ = f.SetRowHeight(sheet, r, 20)
	}
}
