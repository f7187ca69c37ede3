package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetforge/core/types"
)

// buildInvoice lays out a single-sheet invoice or quote. The totals
// chain is formula-only: line amounts multiply qty by rate, the
// subtotal sums the line range, tax multiplies the subtotal, and the
// total adds the two.
func buildInvoice(cfg types.TemplateConfig) (*excelize.File, error) {
	f := excelize.NewFile()
	s := newStylist(f)
	_ = f.SetDocProps(&excelize.DocProperties{Creator: cfg.String("companyName")})

	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	sym := types.CurrencySymbol(cfg.String("currency"))
	taxRate := cfg.Number("taxRate") / 100
	lineCount := cfg.Int("lineItems")
	if lineCount <= 0 {
		lineCount = 10
	}
	docType := cfg.String("documentType")

	sheet := docType
	_ = f.SetSheetName("Sheet1", sheet)
	for i, w := range []float64{10, 40, 12, 16, 16, 28} {
		col := colName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	r := 1

	// Banner
	mergeAcross(f, sheet, r, 1, 6)
	_ = f.SetCellValue(sheet, cell(1, r), cfg.String("companyName"))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.title(hdr, 18))
	_ = f.SetRowHeight(sheet, r, 36)
	r++

	// ABN / contact
	mergeAcross(f, sheet, r, 1, 3)
	_ = f.SetCellValue(sheet, cell(1, r), cfg.String("companyAbn"))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.fill("#FFFFFF", "#666666", false, false))
	mergeAcross(f, sheet, r, 4, 6)
	_ = f.SetCellValue(sheet, cell(4, r), fmt.Sprintf("%s  |  %s", cfg.String("companyEmail"), cfg.String("companyPhone")))
	_ = f.SetCellStyle(sheet, cell(4, r), cell(4, r), s.fill("#FFFFFF", "#666666", false, false))
	_ = f.SetRowHeight(sheet, r, 16)
	r++

	// Document type title
	mergeAcross(f, sheet, r, 1, 6)
	_ = f.SetCellValue(sheet, cell(1, r), strings.ToUpper(docType))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.title(acc, 13))
	_ = f.SetRowHeight(sheet, r, 24)
	r += 2

	// Metadata block: Bill To on the left, invoice fields on the right
	meta := []struct {
		left, right, rightVal string
	}{
		{"BILL TO", "Invoice #", "INV-0001"},
		{"Client Company Name", "Date", time.Now().Format("02/01/2006")},
		{"Client Address Line 1", "Due Date", ""},
		{"Client Address Line 2", "Payment Terms", cfg.String("paymentTerms")},
	}
	for i, m := range meta {
		if i == 0 {
			_ = f.SetCellValue(sheet, cell(1, r), m.left)
			_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.headerCell(acc))
		} else {
			mergeAcross(f, sheet, r, 2, 3)
			_ = f.SetCellValue(sheet, cell(2, r), m.left)
			_ = f.SetCellStyle(sheet, cell(2, r), cell(2, r), s.data("", "left"))
		}
		_ = f.SetCellValue(sheet, cell(4, r), m.right)
		_ = f.SetCellStyle(sheet, cell(4, r), cell(4, r), s.data("", "left"))
		mergeAcross(f, sheet, r, 5, 6)
		_ = f.SetCellValue(sheet, cell(5, r), m.rightVal)
		_ = f.SetCellStyle(sheet, cell(5, r), cell(5, r), s.data("", "left"))
		r++
	}
	r++

	// Line items header
	for i, h := range []string{"#", "Description", "Qty", "Unit Rate", "Amount", "Notes"} {
		addr := cell(i+1, r)
		align := "left"
		if i > 1 {
			align = "center"
		}
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.header(hdr, "#FFFFFF", align, 11))
	}
	_ = f.SetRowHeight(sheet, r, 20)
	r++

	// Line item rows
	lineStart := r
	for i := 0; i < lineCount; i++ {
		row := r + i
		alt := ""
		amtBg := "#F0F8FF"
		if i%2 == 0 {
			alt = "#F9FAFB"
			amtBg = "#EBF5FB"
		}
		_ = f.SetCellValue(sheet, cell(1, row), i+1)
		_ = f.SetCellStyle(sheet, cell(1, row), cell(1, row), s.data(alt, "center"))
		_ = f.SetCellStyle(sheet, cell(2, row), cell(2, row), s.data(alt, "left"))
		_ = f.SetCellValue(sheet, cell(3, row), 0)
		_ = f.SetCellStyle(sheet, cell(3, row), cell(3, row), s.data(alt, "center"))
		_ = f.SetCellValue(sheet, cell(4, row), 0)
		_ = f.SetCellStyle(sheet, cell(4, row), cell(4, row), s.money(sym, alt))
		_ = f.SetCellFormula(sheet, cell(5, row), fmt.Sprintf("C%d*D%d", row, row))
		_ = f.SetCellStyle(sheet, cell(5, row), cell(5, row), s.money(sym, amtBg))
		_ = f.SetCellStyle(sheet, cell(6, row), cell(6, row), s.data(alt, "left"))
		_ = f.SetRowHeight(sheet, row, 18)
	}
	r += lineCount
	r++

	// Subtotal, tax, total
	subtotalRow := r
	mergeAcross(f, sheet, r, 1, 4)
	_ = f.SetCellValue(sheet, cell(1, r), "SUBTOTAL")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data("", "right"))
	_ = f.SetCellFormula(sheet, cell(5, r), fmt.Sprintf("SUM(E%d:E%d)", lineStart, lineStart+lineCount-1))
	_ = f.SetCellStyle(sheet, cell(5, r), cell(5, r), s.money(sym, "#EBF5FB"))
	r++

	taxRow := r
	mergeAcross(f, sheet, r, 1, 4)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("%s (%v%%)", cfg.String("taxLabel"), cfg.Number("taxRate")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data("", "right"))
	_ = f.SetCellFormula(sheet, cell(5, r), fmt.Sprintf("E%d*%v", subtotalRow, taxRate))
	_ = f.SetCellStyle(sheet, cell(5, r), cell(5, r), s.money(sym, "#EBF5FB"))
	r++

	mergeAcross(f, sheet, r, 1, 4)
	_ = f.SetCellValue(sheet, cell(1, r), "TOTAL DUE")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(acc, "#FFFFFF", "right", 12))
	_ = f.SetCellFormula(sheet, cell(5, r), fmt.Sprintf("E%d+E%d", subtotalRow, taxRow))
	_ = f.SetCellStyle(sheet, cell(5, r), cell(5, r), s.moneyHeader(sym, acc, "#FFFFFF"))
	_ = f.SetCellStyle(sheet, cell(6, r), cell(6, r), s.headerCell(acc))
	_ = f.SetRowHeight(sheet, r, 24)
	r += 2

	// Payment details, bank lines verbatim
	mergeAcross(f, sheet, r, 1, 6)
	_ = f.SetCellValue(sheet, cell(1, r), "PAYMENT DETAILS")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(hdr, "#FFFFFF", "left", 11))
	_ = f.SetRowHeight(sheet, r, 18)
	r++
	for _, line := range strings.Split(cfg.String("bankDetails"), "\n") {
		mergeAcross(f, sheet, r, 1, 6)
		_ = f.SetCellValue(sheet, cell(1, r), line)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data("", "left"))
		_ = f.SetRowHeight(sheet, r, 16)
		r++
	}
	r++

	// Notes & terms
	mergeAcross(f, sheet, r, 1, 6)
	_ = f.SetCellValue(sheet, cell(1, r), "NOTES & TERMS")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(hdr, "#FFFFFF", "left", 11))
	_ = f.SetRowHeight(sheet, r, 18)
	r++
	_ = f.MergeCell(sheet, cell(1, r), cell(6, r+2))
	_ = f.SetCellValue(sheet, cell(1, r), cfg.String("notes"))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data("", "left"))
	r += 3

	// Footer
	mergeAcross(f, sheet, r, 1, 6)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("%s  |  %s  |  %s",
		cfg.String("companyName"), cfg.String("companyAddress"), cfg.String("companyEmail")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(hdr, "#CCCCCC", "center", 9))
	_ = f.SetRowHeight(sheet, r, 16)

	return f, nil
}
