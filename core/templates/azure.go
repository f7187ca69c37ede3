package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetforge/core/catalogue"
	"sheetforge/core/types"
)

const azureCols = 9

const placeholderRowsPerCategory = 4

// buildAzureCalculator lays out the cost estimate workbook. With no
// resources it emits fixed placeholder rows per configured category;
// with a resolved resource list it groups resources by category in
// first-seen order and writes one row each. The grand total references
// every category subtotal by its recorded row number, so both modes
// share the same address arithmetic.
func buildAzureCalculator(cfg types.TemplateConfig, resources []types.AzureResource) (*excelize.File, error) {
	f := excelize.NewFile()
	s := newStylist(f)
	_ = f.SetDocProps(&excelize.DocProperties{Creator: cfg.String("companyName")})

	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	sym := types.CurrencySymbol(cfg.String("currency"))
	contingencyPct := cfg.Number("contingencyPct")
	includeReserved := cfg.Bool("includeReserved")

	const sheet = "Cost Estimate"
	_ = f.SetSheetName("Sheet1", sheet)
	freeze(f, sheet, 0, 5)

	for i, w := range []float64{30, 18, 28, 16, 8, 16, 16, 16, 30} {
		col := colName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	r := 1

	// Title
	mergeAcross(f, sheet, r, 1, azureCols)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("%s  —  Azure Cost Estimate", cfg.String("projectName")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.title(hdr, 16))
	_ = f.SetRowHeight(sheet, r, 32)
	r++

	// Subtitle
	mergeAcross(f, sheet, r, 1, azureCols)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("Organisation: %s   |   Region: %s   |   Currency: %s   |   Generated: %s",
		cfg.String("companyName"), cfg.String("region"), cfg.String("currency"), time.Now().Format("02/01/2006")))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(acc, "#003087", "center", 9))
	_ = f.SetRowHeight(sheet, r, 16)
	r++

	// Note row
	mergeAcross(f, sheet, r, 1, azureCols)
	note := "⚠️  Placeholder rows — replace unit costs with actual Azure pricing before sharing this estimate"
	if len(resources) > 0 {
		snapshot := catalogue.Get()
		note = fmt.Sprintf("Unit costs resolved from the %s retail pricing snapshot (%s, generated %s)",
			snapshot.Region, snapshot.Currency, snapshot.GeneratedAt)
	}
	_ = f.SetCellValue(sheet, cell(1, r), note)
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.fill("#FFF3CD", "#8B4513", false, true))
	_ = f.SetRowHeight(sheet, r, 14)
	r += 2

	// Column headers
	colHeaders := []string{
		"Resource / Service", "SKU / Tier", "Description", "Environment", "Qty",
		fmt.Sprintf("Unit Cost (%s/mo)", sym), fmt.Sprintf("Monthly Total (%s)", sym),
		fmt.Sprintf("Annual Total (%s)", sym), "Notes",
	}
	for i, h := range colHeaders {
		addr := cell(i+1, r)
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(hdr))
	}
	_ = f.SetRowHeight(sheet, r, 32)
	r++

	// Category blocks
	var subtotalRows []int
	if len(resources) > 0 {
		for _, group := range groupByCategory(resources) {
			var subtotal int
			r, subtotal = writeAzureBlock(f, s, sheet, r, group.category, group.resources, hdr, sym)
			subtotalRows = append(subtotalRows, subtotal)
		}
	} else {
		placeholders := make([]types.AzureResource, placeholderRowsPerCategory)
		for _, cat := range cfg.Tags("resourceCategories") {
			for i := range placeholders {
				placeholders[i] = types.AzureResource{
					Name:     fmt.Sprintf("%s Resource %d", cat, i+1),
					Quantity: 1,
					Category: cat,
				}
			}
			var subtotal int
			r, subtotal = writeAzureBlock(f, s, sheet, r, cat, placeholders, hdr, sym)
			subtotalRows = append(subtotalRows, subtotal)
		}
	}

	// Grand total over the recorded subtotal rows
	r++
	grandRow := r
	refs := make([]string, len(subtotalRows))
	for i, row := range subtotalRows {
		refs[i] = fmt.Sprintf("G%d", row)
	}
	mergeAcross(f, sheet, r, 1, 6)
	_ = f.SetCellValue(sheet, cell(1, r), "GRAND TOTAL (before contingency)")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(acc, "#003087", "right", 11))
	_ = f.SetCellFormula(sheet, cell(7, r), strings.Join(refs, "+"))
	_ = f.SetCellStyle(sheet, cell(7, r), cell(7, r), s.moneyHeader(sym, acc, "#003087"))
	_ = f.SetCellFormula(sheet, cell(8, r), fmt.Sprintf("G%d*12", r))
	_ = f.SetCellStyle(sheet, cell(8, r), cell(8, r), s.moneyHeader(sym, acc, "#003087"))
	_ = f.SetCellStyle(sheet, cell(9, r), cell(9, r), s.headerCell(acc))
	_ = f.SetRowHeight(sheet, r, 24)
	r++

	// Contingency
	mergeAcross(f, sheet, r, 1, 6)
	_ = f.SetCellValue(sheet, cell(1, r), fmt.Sprintf("Contingency (%v%%)", contingencyPct))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data("#FFF9E6", "right"))
	_ = f.SetCellFormula(sheet, cell(7, r), fmt.Sprintf("G%d*%v", grandRow, contingencyPct/100))
	_ = f.SetCellStyle(sheet, cell(7, r), cell(7, r), s.money(sym, "#FFF9E6"))
	_ = f.SetCellFormula(sheet, cell(8, r), fmt.Sprintf("H%d*%v", grandRow, contingencyPct/100))
	_ = f.SetCellStyle(sheet, cell(8, r), cell(8, r), s.money(sym, "#FFF9E6"))
	_ = f.SetCellStyle(sheet, cell(9, r), cell(9, r), s.data("#FFF9E6", "left"))
	_ = f.SetRowHeight(sheet, r, 20)
	r++

	if includeReserved {
		mergeAcross(f, sheet, r, 1, 6)
		_ = f.SetCellValue(sheet, cell(1, r), "Reserved Instance Savings (est. -30%)")
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data("#E9F7EF", "right"))
		_ = f.SetCellFormula(sheet, cell(7, r), fmt.Sprintf("G%d*-0.3", grandRow))
		_ = f.SetCellStyle(sheet, cell(7, r), cell(7, r), s.money(sym, "#E9F7EF"))
		_ = f.SetCellFormula(sheet, cell(8, r), fmt.Sprintf("H%d*-0.3", grandRow))
		_ = f.SetCellStyle(sheet, cell(8, r), cell(8, r), s.money(sym, "#E9F7EF"))
		_ = f.SetCellStyle(sheet, cell(9, r), cell(9, r), s.data("#E9F7EF", "left"))
		_ = f.SetRowHeight(sheet, r, 20)
		r++
	}

	// Final total over whichever adjustment rows exist
	finalRefs := fmt.Sprintf("G%d+G%d", r-2, r-1)
	if includeReserved {
		finalRefs = fmt.Sprintf("G%d+G%d+G%d", r-3, r-2, r-1)
	}
	mergeAcross(f, sheet, r, 1, 6)
	_ = f.SetCellValue(sheet, cell(1, r), "TOTAL ESTIMATE (incl. contingency)")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(hdr, "#FFFFFF", "right", 12))
	_ = f.SetCellFormula(sheet, cell(7, r), finalRefs)
	_ = f.SetCellStyle(sheet, cell(7, r), cell(7, r), s.moneyHeader(sym, hdr, "#FFFFFF"))
	_ = f.SetCellFormula(sheet, cell(8, r), fmt.Sprintf("G%d*12", r))
	_ = f.SetCellStyle(sheet, cell(8, r), cell(8, r), s.moneyHeader(sym, hdr, "#FFFFFF"))
	_ = f.SetCellStyle(sheet, cell(9, r), cell(9, r), s.headerCell(hdr))
	_ = f.SetRowHeight(sheet, r, 28)

	writeEnvironmentSummary(f, s, cfg, sym)
	if cfg.Bool("includePricingReference") {
		writePricingReference(f, s, hdr)
	}
	return f, nil
}

type categoryGroup struct {
	category  string
	resources []types.AzureResource
}

// groupByCategory buckets resources by category, preserving first-seen
// category order and resource order within each bucket.
func groupByCategory(resources []types.AzureResource) []categoryGroup {
	index := map[string]int{}
	var groups []categoryGroup
	for _, res := range resources {
		i, ok := index[res.Category]
		if !ok {
			i = len(groups)
			index[res.Category] = i
			groups = append(groups, categoryGroup{category: res.Category})
		}
		groups[i].resources = append(groups[i].resources, res)
	}
	return groups
}

// writeAzureBlock emits one category band, its resource rows, and a
// subtotal row. It returns the next free row (after the trailing blank
// gap) and the subtotal's row number.
func writeAzureBlock(f *excelize.File, s *stylist, sheet string, startRow int, category string, resources []types.AzureResource, hdr, sym string) (next, subtotalRow int) {
	r := startRow

	mergeAcross(f, sheet, r, 1, azureCols)
	_ = f.SetCellValue(sheet, cell(1, r), "▶  "+strings.ToUpper(category))
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.fill("#034078", "#FFFFFF", true, false))
	_ = f.SetRowHeight(sheet, r, 18)
	r++

	firstData := r
	for i, res := range resources {
		nameBg, bg, costBg, totalBg := "", "", "#FEFDF5", "#F5FBFF"
		if i%2 == 0 {
			nameBg, bg, costBg, totalBg = "#F0F7FF", "#F9FAFB", "#FFF9E6", "#EBF5FB"
		}
		_ = f.SetCellValue(sheet, cell(1, r), res.Name)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(nameBg, "left"))
		if res.SkuName != "" {
			_ = f.SetCellValue(sheet, cell(2, r), res.SkuName)
		}
		_ = f.SetCellStyle(sheet, cell(2, r), cell(2, r), s.data(bg, "center"))
		if res.ServiceName != "" {
			_ = f.SetCellValue(sheet, cell(3, r), res.ServiceName)
		}
		_ = f.SetCellStyle(sheet, cell(3, r), cell(3, r), s.data(bg, "left"))
		if res.Environment != "" {
			_ = f.SetCellValue(sheet, cell(4, r), res.Environment)
		}
		_ = f.SetCellStyle(sheet, cell(4, r), cell(4, r), s.data(bg, "center"))
		_ = f.SetCellValue(sheet, cell(5, r), res.Quantity)
		_ = f.SetCellStyle(sheet, cell(5, r), cell(5, r), s.data(bg, "center"))
		_ = f.SetCellValue(sheet, cell(6, r), res.UnitMonthlyCost)
		_ = f.SetCellStyle(sheet, cell(6, r), cell(6, r), s.money(sym, costBg))
		_ = f.SetCellFormula(sheet, cell(7, r), fmt.Sprintf("E%d*F%d", r, r))
		_ = f.SetCellStyle(sheet, cell(7, r), cell(7, r), s.money(sym, totalBg))
		_ = f.SetCellFormula(sheet, cell(8, r), fmt.Sprintf("G%d*12", r))
		_ = f.SetCellStyle(sheet, cell(8, r), cell(8, r), s.money(sym, totalBg))
		if res.Notes != "" {
			_ = f.SetCellValue(sheet, cell(9, r), res.Notes)
		}
		_ = f.SetCellStyle(sheet, cell(9, r), cell(9, r), s.data(bg, "left"))
		_ = f.SetRowHeight(sheet, r, 18)
		r++
	}

	subtotalRow = r
	mergeAcross(f, sheet, r, 1, 4)
	_ = f.SetCellValue(sheet, cell(1, r), category+" Subtotal")
	_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.header(hdr, "#FFFFFF", "right", 10))
	_ = f.SetCellFormula(sheet, cell(5, r), fmt.Sprintf("SUM(E%d:E%d)", firstData, r-1))
	_ = f.SetCellStyle(sheet, cell(5, r), cell(5, r), s.headerCell(hdr))
	_ = f.SetCellStyle(sheet, cell(6, r), cell(6, r), s.headerCell(hdr))
	_ = f.SetCellFormula(sheet, cell(7, r), fmt.Sprintf("SUM(G%d:G%d)", firstData, r-1))
	_ = f.SetCellStyle(sheet, cell(7, r), cell(7, r), s.moneyHeader(sym, hdr, "#FFFFFF"))
	_ = f.SetCellFormula(sheet, cell(8, r), fmt.Sprintf("SUM(H%d:H%d)", firstData, r-1))
	_ = f.SetCellStyle(sheet, cell(8, r), cell(8, r), s.moneyHeader(sym, hdr, "#FFFFFF"))
	_ = f.SetCellStyle(sheet, cell(9, r), cell(9, r), s.headerCell(hdr))
	_ = f.SetRowHeight(sheet, r, 18)

	return r + 2, subtotalRow
}

func writeEnvironmentSummary(f *excelize.File, s *stylist, cfg types.TemplateConfig, sym string) {
	const sheet = "By Environment"
	_, _ = f.NewSheet(sheet)
	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	environments := cfg.Tags("environments")
	categories := cfg.Tags("resourceCategories")

	_ = f.SetColWidth(sheet, "A", "A", 26)
	if len(environments) > 0 {
		_ = f.SetColWidth(sheet, "B", colName(len(environments)+1), 18)
	}

	mergeAcross(f, sheet, 1, 1, len(environments)+1)
	_ = f.SetCellValue(sheet, "A1", "Cost Breakdown by Environment")
	_ = f.SetCellStyle(sheet, "A1", "A1", s.title(hdr, 12))
	_ = f.SetRowHeight(sheet, 1, 24)

	_ = f.SetCellValue(sheet, "A2", "Resource Category")
	_ = f.SetCellStyle(sheet, "A2", "A2", s.header(acc, "#003087", "center", 10))
	for i, env := range environments {
		addr := cell(i+2, 2)
		_ = f.SetCellValue(sheet, addr, env)
		_ = f.SetCellStyle(sheet, addr, addr, s.header(acc, "#003087", "center", 10))
	}
	_ = f.SetRowHeight(sheet, 2, 20)

	for ri, cat := range categories {
		r := ri + 3
		catBg, alt := "", ""
		if ri%2 == 0 {
			catBg, alt = "#F0F7FF", "#F9FAFB"
		}
		_ = f.SetCellValue(sheet, cell(1, r), cat)
		_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(catBg, "left"))
		for ei := range environments {
			addr := cell(ei+2, r)
			_ = f.SetCellValue(sheet, addr, 0)
			_ = f.SetCellStyle(sheet, addr, addr, s.money(sym, alt))
		}
		_ = f.SetRowHeight(sheet, r, 18)
	}
}

// writePricingReference dumps the embedded catalogue onto its own
// sheet with a frozen header and an auto-filter. Monthly figures for
// hourly SKUs are emitted as formulas over the unit price column.
func writePricingReference(f *excelize.File, s *stylist, hdr string) {
	const sheet = "Pricing Reference"
	_, _ = f.NewSheet(sheet)

	for i, w := range []float64{28, 24, 20, 14, 12, 14} {
		col := colName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	for i, h := range []string{"Service", "SKU", "Family", "Unit", "Price", "Monthly"} {
		addr := cell(i+1, 1)
		_ = f.SetCellValue(sheet, addr, h)
		_ = f.SetCellStyle(sheet, addr, addr, s.headerCell(hdr))
	}
	_ = f.SetRowHeight(sheet, 1, 20)
	freeze(f, sheet, 0, 1)

	r := 2
	for _, service := range catalogue.Services() {
		for _, sku := range catalogue.ServiceSkus(service) {
			entry, ok := catalogue.FindPricing(service, sku)
			if !ok {
				continue
			}
			alt := ""
			if r%2 == 0 {
				alt = "#F9FAFB"
			}
			_ = f.SetCellValue(sheet, cell(1, r), service)
			_ = f.SetCellStyle(sheet, cell(1, r), cell(1, r), s.data(alt, "left"))
			_ = f.SetCellValue(sheet, cell(2, r), sku)
			_ = f.SetCellStyle(sheet, cell(2, r), cell(2, r), s.data(alt, "left"))
			_ = f.SetCellValue(sheet, cell(3, r), entry.Family)
			_ = f.SetCellStyle(sheet, cell(3, r), cell(3, r), s.data(alt, "left"))
			_ = f.SetCellValue(sheet, cell(4, r), entry.Unit)
			_ = f.SetCellStyle(sheet, cell(4, r), cell(4, r), s.data(alt, "center"))
			_ = f.SetCellValue(sheet, cell(5, r), entry.Price)
			_ = f.SetCellStyle(sheet, cell(5, r), cell(5, r), s.data(alt, "right"))
			if catalogue.IsHourly(entry.Unit) {
				_ = f.SetCellFormula(sheet, cell(6, r), fmt.Sprintf("E%d*%d", r, catalogue.HoursPerMonth))
			} else {
				_ = f.SetCellFormula(sheet, cell(6, r), fmt.Sprintf("E%d", r))
			}
			_ = f.SetCellStyle(sheet, cell(6, r), cell(6, r), s.data(alt, "right"))
			r++
		}
	}

	if r > 2 {
		_ = f.AutoFilter(sheet, fmt.Sprintf("A1:F%d", r-1), nil)
	}
}
