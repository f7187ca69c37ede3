package templates

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// stylist creates and caches excelize style IDs for one workbook.
// Style inputs are static strings, so creation cannot fail; a cache
// keeps the style table small when the same preset repeats across
// hundreds of cells.
type stylist struct {
	f     *excelize.File
	cache map[string]int
}

func newStylist(f *excelize.File) *stylist {
	return &stylist{f: f, cache: map[string]int{}}
}

func (s *stylist) id(key string, style *excelize.Style) int {
	if id, ok := s.cache[key]; ok {
		return id
	}
	id, _ := s.f.NewStyle(style)
	s.cache[key] = id
	return id
}

// hexColor normalizes a "#RRGGBB" config value to excelize's bare hex.
func hexColor(c string) string {
	return strings.TrimPrefix(c, "#")
}

func thinBorder(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
	}
}

// header is the banner/header preset: solid fill, bold colored font,
// thin border. align is "left", "center", or "right".
func (s *stylist) header(bg, fontColor, align string, size float64) int {
	key := fmt.Sprintf("hdr|%s|%s|%s|%v", bg, fontColor, align, size)
	return s.id(key, &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(bg)}},
		Font: &excelize.Font{Bold: true, Color: hexColor(fontColor), Family: "Calibri", Size: size},
		Border: thinBorder("D0D0D0"),
		Alignment: &excelize.Alignment{Horizontal: align, Vertical: "center", WrapText: true},
	})
}

func (s *stylist) headerCell(bg string) int {
	return s.header(bg, "#FFFFFF", "center", 10)
}

func (s *stylist) title(bg string, size float64) int {
	return s.header(bg, "#FFFFFF", "center", size)
}

// data is the plain data preset with a light border and optional fill.
func (s *stylist) data(bg, align string) int {
	key := fmt.Sprintf("data|%s|%s", bg, align)
	style := &excelize.Style{
		Font:      &excelize.Font{Family: "Calibri", Size: 10},
		Border:    thinBorder("E8E8E8"),
		Alignment: &excelize.Alignment{Horizontal: align, Vertical: "center", WrapText: true},
	}
	if bg != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(bg)}}
	}
	return s.id(key, style)
}

// money is the data preset with a currency number format.
func (s *stylist) money(sym, bg string) int {
	key := fmt.Sprintf("money|%s|%s", sym, bg)
	numFmt := moneyFormat(sym)
	style := &excelize.Style{
		Font:         &excelize.Font{Family: "Calibri", Size: 10},
		Border:       thinBorder("E8E8E8"),
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		CustomNumFmt: &numFmt,
	}
	if bg != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(bg)}}
	}
	return s.id(key, style)
}

// moneyHeader styles total rows: header fill with a currency format.
func (s *stylist) moneyHeader(sym, bg, fontColor string) int {
	key := fmt.Sprintf("moneyhdr|%s|%s|%s", sym, bg, fontColor)
	numFmt := moneyFormat(sym)
	return s.id(key, &excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(bg)}},
		Font:         &excelize.Font{Bold: true, Color: hexColor(fontColor), Family: "Calibri", Size: 11},
		Border:       thinBorder("D0D0D0"),
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		CustomNumFmt: &numFmt,
	})
}

// dateCell styles a date input column.
func (s *stylist) dateCell(bg string) int {
	key := "date|" + bg
	numFmt := "dd/mm/yyyy"
	style := &excelize.Style{
		Font:         &excelize.Font{Family: "Calibri", Size: 10},
		Border:       thinBorder("E8E8E8"),
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		CustomNumFmt: &numFmt,
	}
	if bg != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(bg)}}
	}
	return s.id(key, style)
}

// fill is a bare solid fill with a small font, used for bands and notes.
func (s *stylist) fill(bg, fontColor string, bold, italic bool) int {
	key := fmt.Sprintf("fill|%s|%s|%v|%v", bg, fontColor, bold, italic)
	return s.id(key, &excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(bg)}},
		Font:      &excelize.Font{Bold: bold, Italic: italic, Color: hexColor(fontColor), Family: "Calibri", Size: 9},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
}

func moneyFormat(sym string) string {
	return `"` + sym + `"#,##0.00`
}

// cell builds an A1-style address from one-based column and row.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// colName returns the letter(s) for a one-based column number.
func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// mergeAcross merges row r from column c1 through c2.
func mergeAcross(f *excelize.File, sheet string, row, c1, c2 int) {
	_ = f.MergeCell(sheet, cell(c1, row), cell(c2, row))
}

// setDropList attaches a dropdown constraint over a cell range.
func setDropList(f *excelize.File, sheet, sqref string, options []string, allowBlank bool) {
	dv := excelize.NewDataValidation(allowBlank)
	dv.Sqref = sqref
	_ = dv.SetDropList(options)
	dv.SetError(excelize.DataValidationErrorStyleStop, "Invalid Value",
		"Please select from: "+strings.Join(options, ", "))
	_ = f.AddDataValidation(sheet, dv)
}

// freeze freezes panes above row ySplit and left of column xSplit.
func freeze(f *excelize.File, sheet string, xSplit, ySplit int) {
	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      xSplit,
		YSplit:      ySplit,
		TopLeftCell: cell(xSplit+1, ySplit+1),
		ActivePane:  "bottomRight",
	})
}
