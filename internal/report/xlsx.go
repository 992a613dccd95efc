// Package report renders a month plan as a spreadsheet or a text preview.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bryan-cox/worksheet/internal/model"
)

// Sheet layout, as 0-based row indexes.
const (
	titleRow     = 0
	subtitleRow  = 1
	infoRow      = 3
	headerRow    = 6
	firstPlanRow = 7

	// lastCol is the rightmost column of the title bars and task block (J).
	lastCol = model.TaskSpanWidth
)

// Palette (hex RGB).
const (
	colorBlueDark  = "003366"
	colorGreyMed   = "BFBFBF"
	colorGreyLight = "F2F2F2"
	colorWhite     = "FFFFFF"
	colorWeekend   = "DDEBF7"
	colorBlack     = "000000"
	fontFamily     = "Calibri"
)

// WorkbookName returns the file name of the workbook for a month,
// e.g. "Monthly WorkSheet-august_2025.xlsx".
func WorkbookName(m model.Month) string {
	return fmt.Sprintf("Monthly WorkSheet-%s_%d.xlsx", m.Name(), m.Year)
}

// SheetName returns the worksheet name for a month, e.g. "AUGUST2025".
func SheetName(m model.Month) string {
	return fmt.Sprintf("%s%d", strings.ToUpper(m.Name()), m.Year)
}

// Title returns the heading of the report, e.g. "Performance Sheet - AUGUST 2025".
func Title(m model.Month) string {
	return fmt.Sprintf("Performance Sheet - %s %d", strings.ToUpper(m.Name()), m.Year)
}

// Subtitle returns the second heading line of the report.
func Subtitle(m model.Month) string {
	return fmt.Sprintf("Monthly Worksheet - %s %d", strings.ToUpper(m.Name()), m.Year)
}

type cellStyles struct {
	title, subtitle, label, value, header int
	date, task                            map[model.StyleVariant]int
}

// sheetBuilder writes cells to one sheet and keeps the first error.
type sheetBuilder struct {
	f     *excelize.File
	sheet string
	err   error
}

// cell converts a 0-based column and row to an A1 reference.
func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		panic(err)
	}
	return name
}

func (b *sheetBuilder) set(col, row int, value string, style int) {
	if b.err != nil {
		return
	}
	ref := cell(col, row)
	if b.err = b.f.SetCellStr(b.sheet, ref, value); b.err != nil {
		return
	}
	b.err = b.f.SetCellStyle(b.sheet, ref, ref, style)
}

func (b *sheetBuilder) styleRange(fromCol, toCol, row, style int) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetCellStyle(b.sheet, cell(fromCol, row), cell(toCol, row), style)
}

func (b *sheetBuilder) merge(fromCol, toCol, row int) {
	if b.err != nil {
		return
	}
	b.err = b.f.MergeCell(b.sheet, cell(fromCol, row), cell(toCol, row))
}

func (b *sheetBuilder) height(row int, points float64) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetRowHeight(b.sheet, row+1, points)
}

// RenderWorkbook builds the monthly worksheet for plan.
func RenderWorkbook(plan model.Plan, header model.Header) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := SheetName(header.Month)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newCellStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	b := &sheetBuilder{f: f, sheet: sheet}
	addTitleRows(b, header.Month, styles)
	addEmployeeInfo(b, header.Employee, styles)
	addTableHeader(b, styles)
	addPlanRows(b, plan, styles)

	if b.err == nil {
		b.err = f.SetColWidth(sheet, "A", "A", 16)
	}
	if b.err == nil {
		b.err = f.SetColWidth(sheet, "B", "J", 14)
	}
	if b.err != nil {
		f.Close()
		return nil, fmt.Errorf("render worksheet: %w", b.err)
	}
	return f, nil
}

// WriteWorkbook renders plan and saves it to path.
func WriteWorkbook(path string, plan model.Plan, header model.Header) error {
	f, err := RenderWorkbook(plan, header)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not write workbook '%s': %w", path, err)
	}
	return nil
}

func addTitleRows(b *sheetBuilder, m model.Month, s cellStyles) {
	b.height(titleRow, 26)
	b.set(0, titleRow, Title(m), s.title)
	b.styleRange(0, lastCol, titleRow, s.title)
	b.merge(0, lastCol, titleRow)

	b.height(subtitleRow, 20)
	b.set(0, subtitleRow, Subtitle(m), s.subtitle)
	b.styleRange(0, lastCol, subtitleRow, s.subtitle)
	b.merge(0, lastCol, subtitleRow)
}

func addEmployeeInfo(b *sheetBuilder, e model.Employee, s cellStyles) {
	pairs := [2][2][2]string{
		{{"Employee Name", e.Name}, {"Project Name", e.Project}},
		{{"Manager Name", e.Manager}, {"Employee ID", e.ID}},
	}
	for i, row := range pairs {
		r := infoRow + i
		b.height(r, 18)
		for j, pair := range row {
			col := j * 3
			b.set(col, r, pair[0], s.label)
			b.set(col+1, r, pair[1], s.value)
		}
	}
}

func addTableHeader(b *sheetBuilder, s cellStyles) {
	b.height(headerRow, 20)
	b.set(0, headerRow, "Date", s.header)
	b.set(1, headerRow, "Task", s.header)
	b.styleRange(1, lastCol, headerRow, s.header)
	b.merge(1, lastCol, headerRow)
}

func addPlanRows(b *sheetBuilder, plan model.Plan, s cellStyles) {
	for _, row := range plan {
		r := firstPlanRow + row.Index
		b.height(r, 28)
		cols := row.Columns()
		b.set(0, r, row.DateKey, s.date[cols[0]])
		b.set(1, r, row.TaskText, s.task[cols[1]])
		for col := 2; col < len(cols); col++ {
			b.styleRange(col, col, r, s.task[cols[col]])
		}
		b.merge(1, row.SpanWidth, r)
	}
}

func newCellStyles(f *excelize.File) (cellStyles, error) {
	s := cellStyles{
		date: make(map[model.StyleVariant]int),
		task: make(map[model.StyleVariant]int),
	}

	defs := []struct {
		dst *int
		def styleDef
	}{
		{&s.title, styleDef{bg: colorBlueDark, bold: true, size: 16, align: "center", fg: colorWhite}},
		{&s.subtitle, styleDef{bg: colorGreyMed, bold: true, size: 12, align: "center", fg: colorBlack}},
		{&s.label, styleDef{bg: colorGreyMed, bold: true, size: 11, align: "left", fg: colorBlack}},
		{&s.value, styleDef{bg: colorWhite, size: 11, align: "left", fg: colorBlack}},
		{&s.header, styleDef{bg: colorBlueDark, bold: true, size: 11, align: "center", fg: colorWhite}},
	}
	for _, d := range defs {
		id, err := d.def.register(f)
		if err != nil {
			return cellStyles{}, err
		}
		*d.dst = id
	}

	variants := map[model.StyleVariant]struct {
		bg       string
		boldDate bool
	}{
		model.VariantBase:      {bg: colorGreyLight},
		model.VariantAlternate: {bg: colorWhite},
		model.VariantWeekend:   {bg: colorWeekend, boldDate: true},
	}
	for v, p := range variants {
		dateID, err := styleDef{bg: p.bg, bold: p.boldDate, size: 11, align: "center", fg: colorBlack}.register(f)
		if err != nil {
			return cellStyles{}, err
		}
		taskID, err := styleDef{bg: p.bg, size: 11, align: "left", fg: colorBlack, wrap: true}.register(f)
		if err != nil {
			return cellStyles{}, err
		}
		s.date[v] = dateID
		s.task[v] = taskID
	}
	return s, nil
}

type styleDef struct {
	bg, fg, align string
	bold, wrap    bool
	size          float64
}

func (d styleDef) register(f *excelize.File) (int, error) {
	border := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "top", "right", "bottom"} {
		border = append(border, excelize.Border{Type: side, Color: colorBlack, Style: 1})
	}
	id, err := f.NewStyle(&excelize.Style{
		Border: border,
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{d.bg}},
		Font:   &excelize.Font{Family: fontFamily, Bold: d.bold, Size: d.size, Color: d.fg},
		Alignment: &excelize.Alignment{
			Horizontal: d.align,
			Vertical:   "center",
			WrapText:   d.wrap,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("create cell style: %w", err)
	}
	return id, nil
}
