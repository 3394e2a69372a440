// Package xlsx provides typed access to .xlsx workbooks on top of excelize.
package xlsx

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klytics/officeskills/internal/skillerr"
)

// Sheet is one worksheet's grid. Rows are padded to MaxCol columns.
type Sheet struct {
	Name   string
	Rows   [][]Value
	MaxRow int
	MaxCol int
}

// Workbook is an open .xlsx file.
type Workbook struct {
	Path string

	f        *excelize.File
	date1904 bool
	dateFmt  map[int]Kind
}

// Match is a search hit: a 1-based row number and the row's strings.
type Match struct {
	Row    int
	Values []string
}

var rawOpts = excelize.Options{RawCellValue: true}

// Open opens the workbook at path. The caller must Close it.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, skillerr.IOFailure(fmt.Errorf("could not open %s: %w", path, err))
	}

	wb := &Workbook{
		Path:    path,
		f:       f,
		dateFmt: make(map[int]Kind),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

// Close releases the workbook.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

// SheetNames returns sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	return wb.f.GetSheetList()
}

// ResolveSheet returns name when the workbook has a sheet with exactly that
// name, or the active sheet's name when name is empty.
func (wb *Workbook) ResolveSheet(name string) (string, error) {
	sheets := wb.f.GetSheetList()
	if name == "" {
		active := wb.f.GetSheetName(wb.f.GetActiveSheetIndex())
		if active != "" {
			return active, nil
		}
		if len(sheets) == 0 {
			return "", skillerr.InvalidReference("workbook has no worksheets")
		}
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == name {
			return s, nil
		}
	}
	return "", skillerr.InvalidReference("Worksheet %s does not exist.", name)
}

// ReadSheet loads the full grid of the named sheet.
func (wb *Workbook) ReadSheet(name string) (*Sheet, error) {
	raw, err := wb.f.GetRows(name, rawOpts)
	if err != nil {
		return nil, skillerr.IOFailure(fmt.Errorf("could not read sheet %q: %w", name, err))
	}

	s := &Sheet{Name: name, MaxRow: len(raw)}
	for _, row := range raw {
		if len(row) > s.MaxCol {
			s.MaxCol = len(row)
		}
	}

	s.Rows = make([][]Value, len(raw))
	for r, row := range raw {
		vals := make([]Value, s.MaxCol)
		for c, cell := range row {
			v, err := wb.typedValue(name, c+1, r+1, cell)
			if err != nil {
				return nil, err
			}
			vals[c] = v
		}
		s.Rows[r] = vals
	}
	return s, nil
}

// ReadRange returns the rectangle described by ref ("A1:B10" or "B3").
// Cells beyond the populated area are None.
func (wb *Workbook) ReadRange(name, ref string) ([][]Value, error) {
	c1, r1, c2, r2, err := ParseRange(ref)
	if err != nil {
		return nil, err
	}
	s, err := wb.ReadSheet(name)
	if err != nil {
		return nil, err
	}

	out := make([][]Value, 0, r2-r1+1)
	for r := r1; r <= r2; r++ {
		row := make([]Value, 0, c2-c1+1)
		for c := c1; c <= c2; c++ {
			row = append(row, s.At(r, c))
		}
		out = append(out, row)
	}
	return out, nil
}

// CellValue returns the value at an A1 coordinate.
func (wb *Workbook) CellValue(name, cell string) (Value, error) {
	col, row, err := ParseCell(cell)
	if err != nil {
		return Value{}, err
	}
	ref, _ := excelize.CoordinatesToCellName(col, row)
	raw, err := wb.f.GetCellValue(name, ref, rawOpts)
	if err != nil {
		return Value{}, skillerr.IOFailure(fmt.Errorf("could not read cell %s: %w", cell, err))
	}
	return wb.typedValue(name, col, row, raw)
}

// typedValue classifies a raw cell string using the cell's stored type and
// number format.
func (wb *Workbook) typedValue(sheet string, col, row int, raw string) (Value, error) {
	if raw == "" {
		return None(), nil
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Value{}, skillerr.InvalidReference("%s", err.Error())
	}
	typ, err := wb.f.GetCellType(sheet, ref)
	if err != nil {
		return Value{}, skillerr.IOFailure(err)
	}

	switch typ {
	case excelize.CellTypeBool:
		return Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return Text(raw), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return DateTime(t), nil
		}
		return Text(raw), nil
	}

	num, ok := parseStoredNumber(raw)
	if !ok {
		return Text(raw), nil
	}
	if !wb.isDateFormatted(sheet, ref) {
		return num, nil
	}

	serial := num.f
	if num.kind == KindInt {
		serial = float64(num.i)
	}
	t, err := excelize.ExcelDateToTime(serial, wb.date1904)
	if err != nil {
		return num, nil
	}
	t = t.Round(time.Second)
	if serial >= 0 && serial < 1 {
		return TimeOfDay(t), nil
	}
	return DateTime(t), nil
}

func (wb *Workbook) isDateFormatted(sheet, ref string) bool {
	styleID, err := wb.f.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return false
	}
	if k, ok := wb.dateFmt[styleID]; ok {
		return k == KindDateTime
	}

	kind := KindNone
	if style, err := wb.f.GetStyle(styleID); err == nil {
		if style.CustomNumFmt != nil {
			if IsDateFormat(*style.CustomNumFmt) {
				kind = KindDateTime
			}
		} else if isBuiltinDateFormat(style.NumFmt) {
			kind = KindDateTime
		}
	}
	wb.dateFmt[styleID] = kind
	return kind == KindDateTime
}

func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

var (
	fmtStripPattern = regexp.MustCompile(`"[^"]*"|\\.|\[(?:[^hms\]][^\]]*)\]`)
	fmtDatePattern  = regexp.MustCompile(`[dmhysDMHYS]`)
)

// IsDateFormat reports whether a custom number format code renders dates or
// times. Quoted literals, escapes and bracketed sections other than elapsed
// time markers are ignored.
func IsDateFormat(code string) bool {
	if code == "" || strings.EqualFold(code, "General") || code == "@" {
		return false
	}
	stripped := fmtStripPattern.ReplaceAllString(code, "")
	return fmtDatePattern.MatchString(stripped)
}

func parseISODate(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCell converts an A1 coordinate to 1-based column and row numbers.
// Absolute markers ($A$1) are accepted.
func ParseCell(cell string) (int, int, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(cell, "$", ""))
	if err != nil {
		return 0, 0, skillerr.InvalidReference("%q is not a valid cell coordinate", cell)
	}
	return col, row, nil
}

// ParseRange converts "A1:B10" (or a single "A1") into normalized corner
// coordinates col1, row1, col2, row2.
func ParseRange(ref string) (int, int, int, int, error) {
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return 0, 0, 0, 0, skillerr.InvalidReference("%q is not a valid range", ref)
	}
	c1, r1, err := ParseCell(parts[0])
	if err != nil {
		return 0, 0, 0, 0, skillerr.InvalidReference("%q is not a valid range", ref)
	}
	c2, r2 := c1, r1
	if len(parts) == 2 {
		if c2, r2, err = ParseCell(parts[1]); err != nil {
			return 0, 0, 0, 0, skillerr.InvalidReference("%q is not a valid range", ref)
		}
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return c1, r1, c2, r2, nil
}

// At returns the value at 1-based row and column, or None outside the grid.
func (s *Sheet) At(row, col int) Value {
	if row < 1 || row > len(s.Rows) {
		return None()
	}
	r := s.Rows[row-1]
	if col < 1 || col > len(r) {
		return None()
	}
	return r[col-1]
}

// StringRows renders every row with None as "".
func (s *Sheet) StringRows() [][]string {
	return Strings(s.Rows)
}

// Headers returns row 1 rendered as strings, or nil for an empty sheet.
func (s *Sheet) Headers() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return RowStrings(s.Rows[0])
}

// Search returns every row after the header containing query in any cell,
// compared case-insensitively.
func (s *Sheet) Search(query string) []Match {
	lower := cases.Lower(language.Und)
	q := lower.String(query)
	var matches []Match
	for i := 1; i < len(s.Rows); i++ {
		row := RowStrings(s.Rows[i])
		for _, cell := range row {
			if strings.Contains(lower.String(cell), q) {
				matches = append(matches, Match{Row: i + 1, Values: row})
				break
			}
		}
	}
	return matches
}

// Strings renders a grid with None as "".
func Strings(rows [][]Value) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = RowStrings(row)
	}
	return out
}

// RowStrings renders one row with None as "".
func RowStrings(row []Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = v.String()
	}
	return out
}
