// Package sheetcodec reads spreadsheet files into workbooks of typed cell
// values and writes row data back out as xlsx or delimited text.
package sheetcodec

import "fmt"

// Format identifies a spreadsheet container format.
type Format string

const (
	FormatUnknown Format = ""
	FormatXLSX    Format = "xlsx" // OOXML zip container (xlsx, xlsm, xltx)
	FormatXLS     Format = "xls"  // OLE2 compound document, legacy BIFF
	FormatHTML    Format = "html"
	FormatCSV     Format = "csv"
	FormatTXT     Format = "txt" // tab separated text
)

// RowData is a row-major grid of cell values. A value is a string, int64,
// float64, bool or nil for an empty position.
type RowData [][]interface{}

// Workbook is a named, ordered collection of sheets.
type Workbook struct {
	// SheetNames holds the sheet names in workbook order.
	SheetNames []string
	// Sheets maps sheet name to sheet.
	Sheets map[string]*Sheet
	// Format is the container format the workbook was read from.
	Format Format
}

// NewWorkbook returns an empty workbook container.
func NewWorkbook() *Workbook {
	return &Workbook{
		SheetNames: make([]string, 0),
		Sheets:     make(map[string]*Sheet),
	}
}

// AppendSheet adds sh to wb under name, after the existing sheets.
func AppendSheet(wb *Workbook, sh *Sheet, name string) error {
	if name == "" {
		return fmt.Errorf("sheet name cannot be empty")
	}
	if _, ok := wb.Sheets[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSheet, name)
	}
	if sh == nil {
		sh = &Sheet{}
	}
	sh.Name = name
	wb.SheetNames = append(wb.SheetNames, name)
	wb.Sheets[name] = sh
	return nil
}

// First returns the first sheet in workbook order.
func (wb *Workbook) First() (*Sheet, error) {
	if wb == nil || len(wb.SheetNames) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return wb.Sheet(wb.SheetNames[0])
}

// Sheet returns the sheet called name.
func (wb *Workbook) Sheet(name string) (*Sheet, error) {
	sh, ok := wb.Sheets[name]
	if !ok {
		return nil, ErrSheetNotExist{SheetName: name}
	}
	return sh, nil
}

// Sheet is one worksheet: a sparse grid of cell values plus its declared
// extent.
type Sheet struct {
	Name string
	// Ref is the declared extent ("A1:C4", "A1" for a single cell). It is
	// empty when the sheet holds no cells.
	Ref string

	// grid is indexed by absolute zero-based row and column.
	grid [][]interface{}
}

// Cell returns the value at the zero-based position, or nil.
func (s *Sheet) Cell(row, col int) interface{} {
	if row < 0 || row >= len(s.grid) {
		return nil
	}
	r := s.grid[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

func (s *Sheet) set(row, col int, v interface{}) {
	for len(s.grid) <= row {
		s.grid = append(s.grid, nil)
	}
	r := s.grid[row]
	for len(r) <= col {
		r = append(r, nil)
	}
	r[col] = v
	s.grid[row] = r
}

// usedRange returns the bounding box of the non-nil cells.
func (s *Sheet) usedRange() (Range, bool) {
	used := Range{Start: CellAddress{Row: -1, Col: -1}, End: CellAddress{Row: -1, Col: -1}}
	found := false
	for r, row := range s.grid {
		for c, v := range row {
			if v == nil {
				continue
			}
			if !found {
				used = Range{Start: CellAddress{Row: r, Col: c}, End: CellAddress{Row: r, Col: c}}
				found = true
				continue
			}
			used = used.Union(Range{Start: CellAddress{Row: r, Col: c}, End: CellAddress{Row: r, Col: c}})
		}
	}
	return used, found
}

// anchorRef sets Ref to the range from A1 to the last used cell, which is
// what text and HTML sources declare.
func (s *Sheet) anchorRef() {
	used, ok := s.usedRange()
	if !ok {
		s.Ref = ""
		return
	}
	used.Start = CellAddress{}
	s.Ref = used.String()
}
