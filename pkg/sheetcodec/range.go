package sheetcodec

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellAddress is a zero-based cell position.
type CellAddress struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// Range is a rectangular extent, both corners inclusive.
type Range struct {
	Start CellAddress `json:"s"`
	End   CellAddress `json:"e"`
}

// DecodeCell parses an A1-style reference ("B3", "$B$3") into a zero-based
// address.
func DecodeCell(ref string) (CellAddress, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	return CellAddress{Row: row - 1, Col: col - 1}, nil
}

// EncodeCell renders a zero-based address as an A1-style reference.
func EncodeCell(addr CellAddress) string {
	name, err := excelize.CoordinatesToCellName(addr.Col+1, addr.Row+1)
	if err != nil {
		return ""
	}
	return name
}

// EncodeColumn renders a zero-based column index as its letter label:
// 0 is "A", 25 is "Z", 26 is "AA". It returns "" outside the sheet limits.
func EncodeColumn(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return ""
	}
	return name
}

// DecodeRange parses "A1:C4", a single cell "B2" or a sheet-qualified
// "'Sheet 1'!$A$1:$C$4". Corners are normalised so that Start is the
// top-left cell.
func DecodeRange(ref string) (Range, error) {
	ref = strings.TrimSpace(ref)
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	if ref == "" {
		return Range{}, fmt.Errorf("%w: empty reference", ErrInvalidRange)
	}

	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	start, err := DecodeCell(parts[0])
	if err != nil {
		return Range{}, err
	}
	end := start
	if len(parts) == 2 {
		if end, err = DecodeCell(parts[1]); err != nil {
			return Range{}, err
		}
	}

	return Range{
		Start: CellAddress{Row: min(start.Row, end.Row), Col: min(start.Col, end.Col)},
		End:   CellAddress{Row: max(start.Row, end.Row), Col: max(start.Col, end.Col)},
	}, nil
}

// String renders the range as "A1:C4", or "A1" when it covers one cell.
func (r Range) String() string {
	if r.Start == r.End {
		return EncodeCell(r.Start)
	}
	return EncodeCell(r.Start) + ":" + EncodeCell(r.End)
}

// Cols is the number of columns the range spans.
func (r Range) Cols() int { return r.End.Col - r.Start.Col + 1 }

// Rows is the number of rows the range spans.
func (r Range) Rows() int { return r.End.Row - r.Start.Row + 1 }

// Union returns the smallest range covering r and o.
func (r Range) Union(o Range) Range {
	return Range{
		Start: CellAddress{Row: min(r.Start.Row, o.Start.Row), Col: min(r.Start.Col, o.Start.Col)},
		End:   CellAddress{Row: max(r.End.Row, o.End.Row), Col: max(r.End.Col, o.End.Col)},
	}
}

// EncodeRange renders r in A1 notation.
func EncodeRange(r Range) string {
	return r.String()
}
