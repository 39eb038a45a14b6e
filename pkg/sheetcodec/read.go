package sheetcodec

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// ReadOptions configures Read.
type ReadOptions struct {
	// Name is the source file name, used in error messages only.
	Name string
}

// Read decodes raw file bytes into a workbook. The format is detected from
// the content; the file name extension is not consulted.
func Read(data []byte, opts ReadOptions) (*Workbook, error) {
	format := DetectFormat(data)

	var (
		wb  *Workbook
		err error
	)
	switch format {
	case FormatUnknown:
		return nil, &ParseError{Format: format, Name: opts.Name, Err: ErrEmptyFile}
	case FormatXLS:
		return nil, &ParseError{Format: format, Name: opts.Name, Err: ErrUnsupportedFormat}
	case FormatXLSX:
		wb, err = readOOXML(data)
	case FormatHTML:
		wb, err = readHTML(data)
	default:
		wb, err = readDelimited(data)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Name: opts.Name, Err: err}
	}
	return wb, nil
}

// DetectFormat sniffs the container format from the leading bytes.
// Anything that is not a zip, an OLE2 document or an HTML table is treated
// as delimited text.
func DetectFormat(data []byte) Format {
	switch {
	case len(data) == 0:
		return FormatUnknown
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	}

	text, err := decodeText(data)
	if err != nil {
		return FormatCSV
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "<") && strings.Contains(strings.ToLower(trimmed), "<table") {
		return FormatHTML
	}
	return FormatCSV
}

func readOOXML(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := NewWorkbook()
	wb.Format = FormatXLSX
	for _, name := range f.GetSheetList() {
		sh, err := readOOXMLSheet(f, name)
		if err != nil {
			return nil, err
		}
		if err := AppendSheet(wb, sh, name); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

func readOOXMLSheet(f *excelize.File, name string) (*Sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sh := &Sheet{Name: name}
	for r, row := range rows {
		for c, raw := range row {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(name, cell)
			if err != nil {
				return nil, err
			}
			sh.set(r, c, typedValue(typ, raw))
		}
	}

	used, ok := sh.usedRange()
	if !ok {
		return sh, nil
	}
	// The declared dimension may be missing or stale; widen it to cover
	// every used cell. Without one the extent starts at A1.
	ref := Range{End: used.End}
	if dim, err := f.GetSheetDimension(name); err == nil && dim != "" {
		if declared, err := DecodeRange(dim); err == nil {
			ref = declared.Union(used)
		}
	}
	sh.Ref = ref.String()
	return sh, nil
}

func typedValue(typ excelize.CellType, raw string) interface{} {
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if v, ok := parseNumber(raw); ok {
			return v
		}
		return raw
	default:
		return raw
	}
}

// parseNumber returns int64 for integral text and float64 for decimals.
func parseNumber(s string) (interface{}, bool) {
	if !numberPattern.MatchString(s) {
		return nil, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}

// coerceText turns text cell content into a typed value the way
// spreadsheet applications do on import. Empty text is no cell at all.
func coerceText(s string) interface{} {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if v, ok := parseNumber(trimmed); ok {
		return v
	}
	switch strings.ToUpper(trimmed) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return s
}
