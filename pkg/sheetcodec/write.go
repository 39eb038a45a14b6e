package sheetcodec

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FormatFromExtension maps a file name to the format Write produces for it.
func FormatFromExtension(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	case ".txt", ".tsv":
		return FormatTXT
	default:
		return FormatUnknown
	}
}

// Write serialises wb to w. Delimited formats carry the first sheet only.
func Write(wb *Workbook, w io.Writer, format Format) error {
	if wb == nil || len(wb.SheetNames) == 0 {
		return ErrEmptyWorkbook
	}
	switch format {
	case FormatXLSX:
		return writeXLSX(wb, w)
	case FormatCSV:
		return writeDelimited(wb, w, ',')
	case FormatTXT:
		return writeDelimited(wb, w, '\t')
	default:
		return fmt.Errorf("%w: cannot write %q", ErrUnsupportedFormat, format)
	}
}

// WriteFile writes wb to path in the format implied by its extension.
func WriteFile(wb *Workbook, path string) error {
	format := FormatFromExtension(path)
	if format == FormatUnknown {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(wb, out, format); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// writeXLSX streams every sheet through an excelize StreamWriter.
func writeXLSX(wb *Workbook, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, name := range wb.SheetNames {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}

		sw, err := f.NewStreamWriter(name)
		if err != nil {
			return err
		}
		if err := streamSheet(sw, wb.Sheets[name]); err != nil {
			return fmt.Errorf("write sheet %q: %w", name, err)
		}
		if err := sw.Flush(); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func streamSheet(sw *excelize.StreamWriter, sh *Sheet) error {
	if sh == nil {
		return nil
	}
	for r, row := range sh.grid {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDelimited(wb *Workbook, w io.Writer, delim rune) error {
	sh, err := wb.First()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = delim
	for _, row := range SheetToRows(sh) {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = FormatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatValue renders a cell value as text: empty for nil, TRUE or FALSE for
// booleans and the shortest exact form for numbers.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}
