package sheetcodec

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptyFile indicates the input contained no bytes.
	ErrEmptyFile = errors.New("empty file")
	// ErrEmptyWorkbook indicates a workbook without any sheet.
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
	// ErrUnsupportedFormat indicates a container the codec cannot read or write.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrInvalidRange indicates a malformed range or cell reference.
	ErrInvalidRange = errors.New("invalid range reference")
	// ErrDuplicateSheet indicates a sheet name already present in a workbook.
	ErrDuplicateSheet = errors.New("sheet already exists")
)

// ErrSheetNotExist is re-exported from excelize and carries the missing
// sheet name.
type ErrSheetNotExist = excelize.ErrSheetNotExist

// ParseError reports a failure to decode a file in a given format.
type ParseError struct {
	Format Format
	Name   string // source name, may be empty
	Err    error
}

func (e *ParseError) Error() string {
	format := string(e.Format)
	if format == "" {
		format = "unknown"
	}
	if e.Name != "" {
		return fmt.Sprintf("parse %s (%s): %v", e.Name, format, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
