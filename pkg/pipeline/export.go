package pipeline

import (
	"io"

	"github.com/locvowork/sheetpreview/pkg/sheetcodec"
)

const (
	// ExportSheetName is the name of the single sheet in exported workbooks.
	ExportSheetName = "SheetJS"
	// ExportFileName is the download name of exported workbooks.
	ExportFileName = "sheetjs.xlsx"
)

// ExportWorkbook wraps data in a one-sheet workbook. Empty data yields a
// workbook with one empty sheet.
func ExportWorkbook(data sheetcodec.RowData) (*sheetcodec.Workbook, error) {
	wb := sheetcodec.NewWorkbook()
	if err := sheetcodec.AppendSheet(wb, sheetcodec.RowsToSheet(data), ExportSheetName); err != nil {
		return nil, err
	}
	return wb, nil
}

// Export writes data to w as an xlsx workbook.
func Export(w io.Writer, data sheetcodec.RowData) error {
	wb, err := ExportWorkbook(data)
	if err != nil {
		return &StageError{Stage: StageExport, Source: ExportFileName, Err: err}
	}
	if err := sheetcodec.Write(wb, w, sheetcodec.FormatXLSX); err != nil {
		return &StageError{Stage: StageExport, Source: ExportFileName, Err: err}
	}
	return nil
}

// ExportFile writes data to path in the format implied by its extension.
func ExportFile(path string, data sheetcodec.RowData) error {
	wb, err := ExportWorkbook(data)
	if err != nil {
		return &StageError{Stage: StageExport, Source: path, Err: err}
	}
	if err := sheetcodec.WriteFile(wb, path); err != nil {
		return &StageError{Stage: StageExport, Source: path, Err: err}
	}
	return nil
}
