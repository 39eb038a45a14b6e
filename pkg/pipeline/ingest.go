// Package pipeline turns raw spreadsheet files into tables of row data and
// turns row data back into a downloadable workbook.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/locvowork/sheetpreview/pkg/sheetcodec"
)

// Table is the result of one ingest: the first sheet's rows and the column
// descriptors derived from its extent.
type Table struct {
	Data      sheetcodec.RowData `json:"data"`
	Cols      []ColumnDescriptor `json:"cols"`
	SheetName string             `json:"sheetName"`
	Source    string             `json:"source"`
	Format    sheetcodec.Format  `json:"format"`
	Size      int64              `json:"size"`
}

// Ingest reads src, parses it and extracts the selected sheet as a Table.
// Every failure is a *StageError naming the stage that failed.
func Ingest(ctx context.Context, src FileSource, opts ...Option) (*Table, error) {
	options := applyOptions(opts)
	name := src.Name()

	raw, err := readWithRetry(ctx, src, options.RetryPolicy)
	if err != nil {
		return nil, &StageError{Stage: StageRead, Source: name, Err: err}
	}

	wb, err := sheetcodec.Read(raw, sheetcodec.ReadOptions{Name: name})
	if err != nil {
		return nil, &StageError{Stage: StageParse, Source: name, Err: err}
	}

	var sheet *sheetcodec.Sheet
	if options.SheetName != "" {
		sheet, err = wb.Sheet(options.SheetName)
	} else {
		sheet, err = wb.First()
	}
	if err != nil {
		return nil, &StageError{Stage: StageSelect, Source: name, Err: err}
	}

	cols, err := DeriveColumns(sheet.Ref)
	if err != nil {
		return nil, &StageError{Stage: StageColumns, Source: name, Err: err}
	}

	return &Table{
		Data:      sheetcodec.SheetToRows(sheet),
		Cols:      cols,
		SheetName: sheet.Name,
		Source:    name,
		Format:    wb.Format,
		Size:      int64(len(raw)),
	}, nil
}

// readWithRetry executes readSource with retry logic if configured
func readWithRetry(ctx context.Context, src FileSource, policy *RetryPolicy) ([]byte, error) {
	if policy == nil || policy.MaxRetries <= 1 {
		return readSource(ctx, src)
	}

	var lastErr error
	for attempt := 0; attempt < policy.MaxRetries; attempt++ {
		data, err := readSource(ctx, src)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		lastErr = err

		if attempt == policy.MaxRetries-1 {
			break
		}
		if policy.Backoff > 0 {
			backoff := time.Duration(attempt+1) * policy.Backoff
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
