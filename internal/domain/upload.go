package domain

import (
	"context"
	"time"
)

// UploadRecord describes one successful ingest.
type UploadRecord struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	SheetName string    `json:"sheetName"`
	Format    string    `json:"format"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Bytes     int64     `json:"bytes"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadRepository persists the upload log.
type UploadRepository interface {
	Save(ctx context.Context, rec *UploadRecord) error
	ListRecent(ctx context.Context, limit int) ([]UploadRecord, error)
}
