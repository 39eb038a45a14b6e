package googlecloud

import (
	"time"
)

// Upload is one ingested spreadsheet as stored in Datastore.
type Upload struct {
	ID        int64     `datastore:"-" json:"id"` // Key ID (Auto-generated int64)
	FileName  string    `datastore:"file_name" json:"file_name"`
	SheetName string    `datastore:"sheet_name" json:"sheet_name"`
	Format    string    `datastore:"format,noindex" json:"format"`
	Rows      int       `datastore:"rows,noindex" json:"rows"`
	Cols      int       `datastore:"cols,noindex" json:"cols"`
	Bytes     int64     `datastore:"bytes,noindex" json:"bytes"`
	CreatedAt time.Time `datastore:"created_at" json:"created_at"`
}
