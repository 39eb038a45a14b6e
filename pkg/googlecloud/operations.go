package googlecloud

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
)

const (
	KindUpload = "SheetUpload"
)

// PutUpload stores a new upload and sets its generated ID.
func (c *Client) PutUpload(ctx context.Context, upload *Upload) error {
	if upload.FileName == "" {
		return fmt.Errorf("upload file name cannot be empty: %w", ErrInvalidKey)
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now()
	}

	// IncompleteKey will auto-generate an int64 ID
	key := datastore.IncompleteKey(KindUpload, nil)

	return WithRetry(ctx, c.retry, func() error {
		newKey, err := c.ds.Put(ctx, key, upload)
		if err != nil {
			return err
		}
		upload.ID = newKey.ID
		return nil
	})
}

// GetUpload retrieves an upload by ID.
func (c *Client) GetUpload(ctx context.Context, id int64) (*Upload, error) {
	key := datastore.IDKey(KindUpload, id, nil)
	var upload Upload
	if err := c.ds.Get(ctx, key, &upload); err != nil {
		return nil, WrapDatastoreError(err)
	}
	upload.ID = id
	return &upload, nil
}

// ListRecentUploads returns at most limit uploads, newest first.
func (c *Client) ListRecentUploads(ctx context.Context, limit int) ([]Upload, error) {
	query := datastore.NewQuery(KindUpload).Order("-created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var uploads []Upload
	keys, err := c.ds.GetAll(ctx, query, &uploads)
	if err != nil {
		return nil, err
	}

	for i, key := range keys {
		uploads[i].ID = key.ID
	}

	return uploads, nil
}
