package repository

import (
	"context"
	"fmt"

	"github.com/locvowork/sheetpreview/internal/domain"
	"github.com/locvowork/sheetpreview/pkg/googlecloud"
)

type datastoreUploadRepository struct {
	client *googlecloud.Client
}

// NewUploadRepository stores the upload log in Cloud Datastore.
func NewUploadRepository(client *googlecloud.Client) domain.UploadRepository {
	return &datastoreUploadRepository{client: client}
}

func (r *datastoreUploadRepository) Save(ctx context.Context, rec *domain.UploadRecord) error {
	entity := toUploadEntity(rec)
	if err := r.client.PutUpload(ctx, entity); err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	rec.ID = entity.ID
	rec.CreatedAt = entity.CreatedAt
	return nil
}

func (r *datastoreUploadRepository) ListRecent(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	uploads, err := r.client.ListRecentUploads(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	out := make([]domain.UploadRecord, 0, len(uploads))
	for i := range uploads {
		out = append(out, fromUploadEntity(&uploads[i]))
	}
	return out, nil
}

func toUploadEntity(rec *domain.UploadRecord) *googlecloud.Upload {
	return &googlecloud.Upload{
		ID:        rec.ID,
		FileName:  rec.FileName,
		SheetName: rec.SheetName,
		Format:    rec.Format,
		Rows:      rec.Rows,
		Cols:      rec.Cols,
		Bytes:     rec.Bytes,
		CreatedAt: rec.CreatedAt,
	}
}

func fromUploadEntity(u *googlecloud.Upload) domain.UploadRecord {
	return domain.UploadRecord{
		ID:        u.ID,
		FileName:  u.FileName,
		SheetName: u.SheetName,
		Format:    u.Format,
		Rows:      u.Rows,
		Cols:      u.Cols,
		Bytes:     u.Bytes,
		CreatedAt: u.CreatedAt,
	}
}
