package repository

import (
	"context"
	"sync"
	"time"

	"github.com/locvowork/sheetpreview/internal/domain"
)

type memoryUploadRepository struct {
	mu       sync.Mutex
	records  []domain.UploadRecord
	capacity int
	nextID   int64
}

// NewMemoryUploadRepository keeps the last capacity records in memory.
func NewMemoryUploadRepository(capacity int) domain.UploadRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &memoryUploadRepository{capacity: capacity}
}

func (r *memoryUploadRepository) Save(ctx context.Context, rec *domain.UploadRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec.ID = r.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	r.records = append(r.records, *rec)
	if len(r.records) > r.capacity {
		r.records = r.records[len(r.records)-r.capacity:]
	}
	return nil
}

func (r *memoryUploadRepository) ListRecent(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.UploadRecord, 0, n)
	for i := len(r.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
