package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/locvowork/sheetpreview/internal/domain"
	"github.com/locvowork/sheetpreview/internal/logger"
	"github.com/locvowork/sheetpreview/internal/state"
	"github.com/locvowork/sheetpreview/pkg/pipeline"
	"github.com/locvowork/sheetpreview/pkg/preview"
)

// ErrUnknownPreviewKind is returned for a preview kind without a renderer.
var ErrUnknownPreviewKind = errors.New("unknown preview kind")

type SheetService interface {
	// Ingest parses src and makes it the current table.
	Ingest(ctx context.Context, src pipeline.FileSource) (state.Snapshot, error)
	Current(ctx context.Context) (state.Snapshot, error)
	// Export writes the current table as sheetjs.xlsx content.
	Export(ctx context.Context, w io.Writer) error
	Preview(ctx context.Context, w io.Writer, kind preview.Kind) error
	Uploads(ctx context.Context, limit int) ([]domain.UploadRecord, error)
}

type sheetService struct {
	store   *state.Store
	uploads domain.UploadRepository
	layout  preview.Layout
	opts    []pipeline.Option
}

func NewSheetService(store *state.Store, uploads domain.UploadRepository, layout preview.Layout, opts ...pipeline.Option) SheetService {
	return &sheetService{
		store:   store,
		uploads: uploads,
		layout:  layout,
		opts:    opts,
	}
}

func (s *sheetService) Ingest(ctx context.Context, src pipeline.FileSource) (state.Snapshot, error) {
	table, err := pipeline.Ingest(ctx, src, s.opts...)
	if err != nil {
		return state.Snapshot{}, err
	}

	snap, err := s.store.Replace(ctx, table)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("failed to update state: %w", err)
	}
	logger.InfoLog(ctx, "ingested %s: sheet %q, %d rows, %d cols (version %d)",
		table.Source, table.SheetName, len(table.Data), len(table.Cols), snap.Version)

	s.recordUpload(ctx, table)
	return snap, nil
}

// recordUpload logs the ingest. A failing upload log does not fail the ingest.
func (s *sheetService) recordUpload(ctx context.Context, table *pipeline.Table) {
	if s.uploads == nil {
		return
	}
	rec := &domain.UploadRecord{
		FileName:  table.Source,
		SheetName: table.SheetName,
		Format:    string(table.Format),
		Rows:      len(table.Data),
		Cols:      len(table.Cols),
		Bytes:     table.Size,
	}
	if err := s.uploads.Save(ctx, rec); err != nil {
		logger.WarnLog(ctx, "failed to record upload of %s: %v", table.Source, err)
	}
}

func (s *sheetService) Current(ctx context.Context) (state.Snapshot, error) {
	return s.store.Snapshot(ctx)
}

func (s *sheetService) Export(ctx context.Context, w io.Writer) error {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	return pipeline.Export(w, snap.Data)
}

func (s *sheetService) Preview(ctx context.Context, w io.Writer, kind preview.Kind) error {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	switch kind {
	case preview.KindSnippet, "":
		return preview.RenderSnippet(w, snap.Data, s.layout)
	case preview.KindTable:
		return preview.RenderTable(w, snap.Data, snap.Cols)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreviewKind, kind)
	}
}

func (s *sheetService) Uploads(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	if s.uploads == nil {
		return []domain.UploadRecord{}, nil
	}
	return s.uploads.ListRecent(ctx, limit)
}
