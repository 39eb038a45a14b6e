package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/locvowork/sheetpreview/internal/domain"
	"github.com/locvowork/sheetpreview/internal/repository"
	"github.com/locvowork/sheetpreview/internal/state"
	"github.com/locvowork/sheetpreview/pkg/pipeline"
	"github.com/locvowork/sheetpreview/pkg/preview"
	"github.com/locvowork/sheetpreview/pkg/sheetcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, uploads domain.UploadRepository) SheetService {
	t.Helper()
	store := state.NewStore()
	t.Cleanup(store.Close)
	return NewSheetService(store, uploads, preview.DefaultLayout())
}

func csvSource(name, content string) pipeline.BytesSource {
	return pipeline.BytesSource{FileName: name, Data: []byte(content)}
}

// gatedSource blocks Open until release is closed.
type gatedSource struct {
	pipeline.BytesSource
	opened  chan struct{}
	release chan struct{}
}

func (g *gatedSource) Open() (io.ReadCloser, error) {
	close(g.opened)
	<-g.release
	return g.BytesSource.Open()
}

func TestSheetService_IngestAndCurrent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, repository.NewMemoryUploadRepository(10))

	snap, err := svc.Ingest(ctx, csvSource("data.csv", "a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, sheetcodec.RowData{{"a", "b"}, {int64(1), int64(2)}}, snap.Data)
	assert.Equal(t, []pipeline.ColumnDescriptor{{Name: "A", Key: 0}, {Name: "B", Key: 1}}, snap.Cols)
	assert.Equal(t, uint64(1), snap.Version)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, current)

	uploads, err := svc.Uploads(ctx, 10)
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "data.csv", uploads[0].FileName)
	assert.Equal(t, 2, uploads[0].Rows)
	assert.Equal(t, 2, uploads[0].Cols)
	assert.Equal(t, int64(8), uploads[0].Bytes)
}

func TestSheetService_FailedIngestKeepsState(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	_, err := svc.Ingest(ctx, csvSource("good.csv", "x\n"))
	require.NoError(t, err)

	_, err = svc.Ingest(ctx, csvSource("empty.xlsx", ""))
	assert.ErrorIs(t, err, sheetcodec.ErrEmptyFile)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "good.csv", current.Source)
	assert.Equal(t, sheetcodec.RowData{{"x"}}, current.Data)
}

func TestSheetService_LastCompletedIngestWins(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	slow := &gatedSource{
		BytesSource: csvSource("a.csv", "from a\n"),
		opened:      make(chan struct{}),
		release:     make(chan struct{}),
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Ingest(ctx, slow)
		done <- err
	}()
	<-slow.opened

	// B starts after A but completes first
	_, err := svc.Ingest(ctx, csvSource("b.csv", "from b\n"))
	require.NoError(t, err)

	close(slow.release)
	require.NoError(t, <-done)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.csv", current.Source)
	assert.Equal(t, sheetcodec.RowData{{"from a"}}, current.Data)
	assert.Equal(t, uint64(2), current.Version)
}

func TestSheetService_Export(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	t.Run("EmptyState", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, &buf))

		table, err := pipeline.Ingest(ctx, pipeline.BytesSource{FileName: pipeline.ExportFileName, Data: buf.Bytes()})
		require.NoError(t, err)
		assert.Empty(t, table.Data)
		assert.Equal(t, pipeline.ExportSheetName, table.SheetName)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		snap, err := svc.Ingest(ctx, csvSource("in.csv", "name,qty\nbolt,3\n"))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, svc.Export(ctx, &buf))

		again, err := svc.Ingest(ctx, pipeline.BytesSource{FileName: pipeline.ExportFileName, Data: buf.Bytes()})
		require.NoError(t, err)
		assert.Equal(t, snap.Data, again.Data)
		assert.Equal(t, snap.Cols, again.Cols)
		assert.Equal(t, pipeline.ExportSheetName, again.SheetName)
	})
}

func TestSheetService_Preview(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	_, err := svc.Ingest(ctx, csvSource("articles.csv", "1,English,訳,s1,Stand,https://example.com/a\n"))
	require.NoError(t, err)

	var snippet strings.Builder
	require.NoError(t, svc.Preview(ctx, &snippet, preview.KindSnippet))
	assert.Contains(t, snippet.String(), `<p class="doi">doi: 10.1038/s1</p>`)

	var table strings.Builder
	require.NoError(t, svc.Preview(ctx, &table, preview.KindTable))
	assert.Contains(t, table.String(), "<th>F</th>")

	err = svc.Preview(ctx, io.Discard, preview.Kind("pdf"))
	assert.True(t, errors.Is(err, ErrUnknownPreviewKind))
}

type failingUploads struct{}

func (failingUploads) Save(context.Context, *domain.UploadRecord) error {
	return errors.New("datastore unavailable")
}

func (failingUploads) ListRecent(context.Context, int) ([]domain.UploadRecord, error) {
	return nil, errors.New("datastore unavailable")
}

func TestSheetService_UploadLogFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, failingUploads{})

	snap, err := svc.Ingest(ctx, csvSource("a.csv", "1\n"))
	require.NoError(t, err)
	assert.Equal(t, sheetcodec.RowData{{int64(1)}}, snap.Data)

	_, err = svc.Uploads(ctx, 5)
	assert.Error(t, err)
}
