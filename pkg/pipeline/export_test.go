package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/locvowork/sheetpreview/pkg/sheetcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportBytes(t *testing.T, data sheetcodec.RowData) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, data))
	return buf.Bytes()
}

func TestExport_RoundTrip(t *testing.T) {
	data := sheetcodec.RowData{
		{"id", "name", "score"},
		{int64(1), "ada", 9.5},
		{int64(2), nil, true},
	}

	table, err := Ingest(context.Background(), BytesSource{FileName: ExportFileName, Data: exportBytes(t, data)})
	require.NoError(t, err)

	assert.Equal(t, ExportSheetName, table.SheetName)
	assert.Equal(t, data, table.Data)
	assert.Len(t, table.Cols, 3)
}

func TestExport_Idempotent(t *testing.T) {
	first, err := Ingest(context.Background(), BytesSource{FileName: "in.csv", Data: []byte("a,b\n1,2\n,3\n")})
	require.NoError(t, err)

	second, err := Ingest(context.Background(), BytesSource{FileName: "out.xlsx", Data: exportBytes(t, first.Data)})
	require.NoError(t, err)

	third, err := Ingest(context.Background(), BytesSource{FileName: "again.xlsx", Data: exportBytes(t, second.Data)})
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, second.Data, third.Data)
	assert.Equal(t, second.Cols, third.Cols)
}

func TestExport_Empty(t *testing.T) {
	for name, data := range map[string]sheetcodec.RowData{"Empty": {}, "Nil": nil} {
		t.Run(name, func(t *testing.T) {
			table, err := Ingest(context.Background(), BytesSource{FileName: ExportFileName, Data: exportBytes(t, data)})
			require.NoError(t, err)
			assert.Empty(t, table.Data)
			assert.Empty(t, table.Cols)
			assert.Equal(t, ExportSheetName, table.SheetName)
		})
	}
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	data := sheetcodec.RowData{{"a", "b"}, {int64(1), int64(2)}}

	for _, name := range []string{ExportFileName, "out.csv"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportFile(path, data))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		table, err := Ingest(context.Background(), BytesSource{FileName: name, Data: raw})
		require.NoError(t, err)
		assert.Equal(t, data, table.Data, name)
	}

	err := ExportFile(filepath.Join(dir, "out.pdf"), data)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageExport, stageErr.Stage)
	assert.ErrorIs(t, err, sheetcodec.ErrUnsupportedFormat)
}
