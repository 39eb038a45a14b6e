package pipeline

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// FileSource is a raw spreadsheet file handed to Ingest. A source is read
// once per ingest.
type FileSource interface {
	// Name is the file name as the user supplied it.
	Name() string
	// Open returns a fresh reader over the file content.
	Open() (io.ReadCloser, error)
}

// PathSource reads a file from the local filesystem.
type PathSource string

func (p PathSource) Name() string { return filepath.Base(string(p)) }

func (p PathSource) Open() (io.ReadCloser, error) { return os.Open(string(p)) }

// BytesSource is an in-memory file.
type BytesSource struct {
	FileName string
	Data     []byte
}

func (b BytesSource) Name() string { return b.FileName }

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// MultipartSource adapts an uploaded form file.
type MultipartSource struct {
	Header *multipart.FileHeader
}

func (m MultipartSource) Name() string { return m.Header.Filename }

func (m MultipartSource) Open() (io.ReadCloser, error) { return m.Header.Open() }

// readSource drains src into memory. A cancelled ctx abandons the read and
// closes the underlying reader.
func readSource(ctx context.Context, src FileSource) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(rc)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.data, res.err
	}
}
