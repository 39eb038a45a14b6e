package googlecloud

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/datastore"
	"github.com/locvowork/sheetpreview/internal/logger"
)

// ErrNoProject is returned by NewClient when no project ID is configured.
var ErrNoProject = errors.New("datastore project ID cannot be empty")

// Client keeps the upload log in Cloud Datastore.
type Client struct {
	ds    *datastore.Client
	retry RetryConfig
}

// NewClient connects to projectID, or to DATASTORE_EMULATOR_HOST when set.
func NewClient(ctx context.Context, projectID string) (*Client, error) {
	if projectID == "" {
		return nil, ErrNoProject
	}
	if host := os.Getenv("DATASTORE_EMULATOR_HOST"); host != "" {
		logger.InfoLog(ctx, "Upload log using Datastore emulator at %s", host)
	}

	ds, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("datastore client for %q: %w", projectID, err)
	}
	return &Client{ds: ds, retry: DefaultRetryConfig()}, nil
}

func (c *Client) Close() error {
	return c.ds.Close()
}
