package pipeline

import (
	"time"
)

// IngestOptions configures the behavior of Ingest
type IngestOptions struct {
	// RetryPolicy defines the retry behavior for reading the source
	RetryPolicy *RetryPolicy

	// SheetName selects a sheet by name
	// Default is "" (the first sheet of the workbook)
	SheetName string
}

// RetryPolicy defines the retry policy for operations
type RetryPolicy struct {
	// MaxRetries is the maximum number of retry attempts (including the initial attempt)
	// Default is 1 (no retries)
	MaxRetries int

	// Backoff is the initial backoff duration between retries
	// The actual backoff time is calculated as: Backoff * (attempt + 1)
	// Default is 0 (no backoff)
	Backoff time.Duration
}

// Option is a function that configures IngestOptions
type Option func(*IngestOptions)

// DefaultIngestOptions returns the default ingest options
func DefaultIngestOptions() IngestOptions {
	return IngestOptions{
		RetryPolicy: nil, // No retry by default
	}
}

// WithRetryPolicy configures a retry policy for reading the source
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(o *IngestOptions) {
		o.RetryPolicy = &policy
	}
}

// WithSheet selects the sheet to ingest instead of the first one
func WithSheet(name string) Option {
	return func(o *IngestOptions) {
		o.SheetName = name
	}
}

// applyOptions applies the given options to the default options
func applyOptions(opts []Option) IngestOptions {
	options := DefaultIngestOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
