// Package dataflow builds channel pipelines: a source stage, concurrent
// transform stages and a sink.
package dataflow

import (
	"context"
	"sync"
	"time"
)

// From emits items on the returned channel and closes it.
func From(ctx context.Context, items ...interface{}) <-chan interface{} {
	out := make(chan interface{})
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case out <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Map applies fn to every message of in using the configured number of
// workers. Output order follows completion unless WithOrdered is set.
// A message whose fn fails after all retries is dropped; an error handler
// returning false stops the stage.
func Map(ctx context.Context, in <-chan interface{}, fn func(interface{}) (interface{}, error), opts ...Option) <-chan interface{} {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	jobs := make(chan sequenced)
	results := make(chan sequenced, cfg.workers)
	out := make(chan interface{}, cfg.bufferSize)

	// number the input so ordered output can be restored
	go func() {
		defer close(jobs)
		for seq := 0; ; seq++ {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case jobs <- sequenced{seq: seq, val: msg}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				result, err := cfg.call(ctx, fn, job.val)
				if err != nil && cfg.errorHandler != nil && !cfg.errorHandler(err) {
					cancel()
					return
				}
				select {
				case results <- sequenced{seq: job.seq, val: result, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(out)
		defer cancel()
		emit := func(r sequenced) bool {
			if r.err != nil {
				return true
			}
			select {
			case out <- r.val:
				return true
			case <-ctx.Done():
				return false
			}
		}

		pending := make(map[int]sequenced)
		next := 0
		for r := range results {
			if !cfg.ordered {
				if !emit(r) {
					return
				}
				continue
			}
			pending[r.seq] = r
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if !emit(p) {
					return
				}
			}
		}
	}()
	return out
}

type sequenced struct {
	seq int
	val interface{}
	err error
}

// call runs fn once plus up to maxRetries retries.
func (c *config) call(ctx context.Context, fn func(interface{}) (interface{}, error), msg interface{}) (interface{}, error) {
	result, err := fn(msg)
	for attempt := 1; err != nil && attempt <= c.maxRetries; attempt++ {
		if c.backoff != nil {
			select {
			case <-time.After(c.backoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		result, err = fn(msg)
	}
	return result, err
}

// ForEach calls fn for every message until in is closed. It stops at the
// first error fn returns or when ctx is done.
func ForEach(ctx context.Context, in <-chan interface{}, fn func(interface{}) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-in:
			if !ok {
				return nil
			}
			if err := fn(msg); err != nil {
				return err
			}
		}
	}
}
