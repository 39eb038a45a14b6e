// Package state holds the current table of the session. The snapshot is owned
// by a single goroutine; callers talk to it through request messages.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/locvowork/sheetpreview/pkg/pipeline"
	"github.com/locvowork/sheetpreview/pkg/sheetcodec"
)

// ErrClosed is returned by a Store after Close.
var ErrClosed = errors.New("state store closed")

// Snapshot is the whole UI state at one point in time. It is replaced
// wholesale and never mutated in place.
type Snapshot struct {
	Data      sheetcodec.RowData          `json:"data"`
	Cols      []pipeline.ColumnDescriptor `json:"cols"`
	SheetName string                      `json:"sheetName,omitempty"`
	Source    string                      `json:"source,omitempty"`
	Format    sheetcodec.Format           `json:"format,omitempty"`
	Version   uint64                      `json:"version"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

type replaceRequest struct {
	table *pipeline.Table
	reply chan Snapshot
}

// Store serialises access to the snapshot. The zero value is not usable;
// create one with NewStore.
type Store struct {
	replaceCh chan replaceRequest
	readCh    chan chan Snapshot
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	now       func() time.Time
}

// NewStore starts the owning goroutine with an empty snapshot.
func NewStore() *Store {
	s := &Store{
		replaceCh: make(chan replaceRequest),
		readCh:    make(chan chan Snapshot),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		now:       time.Now,
	}
	go s.loop()
	return s
}

func (s *Store) loop() {
	defer close(s.done)

	current := Snapshot{
		Data: sheetcodec.RowData{},
		Cols: []pipeline.ColumnDescriptor{},
	}
	for {
		select {
		case <-s.quit:
			return
		case req := <-s.replaceCh:
			current = Snapshot{
				Data:      req.table.Data,
				Cols:      req.table.Cols,
				SheetName: req.table.SheetName,
				Source:    req.table.Source,
				Format:    req.table.Format,
				Version:   current.Version + 1,
				UpdatedAt: s.now(),
			}
			req.reply <- current
		case reply := <-s.readCh:
			reply <- current
		}
	}
}

// Replace installs table as the new snapshot and returns it. Concurrent
// replacements are applied in the order they reach the store.
func (s *Store) Replace(ctx context.Context, table *pipeline.Table) (Snapshot, error) {
	if table == nil {
		return Snapshot{}, errors.New("nil table")
	}
	req := replaceRequest{table: table, reply: make(chan Snapshot, 1)}
	select {
	case s.replaceCh <- req:
	case <-s.quit:
		return Snapshot{}, ErrClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	return <-req.reply, nil
}

// Snapshot returns the current state.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case s.readCh <- reply:
	case <-s.quit:
		return Snapshot{}, ErrClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	return <-reply, nil
}

// Close stops the owning goroutine. It is safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}
