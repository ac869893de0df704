package api

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/labstack/gommon/log"

	"rentdash/internal/engine"
)

// ErrNotLoaded is returned while no table has been published yet.
var ErrNotLoaded = errors.New("data is still loading")

// Loader produces a fresh table, typically by reading the configured file.
type Loader func(ctx context.Context) (*engine.Table, error)

type snapshot struct {
	table      *engine.Table
	generation uint64
}

// Store holds the current table. Loads are numbered when they start; a
// finished load is only published if no newer load has been published
// before it, so the latest request wins even if an older one finishes last.
type Store struct {
	current atomic.Pointer[snapshot]
	tickets atomic.Uint64
	loader  Loader
}

func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Table returns the published table and its generation.
func (s *Store) Table() (*engine.Table, uint64, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, 0, ErrNotLoaded
	}
	return snap.table, snap.generation, nil
}

// SetData publishes t as a new generation unconditionally.
func (s *Store) SetData(t *engine.Table) uint64 {
	gen := s.tickets.Add(1)
	s.publish(gen, t)
	return gen
}

func (s *Store) publish(gen uint64, t *engine.Table) bool {
	next := &snapshot{table: t, generation: gen}
	for {
		cur := s.current.Load()
		if cur != nil && cur.generation > gen {
			return false
		}
		if s.current.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Reload runs the loader and publishes its table unless a newer load won.
func (s *Store) Reload(ctx context.Context) (uint64, error) {
	if s.loader == nil {
		return 0, errors.New("no loader configured")
	}
	gen := s.tickets.Add(1)
	t0 := time.Now()

	t, err := s.loader(ctx)
	if err != nil {
		log.Errorf("load #%d failed: %v", gen, err)
		return gen, err
	}
	if !s.publish(gen, t) {
		log.Warnf("load #%d superseded by a newer load, discarded", gen)
		return gen, nil
	}
	log.Infof("load #%d published: %d records in %v", gen, t.Len(), time.Since(t0))
	return gen, nil
}
