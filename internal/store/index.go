package store

import (
	"context"
	"fmt"
	"sync/atomic"
)

// SnapshotKey is the blob key the index snapshot is saved under.
const SnapshotKey = "index"

// IndexStore owns the live generation. Readers get whole generations;
// a build publishes its result with a single pointer swap.
type IndexStore struct {
	live  atomic.Pointer[Generation]
	blobs BlobStore
}

// NewIndexStore returns an empty store persisting through blobs.
func NewIndexStore(blobs BlobStore) *IndexStore {
	s := &IndexStore{blobs: blobs}
	s.live.Store(NewGeneration(nil))
	return s
}

// Current returns the live generation. It is never nil.
func (s *IndexStore) Current() *Generation {
	return s.live.Load()
}

// Swap publishes g as the live generation.
func (s *IndexStore) Swap(g *Generation) {
	s.live.Store(g)
}

// Count returns the number of entries in the live generation.
func (s *IndexStore) Count() int {
	return s.Current().Len()
}

// Save overwrites the persisted snapshot with g.
func (s *IndexStore) Save(ctx context.Context, g *Generation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(g)
	if err != nil {
		return err
	}
	if err := s.blobs.Put(SnapshotKey, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot and makes it live. On any error the
// live generation is left as it was.
func (s *IndexStore) Load(ctx context.Context) (*Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.blobs.Get(SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	g, err := Decode(data)
	if err != nil {
		return nil, err
	}
	s.Swap(g)
	return g, nil
}

// Location describes where the snapshot is persisted.
func (s *IndexStore) Location() string {
	return s.blobs.Location(SnapshotKey)
}
