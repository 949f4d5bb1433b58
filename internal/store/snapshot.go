package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SnapshotVersion is the layout version written by Encode.
const SnapshotVersion = 1

// ErrUnsupportedVersion is returned when a snapshot was written with a
// layout this build does not understand.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

type snapshot struct {
	Version    int       `json:"version"`
	Generation string    `json:"generation"`
	CreatedAt  time.Time `json:"created_at"`
	Entries    []Entry   `json:"entries"`
}

// Encode serializes a whole generation.
func Encode(g *Generation) ([]byte, error) {
	entries := g.Entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(snapshot{
		Version:    SnapshotVersion,
		Generation: g.ID,
		CreatedAt:  g.BuiltAt.UTC(),
		Entries:    entries,
	})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot into a new generation. A bare JSON array of
// entries is read as the unversioned legacy layout.
func Decode(data []byte) (*Generation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("decode snapshot: empty")
	}

	if trimmed[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode legacy snapshot: %w", err)
		}
		return NewGeneration(entries), nil
	}

	var s snapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}

	g := NewGeneration(s.Entries)
	if s.Generation != "" {
		g.ID = s.Generation
	}
	if !s.CreatedAt.IsZero() {
		g.BuiltAt = s.CreatedAt
	}
	return g, nil
}
