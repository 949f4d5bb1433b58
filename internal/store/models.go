package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RootMarker is the ParentFolder of entries whose containing directory
// has no basename, i.e. the filesystem root.
const RootMarker = "~"

// Entry is one cataloged filesystem object.
type Entry struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	IsDirectory  bool   `json:"is_directory"`
	ParentFolder string `json:"parent_folder"`
}

// Generation is one complete set of entries produced by a build or a load.
// Lower[i] is always strings.ToLower(Entries[i].Name). A generation is not
// modified after it has been published.
type Generation struct {
	ID      string
	BuiltAt time.Time
	Entries []Entry
	Lower   []string
}

// NewGeneration builds a generation from entries, computing the lowercase
// name cache.
func NewGeneration(entries []Entry) *Generation {
	lower := make([]string, len(entries))
	for i, e := range entries {
		lower[i] = strings.ToLower(e.Name)
	}
	return newGeneration(entries, lower)
}

// NewGenerationWithCache uses a lowercase cache gathered alongside entries.
// The cache is rebuilt when its length does not match.
func NewGenerationWithCache(entries []Entry, lower []string) *Generation {
	if len(lower) != len(entries) {
		return NewGeneration(entries)
	}
	return newGeneration(entries, lower)
}

func newGeneration(entries []Entry, lower []string) *Generation {
	if entries == nil {
		entries = []Entry{}
		lower = []string{}
	}
	return &Generation{
		ID:      uuid.NewString(),
		BuiltAt: time.Now(),
		Entries: entries,
		Lower:   lower,
	}
}

// Len returns the number of entries.
func (g *Generation) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Entries)
}
