package walker

import (
	"path/filepath"
	"strings"
)

// DefaultSkipDirs are directory names that are cataloged but not searched
// into: dependency caches, build output, VCS metadata and OS bundles.
var DefaultSkipDirs = []string{
	"node_modules",
	"target",
	".git",
	"dist",
	"build",
	".next",
	"vendor",
	"__pycache__",
	".venv",
	"venv",
	".cargo",
	"Library",
	".Trash",
	"Applications",
	".cache",
	".npm",
	".yarn",
	"Caches",
}

// SkipSet matches directory basenames exactly, or by glob when a pattern
// contains glob metacharacters.
type SkipSet struct {
	names    map[string]struct{}
	patterns []string
}

// NewSkipSet builds a set from names and glob patterns. Blank entries are
// ignored.
func NewSkipSet(names ...string) SkipSet {
	s := SkipSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if strings.ContainsAny(n, "*?[") {
			if _, err := filepath.Match(n, ""); err == nil {
				s.patterns = append(s.patterns, n)
			}
			continue
		}
		s.names[n] = struct{}{}
	}
	return s
}

// Contains reports whether a directory named name must not be descended into.
func (s SkipSet) Contains(name string) bool {
	if _, ok := s.names[name]; ok {
		return true
	}
	for _, p := range s.patterns {
		if matched, _ := filepath.Match(p, name); matched {
			return true
		}
	}
	return false
}

// Len returns the number of names and patterns in the set.
func (s SkipSet) Len() int {
	return len(s.names) + len(s.patterns)
}
