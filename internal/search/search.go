package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"spyglass/internal/store"
)

// DefaultLimit is the number of results returned when no limit is given.
const DefaultLimit = 100

// MinQueryLen is the shortest query, in characters, that is matched at all.
const MinQueryLen = 2

// Score components.
const (
	exactBonus     = 1000
	prefixBonus    = 500
	boundaryBonus  = 300
	directoryBonus = 200
	projectsBonus  = 100
	maxNameBonus   = 50
)

const projectsSegment = "/projects/"

type scored struct {
	score int
	entry store.Entry
}

// Search ranks the entries of g whose name contains query, ignoring case,
// and returns at most limit of them, best first. Equal scores keep
// generation order. limit <= 0 means DefaultLimit.
func Search(g *store.Generation, query string, limit int) []store.Entry {
	if utf8.RuneCountInString(query) < MinQueryLen || g == nil {
		return []store.Entry{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := newQuery(query)
	var hits []scored
	for i, name := range g.Lower {
		if !strings.Contains(name, q.lower) {
			continue
		}
		e := g.Entries[i]
		hits = append(hits, scored{score: q.score(name, e), entry: e})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]store.Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

// Score returns the rank score of e for query, or -1 when e's name does not
// contain query.
func Score(query string, e store.Entry) int {
	q := newQuery(query)
	name := strings.ToLower(e.Name)
	if !strings.Contains(name, q.lower) {
		return -1
	}
	return q.score(name, e)
}

type query struct {
	lower      string
	dash       string
	underscore string
}

func newQuery(s string) query {
	lower := strings.ToLower(s)
	return query{
		lower:      lower,
		dash:       "-" + lower,
		underscore: "_" + lower,
	}
}

// score assumes nameLower already contains the query.
func (q query) score(nameLower string, e store.Entry) int {
	score := 0
	switch {
	case nameLower == q.lower:
		score += exactBonus
	case strings.HasPrefix(nameLower, q.lower):
		score += prefixBonus
	case strings.Contains(nameLower, q.dash) || strings.Contains(nameLower, q.underscore):
		score += boundaryBonus
	}

	if e.IsDirectory {
		score += directoryBonus
	}

	score += maxNameBonus - min(utf8.RuneCountInString(e.Name), maxNameBonus)

	if strings.Contains(e.Path, projectsSegment) {
		score += projectsBonus
	}
	return score
}
