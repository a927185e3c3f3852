// Package switcher implements the fuzzy session switcher: scoring
// the engine's (id, name, cwd, notes) tuples against a query.
package switcher

import (
	"github.com/sahilm/fuzzy"

	"github.com/climux/climux/internal/session"
)

// Field mirrors engine.SearchableField without importing the engine
// package, keeping the switcher a leaf that scores whatever tuple it
// is handed.
type Field struct {
	ID    session.ID
	Name  string
	Cwd   string
	Notes string
}

// Result is one ranked switcher entry.
type Result struct {
	Field Field
	// MatchedIndexes are the rune positions in the searched string
	// that matched the query, for highlighting.
	MatchedIndexes []int
}

// searchable adapts a Field for fuzzy.Source by concatenating the
// fields a user is likely to search by.
type searchable []Field

func (s searchable) String(i int) string {
	f := s[i]
	return f.Name + " " + f.Cwd + " " + f.Notes
}

func (s searchable) Len() int { return len(s) }

// Filter scores fields against query and returns matches ordered
// best-first. An empty query returns every field in input order with
// no highlighting.
func Filter(query string, fields []Field) []Result {
	if query == "" {
		out := make([]Result, len(fields))
		for i, f := range fields {
			out[i] = Result{Field: f}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, searchable(fields))
	out := make([]Result, len(matches))
	for i, match := range matches {
		out[i] = Result{
			Field:          fields[match.Index],
			MatchedIndexes: match.MatchedIndexes,
		}
	}
	return out
}
