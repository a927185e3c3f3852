package screen

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Match is one occurrence of a search query within a row, in the
// absolute-row coordinate system where row 0 is the oldest
// scrollback line.
type Match struct {
	AbsoluteRow int
	ColStart    int
	ColEnd      int
}

// Search scans {scrollback ⧺ visible} top-to-bottom for
// case-insensitive, NFC-normalized occurrences of query. Matches
// never cross line boundaries.
func (s *Screen) Search(query string) []Match {
	if query == "" {
		return nil
	}
	q := normalizeFold(query)
	qRunes := []rune(q)

	var matches []Match
	total := s.TotalRows()
	for abs := 0; abs < total; abs++ {
		cells := s.GetRowCells(abs)
		lineRunes, colMap := normalizedLineWithColumns(cells)
		matches = append(matches, findMatches(abs, lineRunes, colMap, qRunes)...)
	}
	return matches
}

func normalizeFold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// normalizedLineWithColumns builds the NFC-folded rune sequence for a
// row, alongside a parallel slice mapping each rune back to the grid
// column it came from. Continuation cells are skipped.
func normalizedLineWithColumns(cells []Cell) ([]rune, []int) {
	var raw strings.Builder
	var rawCols []int
	for col, c := range cells {
		if c.Width == 0 {
			continue
		}
		raw.WriteRune(c.Ch)
		rawCols = append(rawCols, col)
	}
	folded := norm.NFC.String(raw.String())
	folded = strings.ToLower(folded)

	// Folding can change rune count (rare, e.g. ligature expansion);
	// in the common case it does not, so map 1:1 and fall back to the
	// raw column list's length if it does.
	runes := []rune(folded)
	cols := rawCols
	if len(cols) != len(runes) {
		cols = make([]int, len(runes))
		for i := range cols {
			if i < len(rawCols) {
				cols[i] = rawCols[i]
			} else if len(rawCols) > 0 {
				cols[i] = rawCols[len(rawCols)-1]
			}
		}
	}
	return runes, cols
}

func findMatches(abs int, line []rune, colMap []int, query []rune) []Match {
	if len(query) == 0 || len(line) < len(query) {
		return nil
	}
	var out []Match
	for i := 0; i+len(query) <= len(line); i++ {
		if runesEqual(line[i:i+len(query)], query) {
			startCol := colMap[i]
			endCol := colMap[i+len(query)-1] + 1
			out = append(out, Match{AbsoluteRow: abs, ColStart: startCol, ColEnd: endCol})
		}
	}
	return out
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}
