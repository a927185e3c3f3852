package screen

import "golang.org/x/text/width"

// runeWidth returns the number of grid cells r occupies: 2 for a
// glyph classified East-Asian Wide or Fullwidth, 1 otherwise.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
