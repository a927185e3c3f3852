package screen

// Attrs is the SGR display state that applies to a Cell, tracked as a
// uniform table so that every display attribute, including the
// rarely-used "hidden" conceal flag, goes through the same reset and
// copy logic as the rest.
type Attrs struct {
	Fg, Bg        Color
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Reverse       bool
	Hidden        bool
}

// Cell is one grid position. Width is 1 for an ordinary glyph, 2 for
// the leading half of a wide (East-Asian-width) glyph, and 0 for the
// trailing continuation half, which carries no glyph of its own and
// must never be rendered or counted by search.
type Cell struct {
	Ch    rune
	Width int
	Attrs
}

// blankCell is an empty, default-attributed cell used to clear and
// pad the grid.
var blankCell = Cell{Ch: ' ', Width: 1}

func newRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = blankCell
	}
	return row
}
