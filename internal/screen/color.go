package screen

// ColorKind selects how a Color's value is interpreted.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is a terminal foreground or background color, in one of the
// three forms SGR can express.
type Color struct {
	Kind  ColorKind
	Index uint8
	R, G, B uint8
}

// DefaultColor is the unset, "use the default pen" color.
var DefaultColor = Color{Kind: ColorDefault}

// Indexed builds a Color selecting one of the 256 palette entries.
func Indexed(i uint8) Color {
	return Color{Kind: ColorIndexed, Index: i}
}

// RGB builds a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}
