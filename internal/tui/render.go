package tui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/climux/climux/internal/screen"
)

// renderGrid renders rows of a Screen's visible grid as styled text,
// one run of equally-attributed cells at a time to keep escape
// sequences to a minimum.
func renderGrid(rows [][]screen.Cell) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

func renderRow(row []screen.Cell) string {
	var b strings.Builder
	var run []rune
	var runAttrs screen.Attrs
	hasRun := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		b.WriteString(styleFor(runAttrs).Render(string(run)))
		run = run[:0]
	}

	for _, c := range row {
		if c.Width == 0 {
			continue
		}
		if !hasRun || c.Attrs != runAttrs {
			flush()
			runAttrs = c.Attrs
			hasRun = true
		}
		ch := c.Ch
		if ch == 0 {
			ch = ' '
		}
		run = append(run, ch)
	}
	flush()
	return b.String()
}

func styleFor(a screen.Attrs) lipgloss.Style {
	st := lipgloss.NewStyle()
	if a.Hidden {
		return st
	}
	fg, bg := a.Fg, a.Bg
	if a.Reverse {
		fg, bg = bg, fg
	}
	if fg.Kind != screen.ColorDefault {
		st = st.Foreground(colorOf(fg))
	}
	if bg.Kind != screen.ColorDefault {
		st = st.Background(colorOf(bg))
	}
	if a.Bold {
		st = st.Bold(true)
	}
	if a.Dim {
		st = st.Faint(true)
	}
	if a.Italic {
		st = st.Italic(true)
	}
	if a.Underline {
		st = st.Underline(true)
	}
	if a.Strikethrough {
		st = st.Strikethrough(true)
	}
	return st
}

func colorOf(c screen.Color) color.Color {
	if c.Kind == screen.ColorRGB {
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	}
	return lipgloss.Color(strconv.Itoa(int(c.Index)))
}
