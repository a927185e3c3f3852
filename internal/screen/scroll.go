package screen

// scrollUp shifts the lines within [scrollTop, scrollBottom] up by n,
// filling the bottom n lines with blanks. When the scroll region
// spans the whole screen and the primary buffer is active, evicted
// lines are appended to the scrollback ring (bounded, FIFO).
// Alternate-screen activity never touches scrollback.
func (s *Screen) scrollUp(n int) {
	if n <= 0 {
		return
	}
	top, bottom := s.scrollTop, s.scrollBottom
	g := s.grid()
	fullScreen := top == 0 && bottom == s.rows-1

	for i := 0; i < n; i++ {
		if fullScreen && !s.usingAlt {
			evicted := make([]Cell, s.cols)
			copy(evicted, g[top*s.cols:(top+1)*s.cols])
			s.pushScrollback(evicted)
		}
		for r := top; r < bottom; r++ {
			copy(g[r*s.cols:(r+1)*s.cols], g[(r+1)*s.cols:(r+2)*s.cols])
		}
		for c := 0; c < s.cols; c++ {
			g[bottom*s.cols+c] = blankCell
		}
	}
}

// scrollDown shifts lines within [scrollTop, scrollBottom] down by n,
// filling the top n lines with blanks. Never interacts with
// scrollback.
func (s *Screen) scrollDown(n int) {
	if n <= 0 {
		return
	}
	top, bottom := s.scrollTop, s.scrollBottom
	g := s.grid()

	for i := 0; i < n; i++ {
		for r := bottom; r > top; r-- {
			copy(g[r*s.cols:(r+1)*s.cols], g[(r-1)*s.cols:r*s.cols])
		}
		for c := 0; c < s.cols; c++ {
			g[top*s.cols+c] = blankCell
		}
	}
}

func (s *Screen) pushScrollback(line []Cell) {
	s.scrollback = append(s.scrollback, line)
	limit := s.scrollbackLimit
	if limit <= 0 {
		limit = DefaultScrollbackLimit
	}
	if len(s.scrollback) > limit {
		s.scrollback = s.scrollback[len(s.scrollback)-limit:]
	}
}

// setScrollRegion installs [top,bottom] (0-indexed, inclusive) as the
// scroll region, clamping to a single-row region at minimum and to
// the full screen if the request would be invalid.
func (s *Screen) setScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom > s.rows-1 {
		bottom = s.rows - 1
	}
	if top > bottom {
		top, bottom = 0, s.rows-1
	}
	s.scrollTop, s.scrollBottom = top, bottom
}

// lineFeed advances the cursor one row, scrolling the region if
// already at scrollBottom.
func (s *Screen) lineFeed() {
	if s.cursor.Row == s.scrollBottom {
		s.scrollUp(1)
	} else if s.cursor.Row < s.rows-1 {
		s.cursor.Row++
	}
}

// reverseLineFeed (RI) moves the cursor up one row, scrolling the
// region down if already at scrollTop.
func (s *Screen) reverseLineFeed() {
	if s.cursor.Row == s.scrollTop {
		s.scrollDown(1)
	} else if s.cursor.Row > 0 {
		s.cursor.Row--
	}
}
