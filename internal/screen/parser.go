package screen

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

type parseMode int

const (
	modeGround parseMode = iota
	modeEscape
	modeCSI
	modeOSC
)

// parseState holds the byte-level parser's working state across
// calls to Write: which mode it is in and whatever partial
// parameters or string it has accumulated for the escape sequence in
// progress.
type parseState struct {
	mode parseMode

	csiPrivate bool
	csiParams  []int
	csiCur     string
	csiHasCur  bool

	oscBuf strings.Builder

	utf8Buf []byte
}

// Write feeds raw PTY output bytes through the parser, mutating the
// grid, cursor, and side-channel state as a byte-accurate xterm
// client would.
func (s *Screen) Write(data []byte) {
	for _, b := range data {
		s.step(b)
	}
}

func (s *Screen) step(b byte) {
	switch s.ps.mode {
	case modeGround:
		s.stepGround(b)
	case modeEscape:
		s.stepEscape(b)
	case modeCSI:
		s.stepCSI(b)
	case modeOSC:
		s.stepOSC(b)
	}
}

func (s *Screen) stepGround(b byte) {
	switch b {
	case 0x1b: // ESC
		s.ps.mode = modeEscape
	case '\a': // BEL
		s.pending = append(s.pending, NotificationEvent{Kind: NotificationBell})
	case '\b':
		if s.cursor.Col > 0 {
			s.cursor.Col--
		}
	case '\t':
		next := (s.cursor.Col/8 + 1) * 8
		if next > s.cols-1 {
			next = s.cols - 1
		}
		s.cursor.Col = next
	case '\r':
		s.cursor.Col = 0
	case '\n':
		s.lineFeed()
	default:
		// Printable bytes are UTF-8: collect a multi-byte sequence
		// until it is complete, then print the decoded rune.
		s.ps.utf8Buf = append(s.ps.utf8Buf, b)
		if !utf8.FullRune(s.ps.utf8Buf) {
			return
		}
		r, size := utf8.DecodeRune(s.ps.utf8Buf)
		rest := s.ps.utf8Buf[size:]
		s.ps.utf8Buf = nil
		s.putChar(r)
		for _, c := range rest {
			s.step(c)
		}
	}
}

func (s *Screen) stepEscape(b byte) {
	switch b {
	case '[':
		s.resetCSI()
		s.ps.mode = modeCSI
	case ']':
		s.ps.oscBuf.Reset()
		s.ps.mode = modeOSC
	case '7': // DECSC
		s.decscSaved = savedCursorState{pos: s.cursor, attrs: s.attrs, valid: true}
		s.ps.mode = modeGround
	case '8': // DECRC
		if s.decscSaved.valid {
			s.cursor = s.decscSaved.pos
			s.attrs = s.decscSaved.attrs
		}
		s.ps.mode = modeGround
	case 'D': // IND
		s.lineFeed()
		s.ps.mode = modeGround
	case 'M': // RI
		s.reverseLineFeed()
		s.ps.mode = modeGround
	case 'E': // NEL
		s.cursor.Col = 0
		s.lineFeed()
		s.ps.mode = modeGround
	default:
		s.ps.mode = modeGround
	}
}

func (s *Screen) resetCSI() {
	s.ps.csiPrivate = false
	s.ps.csiParams = nil
	s.ps.csiCur = ""
	s.ps.csiHasCur = false
}

func (s *Screen) stepCSI(b byte) {
	switch {
	case b == '?':
		s.ps.csiPrivate = true
	case b >= '0' && b <= '9':
		s.ps.csiCur += string(b)
		s.ps.csiHasCur = true
	case b == ';':
		s.ps.csiParams = append(s.ps.csiParams, parseParam(s.ps.csiCur))
		s.ps.csiCur = ""
		s.ps.csiHasCur = false
	case b >= 0x40 && b <= 0x7e:
		if s.ps.csiHasCur || len(s.ps.csiParams) == 0 {
			s.ps.csiParams = append(s.ps.csiParams, parseParam(s.ps.csiCur))
		}
		s.dispatchCSI(b, s.ps.csiParams, s.ps.csiPrivate)
		s.ps.mode = modeGround
	default:
		// unsupported intermediate byte; ignore and keep collecting
	}
}

func parseParam(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func (s *Screen) stepOSC(b byte) {
	if b == 0x07 || b == 0x1b {
		s.dispatchOSC(s.ps.oscBuf.String())
		s.ps.mode = modeGround
		return
	}
	s.ps.oscBuf.WriteByte(b)
}

func param(params []int, idx, def int) int {
	if idx >= len(params) {
		return def
	}
	if params[idx] == 0 {
		return def
	}
	return params[idx]
}

func rawParam(params []int, idx, def int) int {
	if idx >= len(params) {
		return def
	}
	return params[idx]
}

func (s *Screen) dispatchCSI(final byte, params []int, private bool) {
	switch final {
	case 'H', 'f':
		row := param(params, 0, 1) - 1
		col := param(params, 1, 1) - 1
		s.cursor = s.clampCursor(row, col)
	case 'A':
		s.cursor.Row -= param(params, 0, 1)
		s.clampCursorInPlace()
	case 'B':
		s.cursor.Row += param(params, 0, 1)
		s.clampCursorInPlace()
	case 'C':
		s.cursor.Col += param(params, 0, 1)
		s.clampCursorInPlace()
	case 'D':
		s.cursor.Col -= param(params, 0, 1)
		s.clampCursorInPlace()
	case 'G':
		s.cursor.Col = param(params, 0, 1) - 1
		s.clampCursorInPlace()
	case 'd':
		s.cursor.Row = param(params, 0, 1) - 1
		s.clampCursorInPlace()
	case 's':
		s.scpSaved = savedCursorState{pos: s.cursor, valid: true}
	case 'u':
		if s.scpSaved.valid {
			s.cursor = s.scpSaved.pos
		}
	case 'L':
		s.insertLines(param(params, 0, 1))
	case 'M':
		s.deleteLines(param(params, 0, 1))
	case '@':
		s.insertChars(param(params, 0, 1))
	case 'P':
		s.deleteChars(param(params, 0, 1))
	case 'X':
		s.eraseChars(param(params, 0, 1))
	case 'K':
		s.eraseLine(rawParam(params, 0, 0))
	case 'J':
		s.eraseDisplay(rawParam(params, 0, 0))
	case 'r':
		top := param(params, 0, 1) - 1
		bottom := param(params, 1, s.rows) - 1
		s.setScrollRegion(top, bottom)
	case 'S':
		s.scrollUp(param(params, 0, 1))
	case 'T':
		s.scrollDown(param(params, 0, 1))
	case 'm':
		s.applySGR(params)
	case 'n':
		if rawParam(params, 0, 0) == 6 {
			s.dsrResponse = []byte("\x1b[" + strconv.Itoa(s.cursor.Row+1) + ";" + strconv.Itoa(s.cursor.Col+1) + "R")
		}
	case 'h':
		s.setModes(params, private, true)
	case 'l':
		s.setModes(params, private, false)
	}
}

func (s *Screen) clampCursor(row, col int) CursorPos {
	if row < 0 {
		row = 0
	}
	if row > s.rows-1 {
		row = s.rows - 1
	}
	if col < 0 {
		col = 0
	}
	if col > s.cols-1 {
		col = s.cols - 1
	}
	return CursorPos{Row: row, Col: col}
}

func (s *Screen) clampCursorInPlace() {
	s.cursor = s.clampCursor(s.cursor.Row, s.cursor.Col)
}

func (s *Screen) insertLines(n int) {
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	savedTop := s.scrollTop
	s.scrollTop = s.cursor.Row
	s.scrollDown(n)
	s.scrollTop = savedTop
}

func (s *Screen) deleteLines(n int) {
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	savedTop := s.scrollTop
	s.scrollTop = s.cursor.Row
	s.scrollUp(n)
	s.scrollTop = savedTop
}

func (s *Screen) insertChars(n int) {
	g := s.grid()
	row := s.cursor.Row
	for c := s.cols - 1; c >= s.cursor.Col+n; c-- {
		g[row*s.cols+c] = g[row*s.cols+c-n]
	}
	for c := s.cursor.Col; c < s.cursor.Col+n && c < s.cols; c++ {
		g[row*s.cols+c] = blankCell
	}
}

func (s *Screen) deleteChars(n int) {
	g := s.grid()
	row := s.cursor.Row
	for c := s.cursor.Col; c < s.cols-n; c++ {
		g[row*s.cols+c] = g[row*s.cols+c+n]
	}
	for c := s.cols - n; c < s.cols; c++ {
		if c >= 0 {
			g[row*s.cols+c] = blankCell
		}
	}
}

func (s *Screen) eraseChars(n int) {
	row := s.cursor.Row
	to := s.cursor.Col + n
	if to > s.cols {
		to = s.cols
	}
	s.clearRow(row, s.cursor.Col, to)
}

func (s *Screen) eraseLine(mode int) {
	row := s.cursor.Row
	switch mode {
	case 0:
		s.clearRow(row, s.cursor.Col, s.cols)
	case 1:
		s.clearRow(row, 0, s.cursor.Col+1)
	case 2:
		s.clearRow(row, 0, s.cols)
	}
}

func (s *Screen) eraseDisplay(mode int) {
	switch mode {
	case 0:
		s.clearRow(s.cursor.Row, s.cursor.Col, s.cols)
		for r := s.cursor.Row + 1; r < s.rows; r++ {
			s.clearRow(r, 0, s.cols)
		}
	case 1:
		for r := 0; r < s.cursor.Row; r++ {
			s.clearRow(r, 0, s.cols)
		}
		s.clearRow(s.cursor.Row, 0, s.cursor.Col+1)
	case 2:
		for r := 0; r < s.rows; r++ {
			s.clearRow(r, 0, s.cols)
		}
	}
}

func (s *Screen) putChar(r rune) {
	w := runeWidth(r)
	if w == 0 {
		w = 1
	}
	if s.cursor.Col+w > s.cols {
		if s.decawm {
			s.cursor.Col = 0
			s.lineFeed()
		} else {
			s.cursor.Col = s.cols - w
		}
	}

	g := s.grid()
	row := s.cursor.Row
	col := s.cursor.Col

	// Clear both halves of any wide glyph being overwritten so a
	// continuation cell is never left dangling.
	s.clearWideAt(row, col)
	if w == 2 && col+1 < s.cols {
		s.clearWideAt(row, col+1)
	}

	g[row*s.cols+col] = Cell{Ch: r, Width: w, Attrs: s.attrs}
	if w == 2 && col+1 < s.cols {
		g[row*s.cols+col+1] = Cell{Ch: 0, Width: 0, Attrs: s.attrs}
	}

	s.cursor.Col += w
	if s.cursor.Col >= s.cols {
		if s.decawm {
			s.cursor.Col = 0
			s.lineFeed()
		} else {
			s.cursor.Col = s.cols - 1
		}
	}
}

// clearWideAt blanks the cell at (row,col), and its partner half if
// it is part of a wide glyph pair, so writes never split one.
func (s *Screen) clearWideAt(row, col int) {
	g := s.grid()
	cell := g[row*s.cols+col]
	if cell.Width == 2 && col+1 < s.cols {
		g[row*s.cols+col+1] = blankCell
	} else if cell.Width == 0 && col > 0 {
		g[row*s.cols+col-1] = blankCell
	}
	g[row*s.cols+col] = blankCell
}

func (s *Screen) setModes(params []int, private, set bool) {
	for _, p := range params {
		if !private {
			continue
		}
		switch p {
		case 1:
			s.decckm = set
		case 7:
			s.decawm = set
		case 25:
			s.cursorVisible = set
		case 2004:
			s.bracketedPaste = set
		case 47, 1047:
			s.setAltScreen(set, p == 1047)
		case 1048:
			if set {
				s.altSaved = s.cursor
			} else {
				s.cursor = s.altSaved
			}
		case 1049:
			if set {
				s.altSaved = s.cursor
				s.altSavedTop, s.altSavedBottom = s.scrollTop, s.scrollBottom
				s.setAltScreen(true, true)
				s.cursor = CursorPos{}
			} else {
				s.setAltScreen(false, true)
				s.cursor = s.altSaved
				s.scrollTop, s.scrollBottom = s.altSavedTop, s.altSavedBottom
			}
		}
	}
}

// setAltScreen switches between primary and alternate buffers. When
// entering, the alternate buffer is cleared; the scroll region resets
// to full screen either way.
func (s *Screen) setAltScreen(enable, clearOnEnter bool) {
	if enable == s.usingAlt {
		return
	}
	s.usingAlt = enable
	if enable && clearOnEnter {
		for i := range s.alt {
			s.alt[i] = blankCell
		}
	}
	s.scrollTop, s.scrollBottom = 0, s.rows-1
}

func (s *Screen) applySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			s.attrs = Attrs{}
		case p == 1:
			s.attrs.Bold = true
		case p == 2:
			s.attrs.Dim = true
		case p == 3:
			s.attrs.Italic = true
		case p == 4:
			s.attrs.Underline = true
		case p == 7:
			s.attrs.Reverse = true
		case p == 8:
			s.attrs.Hidden = true
		case p == 9:
			s.attrs.Strikethrough = true
		case p == 22:
			s.attrs.Bold, s.attrs.Dim = false, false
		case p == 23:
			s.attrs.Italic = false
		case p == 24:
			s.attrs.Underline = false
		case p == 27:
			s.attrs.Reverse = false
		case p == 28:
			s.attrs.Hidden = false
		case p == 29:
			s.attrs.Strikethrough = false
		case p >= 30 && p <= 37:
			s.attrs.Fg = Indexed(uint8(p - 30))
		case p == 38:
			n := s.applyExtendedColor(params, i)
			if n > 0 {
				i += n
				continue
			}
		case p == 39:
			s.attrs.Fg = DefaultColor
		case p >= 40 && p <= 47:
			s.attrs.Bg = Indexed(uint8(p - 40))
		case p == 48:
			n := s.applyExtendedColorBg(params, i)
			if n > 0 {
				i += n
				continue
			}
		case p == 49:
			s.attrs.Bg = DefaultColor
		case p >= 90 && p <= 97:
			s.attrs.Fg = Indexed(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			s.attrs.Bg = Indexed(uint8(p - 100 + 8))
		}
		i++
	}
}

// applyExtendedColor parses "38;5;n" or "38;2;r;g;b" starting at
// params[i], returning how many extra params (beyond the 38 itself)
// it consumed.
func (s *Screen) applyExtendedColor(params []int, i int) int {
	if i+1 >= len(params) {
		return 0
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			s.attrs.Fg = Indexed(uint8(params[i+2]))
			return 2
		}
	case 2:
		if i+4 < len(params) {
			s.attrs.Fg = RGB(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4]))
			return 4
		}
	}
	return 0
}

func (s *Screen) applyExtendedColorBg(params []int, i int) int {
	if i+1 >= len(params) {
		return 0
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			s.attrs.Bg = Indexed(uint8(params[i+2]))
			return 2
		}
	case 2:
		if i+4 < len(params) {
			s.attrs.Bg = RGB(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4]))
			return 4
		}
	}
	return 0
}

func (s *Screen) dispatchOSC(payload string) {
	parts := strings.SplitN(payload, ";", 2)
	if len(parts) != 2 {
		return
	}
	code, rest := parts[0], parts[1]
	switch code {
	case "0", "2":
		s.title = rest
	case "7":
		s.cwd = decodeFileURI(rest)
	case "9":
		s.pending = append(s.pending, NotificationEvent{Kind: NotificationOsc9, Text: rest})
	case "777":
		fields := strings.SplitN(rest, ";", 3)
		if len(fields) == 3 && fields[0] == "notify" {
			s.pending = append(s.pending, NotificationEvent{Kind: NotificationOsc777, Title: fields[1], Body: fields[2]})
		}
	}
}

// decodeFileURI turns an OSC 7 "file://host/path" payload into a
// plain, percent-decoded filesystem path.
func decodeFileURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	if u.Scheme != "file" {
		return uri
	}
	if u.Path == "" {
		return uri
	}
	return u.Path
}
