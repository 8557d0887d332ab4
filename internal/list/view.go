package list

import "strings"

// Span is a run of text within a rendered line. Match spans carry highlight
// pattern occurrences.
type Span struct {
	Text  string
	Match bool
}

// Line is one visible row, ready for the caller to style.
type Line struct {
	Row    int
	Cursor bool
	Spans  []Span
}

// View maintains a sliding window over a Source: a cursor, the visible
// [top, bottom) range, horizontal scroll, and an optional highlight pattern.
//
// The window invariants hold after every operation:
// 0 <= top <= cursor < bottom (when non-empty), bottom <= length, and
// bottom-top never exceeds the view height.
type View struct {
	src    *Source
	height int

	top     int
	bottom  int
	cursor  int
	xOffset int

	hlActive  bool
	hlPattern string
	hlMatches map[int][]int // row -> rune offsets of occurrences
	srcGen    uint64
}

// NewView binds a view of the given height to a source.
func NewView(src *Source, height int) *View {
	v := &View{height: 1}
	v.SetHeight(height)
	v.SetSource(src)
	return v
}

// SetSource rebinds the view, resetting window, cursor, scroll and highlight.
func (v *View) SetSource(src *Source) {
	v.src = src
	v.srcGen = src.Generation()
	v.top, v.cursor, v.xOffset = 0, 0, 0
	v.bottom = min(v.height, src.Len())
	v.ClearHighlight()
}

// SetHeight resizes the window, re-clamping around the cursor.
func (v *View) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	v.height = h
	if v.src != nil {
		v.clamp()
	}
}

func (v *View) Cursor() int  { v.sync(); return v.cursor }
func (v *View) Top() int     { v.sync(); return v.top }
func (v *View) Bottom() int  { v.sync(); return v.bottom }
func (v *View) XOffset() int { return v.xOffset }

// Highlighted reports whether a highlight pattern is active.
func (v *View) Highlighted() bool {
	v.sync()
	return v.hlActive
}

// sync notices source shape changes (filter toggles) and resets dependent
// state: the highlight is stale and the window may exceed the new length.
func (v *View) sync() {
	if gen := v.src.Generation(); gen != v.srcGen {
		v.srcGen = gen
		v.ClearHighlight()
		v.clamp()
	}
}

// clamp restores the window invariants after a length or height change.
func (v *View) clamp() {
	n := v.src.Len()
	if n == 0 {
		v.top, v.bottom, v.cursor = 0, 0, 0
		return
	}
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.top > v.cursor {
		v.top = v.cursor
	}
	v.bottom = min(v.top+v.height, n)
	if v.cursor >= v.bottom {
		v.top = v.cursor + 1 - v.height
		if v.top < 0 {
			v.top = 0
		}
		v.bottom = min(v.top+v.height, n)
	}
}

// MoveUp moves the cursor one row up, scrolling when it would leave the
// window. At the first row it is a no-op.
func (v *View) MoveUp() {
	v.sync()
	if v.cursor == 0 {
		return
	}
	v.cursor--
	if v.cursor < v.top {
		v.top--
		v.bottom--
	}
}

// MoveDown moves the cursor one row down, scrolling when it would leave the
// window. At the last row it is a no-op.
func (v *View) MoveDown() {
	v.sync()
	if v.cursor >= v.src.Len()-1 {
		return
	}
	v.cursor++
	if v.cursor >= v.bottom {
		v.top++
		v.bottom++
	}
}

// PageUp shifts the window one view height up, snapping the cursor to the
// new top.
func (v *View) PageUp() {
	v.sync()
	n := v.src.Len()
	if n == 0 {
		return
	}
	v.top = max(v.top-v.height, 0)
	v.bottom = min(v.top+v.height, n)
	v.cursor = v.top
}

// PageDown shifts the window one view height down, snapping the cursor to
// the last addressable row.
func (v *View) PageDown() {
	v.sync()
	n := v.src.Len()
	if n == 0 {
		return
	}
	v.bottom = min(v.bottom+v.height, n)
	v.top = max(v.bottom-v.height, 0)
	v.cursor = v.bottom - 1
}

// JumpTo moves the cursor to row, recomputing the window to contain it with
// minimal movement; rows outside the list are ignored.
func (v *View) JumpTo(row int) {
	v.sync()
	n := v.src.Len()
	if row < 0 || row >= n {
		return
	}
	switch {
	case row < v.top:
		v.top = row
		v.bottom = min(v.top+v.height, n)
	case row >= v.bottom:
		v.bottom = min(row+v.height, n)
		v.top = max(v.bottom-v.height, 0)
	}
	v.cursor = row
}

// ScrollLeft shifts the horizontal window one column left.
func (v *View) ScrollLeft() {
	v.sync()
	if v.xOffset > 0 {
		v.xOffset--
	}
}

// ScrollRight shifts the horizontal window one column right.
func (v *View) ScrollRight() {
	v.sync()
	v.xOffset++
}

// Highlight records every occurrence of pattern across the source and jumps
// to the first match at or after the cursor. It returns the number of rows
// with at least one match; zero leaves the view unchanged.
func (v *View) Highlight(pattern string) (int, error) {
	v.sync()
	v.ClearHighlight()
	if pattern == "" {
		return 0, nil
	}

	matches := make(map[int][]int)
	n := v.src.Len()
	for y := 0; y < n; y++ {
		row, err := v.src.Row(y)
		if err != nil {
			return 0, err
		}
		if offs := findAll(row, pattern); len(offs) > 0 {
			matches[y] = offs
		}
	}
	if len(matches) == 0 {
		return 0, nil
	}

	v.hlActive = true
	v.hlPattern = pattern
	v.hlMatches = matches
	for y := v.cursor; y < n; y++ {
		if _, ok := matches[y]; ok {
			v.JumpTo(y)
			break
		}
	}
	return len(matches), nil
}

// ClearHighlight drops the highlight pattern and its recorded matches.
func (v *View) ClearHighlight() {
	v.hlActive = false
	v.hlPattern = ""
	v.hlMatches = nil
}

// NextMatch jumps to the closest highlighted row after the cursor. Without a
// later match it is a no-op: match navigation does not wrap.
func (v *View) NextMatch() {
	v.sync()
	if !v.hlActive {
		return
	}
	for y := v.cursor + 1; y < v.src.Len(); y++ {
		if _, ok := v.hlMatches[y]; ok {
			v.JumpTo(y)
			return
		}
	}
}

// PrevMatch jumps to the closest highlighted row before the cursor, without
// wrapping.
func (v *View) PrevMatch() {
	v.sync()
	if !v.hlActive {
		return
	}
	for y := v.cursor - 1; y >= 0; y-- {
		if _, ok := v.hlMatches[y]; ok {
			v.JumpTo(y)
			return
		}
	}
}

// HandleKey applies the shared list key bindings and reports whether the key
// was consumed. Match navigation keys are only claimed while a highlight is
// active.
func (v *View) HandleKey(key string) bool {
	switch key {
	case "up", "k":
		v.MoveUp()
	case "down", "j":
		v.MoveDown()
	case "pgup":
		v.PageUp()
	case "pgdown":
		v.PageDown()
	case "left", "h":
		v.ScrollLeft()
	case "right", "l":
		v.ScrollRight()
	case "n", "N":
		if !v.Highlighted() {
			return false
		}
		v.NextMatch()
	case "p", "P":
		if !v.Highlighted() {
			return false
		}
		v.PrevMatch()
	default:
		return false
	}
	return true
}

// Lines renders the visible rows, cut to width columns starting at the
// horizontal offset. With a highlight active each line is split into spans so
// the caller can style pattern occurrences.
func (v *View) Lines(width int) ([]Line, error) {
	v.sync()
	n := v.src.Len()
	end := min(v.bottom, n)

	lines := make([]Line, 0, max(end-v.top, 0))
	for y := v.top; y < end; y++ {
		row, err := v.src.Row(y)
		if err != nil {
			return nil, err
		}
		line := Line{Row: y, Cursor: y == v.cursor}
		if v.hlActive {
			line.Spans = v.highlightSpans(row, y, width)
		} else {
			line.Spans = []Span{{Text: cut(row, v.xOffset, width)}}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// highlightSpans walks the visible columns of row y, emitting a match span at
// each recorded occurrence and plain runs between them. Columns covered by a
// match advance by the pattern length, so overlapping occurrences render as
// one run each.
func (v *View) highlightSpans(row string, y int, width int) []Span {
	runes := []rune(row)
	patLen := len([]rune(v.hlPattern))
	offsets := v.hlMatches[y]

	var spans []Span
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	x := 0
	for x < width {
		col := x + v.xOffset
		if col >= len(runes) {
			break
		}
		if containsOffset(offsets, col) {
			flush()
			spans = append(spans, Span{Text: cut(row, col, min(patLen, width-x)), Match: true})
			x += patLen
			continue
		}
		plain.WriteRune(runes[col])
		x++
	}
	flush()
	return spans
}

func containsOffset(offsets []int, col int) bool {
	for _, o := range offsets {
		if o == col {
			return true
		}
	}
	return false
}

// findAll returns the rune offsets of every occurrence of pattern in s,
// including overlapping ones.
func findAll(s, pattern string) []int {
	runes := []rune(s)
	pat := []rune(pattern)
	if len(pat) == 0 || len(pat) > len(runes) {
		return nil
	}
	var offs []int
	for i := 0; i+len(pat) <= len(runes); i++ {
		if string(runes[i:i+len(pat)]) == pattern {
			offs = append(offs, i)
		}
	}
	return offs
}

// cut returns up to width runes of s starting at rune offset from.
func cut(s string, from, width int) string {
	runes := []rune(s)
	if from >= len(runes) || width <= 0 {
		return ""
	}
	to := min(from+width, len(runes))
	return string(runes[from:to])
}
