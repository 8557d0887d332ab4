package list

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// checkWindow asserts the window invariants against the source's current
// length.
func checkWindow(t *testing.T, v *View) {
	t.Helper()
	n := v.src.Len()
	if n == 0 {
		if v.Top() != 0 || v.Bottom() != 0 || v.Cursor() != 0 {
			t.Fatalf("empty list window = [%d, %d) cursor %d, want all zero", v.Top(), v.Bottom(), v.Cursor())
		}
		return
	}
	if v.Top() < 0 || v.Top() > v.Cursor() || v.Cursor() >= v.Bottom() || v.Bottom() > n {
		t.Fatalf("window invariant broken: top=%d cursor=%d bottom=%d len=%d", v.Top(), v.Cursor(), v.Bottom(), n)
	}
	if v.Bottom()-v.Top() > v.height {
		t.Fatalf("window [%d, %d) taller than height %d", v.Top(), v.Bottom(), v.height)
	}
}

func numberedView(n, height int) *View {
	rows := make(Strings, n)
	for i := range rows {
		rows[i] = fmt.Sprintf("row %02d", i)
	}
	return NewView(NewSource(rows), height)
}

func TestViewMoveAndScroll(t *testing.T) {
	v := numberedView(10, 4)
	checkWindow(t, v)

	// Moving within the window does not scroll.
	v.MoveDown()
	v.MoveDown()
	if v.Cursor() != 2 || v.Top() != 0 {
		t.Errorf("cursor=%d top=%d, want 2/0", v.Cursor(), v.Top())
	}

	// Leaving the window scrolls by one row.
	v.MoveDown()
	v.MoveDown()
	if v.Cursor() != 4 || v.Top() != 1 || v.Bottom() != 5 {
		t.Errorf("cursor=%d window=[%d,%d), want 4/[1,5)", v.Cursor(), v.Top(), v.Bottom())
	}
	checkWindow(t, v)

	// And back up.
	for i := 0; i < 4; i++ {
		v.MoveUp()
	}
	if v.Cursor() != 0 || v.Top() != 0 {
		t.Errorf("cursor=%d top=%d after moving back, want 0/0", v.Cursor(), v.Top())
	}
	checkWindow(t, v)
}

func TestViewMoveClampsAtEnds(t *testing.T) {
	v := numberedView(3, 4)
	v.MoveUp()
	if v.Cursor() != 0 {
		t.Errorf("MoveUp at top: cursor=%d", v.Cursor())
	}
	for i := 0; i < 10; i++ {
		v.MoveDown()
	}
	if v.Cursor() != 2 {
		t.Errorf("MoveDown past end: cursor=%d, want 2", v.Cursor())
	}
	checkWindow(t, v)
}

func TestViewPaging(t *testing.T) {
	v := numberedView(20, 5)

	// A page down shifts the window a full height; the cursor snaps to the
	// last addressable row.
	v.PageDown()
	if v.Top() != 5 || v.Bottom() != 10 || v.Cursor() != 9 {
		t.Errorf("PageDown: window=[%d,%d) cursor=%d, want [5,10)/9", v.Top(), v.Bottom(), v.Cursor())
	}
	checkWindow(t, v)

	// Near the end, paging clamps to the last row.
	for i := 0; i < 10; i++ {
		v.PageDown()
		checkWindow(t, v)
	}
	if v.Cursor() != 19 || v.Bottom() != 20 {
		t.Errorf("cursor=%d bottom=%d after paging to end, want 19/20", v.Cursor(), v.Bottom())
	}

	// Page up snaps the cursor to the new top.
	v.PageUp()
	if v.Cursor() != v.Top() {
		t.Errorf("PageUp: cursor=%d top=%d, want equal", v.Cursor(), v.Top())
	}
	checkWindow(t, v)

	for i := 0; i < 10; i++ {
		v.PageUp()
		checkWindow(t, v)
	}
	if v.Cursor() != 0 || v.Top() != 0 {
		t.Errorf("cursor=%d top=%d after paging to start, want 0/0", v.Cursor(), v.Top())
	}
}

func TestViewJumpTo(t *testing.T) {
	v := numberedView(30, 5)

	v.JumpTo(12)
	if v.Cursor() != 12 {
		t.Errorf("cursor=%d, want 12", v.Cursor())
	}
	checkWindow(t, v)

	v.JumpTo(2)
	if v.Cursor() != 2 || v.Top() != 2 {
		t.Errorf("cursor=%d top=%d, want 2/2", v.Cursor(), v.Top())
	}
	checkWindow(t, v)

	// Out-of-range targets are ignored.
	v.JumpTo(99)
	v.JumpTo(-1)
	if v.Cursor() != 2 {
		t.Errorf("cursor=%d after ignored jumps, want 2", v.Cursor())
	}
}

func TestViewShortAndEmptyLists(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		t.Run(fmt.Sprintf("len%d", n), func(t *testing.T) {
			v := numberedView(n, 5)
			checkWindow(t, v)
			ops := []func(){v.MoveUp, v.MoveDown, v.PageUp, v.PageDown, func() { v.JumpTo(0) }}
			for _, op := range ops {
				op()
				checkWindow(t, v)
			}
		})
	}
}

func TestViewHorizontalScroll(t *testing.T) {
	v := NewView(NewSource(Strings{"abcdef"}), 3)

	v.ScrollLeft()
	if v.XOffset() != 0 {
		t.Errorf("ScrollLeft at origin: xOffset=%d", v.XOffset())
	}
	v.ScrollRight()
	v.ScrollRight()
	lines, err := v.Lines(3)
	if err != nil {
		t.Fatal(err)
	}
	if got := lines[0].Spans[0].Text; got != "cde" {
		t.Errorf("visible text = %q, want cde", got)
	}
	v.ScrollLeft()
	if v.XOffset() != 1 {
		t.Errorf("xOffset=%d, want 1", v.XOffset())
	}
}

func TestViewHighlight(t *testing.T) {
	v := NewView(NewSource(Strings{
		"plain row",
		"a needle here",
		"nothing",
		"needle needle",
		"last",
	}), 5)

	count, err := v.Highlight("needle")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Highlight count = %d, want 2", count)
	}
	if v.Cursor() != 1 {
		t.Errorf("cursor=%d after highlight, want first match 1", v.Cursor())
	}

	v.NextMatch()
	if v.Cursor() != 3 {
		t.Errorf("cursor=%d after NextMatch, want 3", v.Cursor())
	}

	// No wrap-around in either direction.
	v.NextMatch()
	if v.Cursor() != 3 {
		t.Errorf("cursor=%d, NextMatch at last match must not wrap", v.Cursor())
	}
	v.PrevMatch()
	if v.Cursor() != 1 {
		t.Errorf("cursor=%d after PrevMatch, want 1", v.Cursor())
	}
	v.PrevMatch()
	if v.Cursor() != 1 {
		t.Errorf("cursor=%d, PrevMatch at first match must not wrap", v.Cursor())
	}
}

func TestViewHighlightNoMatches(t *testing.T) {
	v := NewView(NewSource(Strings{"a", "b"}), 2)
	v.MoveDown()

	count, err := v.Highlight("zzz")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if v.Highlighted() {
		t.Error("view highlighted after zero-match pattern")
	}
	if v.Cursor() != 1 {
		t.Errorf("cursor moved to %d on zero-match highlight", v.Cursor())
	}
}

func TestViewHighlightClearedByFilter(t *testing.T) {
	src := NewSource(Strings{"needle one", "two", "needle three"})
	v := NewView(src, 3)
	if _, err := v.Highlight("needle"); err != nil {
		t.Fatal(err)
	}
	if !v.Highlighted() {
		t.Fatal("highlight not active")
	}

	if err := src.Filter("needle"); err != nil {
		t.Fatal(err)
	}
	if v.Highlighted() {
		t.Error("highlight survived a filter change")
	}
	checkWindow(t, v)

	src.Unfilter()
	checkWindow(t, v)
}

func TestViewFilterShrinksWindow(t *testing.T) {
	src := NewSource(Strings{"aa", "ab", "ba", "bb", "ca"})
	v := NewView(src, 3)
	v.JumpTo(4)

	if err := src.Filter("b"); err != nil {
		t.Fatal(err)
	}
	checkWindow(t, v)
	if v.Cursor() >= src.Len() {
		t.Errorf("cursor=%d beyond filtered len %d", v.Cursor(), src.Len())
	}
}

func TestViewLinesSpans(t *testing.T) {
	v := NewView(NewSource(Strings{"xxneedlexx", "clean"}), 2)
	if _, err := v.Highlight("needle"); err != nil {
		t.Fatal(err)
	}

	lines, err := v.Lines(20)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}

	want := []Span{{Text: "xx"}, {Text: "needle", Match: true}, {Text: "xx"}}
	if diff := cmp.Diff(want, lines[0].Spans); diff != "" {
		t.Errorf("highlighted spans (-want +got):\n%s", diff)
	}
	if !lines[0].Cursor {
		t.Error("cursor flag not set on the cursor row")
	}
	if diff := cmp.Diff([]Span{{Text: "clean"}}, lines[1].Spans); diff != "" {
		t.Errorf("plain spans (-want +got):\n%s", diff)
	}
}

func TestViewLinesTruncatesToWidth(t *testing.T) {
	v := NewView(NewSource(Strings{"0123456789"}), 1)
	lines, err := v.Lines(4)
	if err != nil {
		t.Fatal(err)
	}
	if got := lines[0].Spans[0].Text; got != "0123" {
		t.Errorf("text = %q, want 0123", got)
	}
}

func TestViewHandleKey(t *testing.T) {
	v := numberedView(10, 4)

	if !v.HandleKey("j") {
		t.Error("j not consumed")
	}
	if v.Cursor() != 1 {
		t.Errorf("cursor=%d after j, want 1", v.Cursor())
	}
	if !v.HandleKey("up") {
		t.Error("up not consumed")
	}
	if v.Cursor() != 0 {
		t.Errorf("cursor=%d after up, want 0", v.Cursor())
	}

	// Match keys are free for screens while no highlight is active.
	if v.HandleKey("n") || v.HandleKey("p") {
		t.Error("match keys consumed without a highlight")
	}
	if v.HandleKey("x") {
		t.Error("unknown key consumed")
	}

	if _, err := v.Highlight("row"); err != nil {
		t.Fatal(err)
	}
	if !v.HandleKey("n") {
		t.Error("n not consumed with highlight active")
	}
}

func TestViewSetHeight(t *testing.T) {
	v := numberedView(10, 6)
	v.JumpTo(5)

	v.SetHeight(3)
	checkWindow(t, v)
	if v.Cursor() != 5 {
		t.Errorf("cursor=%d after resize, want 5", v.Cursor())
	}

	v.SetHeight(8)
	checkWindow(t, v)
}
