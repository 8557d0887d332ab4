package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/wrenmail/wren/internal/list"
	"github.com/wrenmail/wren/internal/mail"
)

func TestHeaderLine(t *testing.T) {
	msg := &mail.Message{
		Subject: "lunch?",
		From:    "Alice <alice@example.com>",
		Date:    time.Date(2021, 1, 16, 12, 0, 0, 0, time.UTC),
	}

	got := headerLine(3, msg)
	if !strings.HasPrefix(got, " 3 ") {
		t.Errorf("headerLine = %q, want leading right-justified number", got)
	}
	for _, part := range []string{"16 Jan 2021", "Alice", "lunch?"} {
		if !strings.Contains(got, part) {
			t.Errorf("headerLine = %q, missing %q", got, part)
		}
	}

	msg.Multipart = true
	if got := headerLine(3, msg); !strings.HasPrefix(got, " 3a ") {
		t.Errorf("headerLine = %q, want multipart marker after the number", got)
	}
}

func TestPrettyFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice <alice@example.com>", "Alice"},
		{`"Bob Jones" <bob@example.com>`, "Bob Jones"},
		{"carol@example.com", "carol@example.c"},
		{"<dave@example.com>", "dave@example.co"},
		{"someone with a very long display name <x@y>", "someone with a "},
	}
	for _, tt := range tests {
		got := prettyFrom(tt.in)
		if len([]rune(got)) != fromWidth {
			t.Errorf("prettyFrom(%q) width = %d, want %d", tt.in, len([]rune(got)), fromWidth)
		}
		if strings.TrimRight(got, " ") != strings.TrimRight(tt.want, " ") {
			t.Errorf("prettyFrom(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrettyDateFallback(t *testing.T) {
	msg := &mail.Message{DateHeader: "totally unparseable date"}
	got := prettyDate(msg)
	if !strings.HasPrefix("totally unparseable date", got) {
		t.Errorf("prettyDate = %q, want truncated raw header", got)
	}
	if len([]rune(got)) > dateWidth {
		t.Errorf("prettyDate = %q longer than %d", got, dateWidth)
	}
}

func TestPrettySize(t *testing.T) {
	if got := prettySize(1536 * 1024); got != "1.5 MiB" {
		t.Errorf("prettySize = %q, want 1.5 MiB", got)
	}
}

func TestMailboxTail(t *testing.T) {
	if got := mailboxTail("/home/u/.thunderbird/p/Mail/INBOX"); got != "Mail/INBOX" {
		t.Errorf("mailboxTail = %q, want Mail/INBOX", got)
	}
	if got := mailboxTail(""); got != "(no mailbox)" {
		t.Errorf("mailboxTail(\"\") = %q", got)
	}
}

func TestRenderLinePlain(t *testing.T) {
	line := list.Line{Spans: []list.Span{{Text: "hello"}}}
	got := renderLine(line, 10, false)
	if !strings.Contains(got, "hello") {
		t.Errorf("renderLine = %q", got)
	}
	if !strings.Contains(got, "hello     ") {
		t.Errorf("renderLine = %q, want padding to width", got)
	}
}

func TestRenderLineHighlightDropsCursorBar(t *testing.T) {
	line := list.Line{Cursor: true, Spans: []list.Span{
		{Text: "xx"}, {Text: "needle", Match: true}, {Text: "xx"},
	}}

	// While a highlight is active the cursor row renders like any other row,
	// match spans styled, so the matches are not swallowed by the cursor bar.
	got := renderLine(line, 20, true)
	plain := line
	plain.Cursor = false
	if want := renderLine(plain, 20, false); got != want {
		t.Errorf("highlighted cursor row = %q, want span rendering %q", got, want)
	}
}
