// Package mail provides read access to local mail storage: locating the
// mailboxes that belong to a profile and parsing individual messages.
package mail

import (
	"bytes"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"
)

// Attachment is a non-body MIME part of a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a parsed mail message. Only the fields the reader screens need
// are materialized; the raw bytes are not retained.
type Message struct {
	Subject    string
	From       string
	To         string
	Date       time.Time
	DateHeader string // Raw Date header, for display
	Multipart  bool

	BodyText    string
	BodyIsHTML  bool // True when BodyText was derived by stripping HTML
	Attachments []Attachment
}

// ParseMessage parses raw RFC 5322 bytes into a Message.
func ParseMessage(raw []byte) (*Message, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	msg := &Message{
		Subject:    env.GetHeader("Subject"),
		From:       env.GetHeader("From"),
		To:         env.GetHeader("To"),
		DateHeader: env.GetHeader("Date"),
		Multipart:  strings.HasPrefix(strings.ToLower(env.GetHeader("Content-Type")), "multipart/"),
	}

	if msg.DateHeader != "" {
		if t, ok := parseDate(msg.DateHeader); ok {
			msg.Date = t
		}
	}

	// enmime downconverts an HTML-only body into env.Text itself, so env.Text
	// being set does not mean a text/plain part exists. Prefer a real plain
	// part; otherwise strip the HTML here.
	hasPlain := env.Root != nil && env.Root.DepthMatchFirst(func(p *enmime.Part) bool {
		return p.ContentType == "text/plain" && p.Disposition != "attachment"
	}) != nil
	if env.HTML != "" && !hasPlain {
		msg.BodyText = StripHTML(env.HTML)
		msg.BodyIsHTML = true
	} else {
		msg.BodyText = env.Text
	}

	for _, part := range append(env.Attachments, env.Inlines...) {
		if part.FileName == "" && part.Disposition != "attachment" {
			continue
		}
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    part.FileName,
			ContentType: baseContentType(part.ContentType),
			Content:     part.Content,
		})
	}

	return msg, nil
}

// baseContentType strips parameters like charset from a content type.
func baseContentType(ct string) string {
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	return strings.TrimSpace(ct)
}

// dateFormats lists common email date formats for parseDate.
var dateFormats = []string{
	time.RFC1123Z,                    // "Mon, 02 Jan 2006 15:04:05 -0700"
	time.RFC1123,                     // "Mon, 02 Jan 2006 15:04:05 MST"
	"Mon, 2 Jan 2006 15:04:05 -0700", // Single-digit day
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700", // No weekday
	"2 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	"Mon, 02 Jan 2006 15:04:05 -0700 (MST)", // With parenthesized TZ
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
}

// parseDate attempts to parse a Date header in common formats.
func parseDate(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")

	// Strip a trailing timezone name in parentheses like "(UTC)" but keep the
	// numeric offset for parsing.
	baseStr := s
	if idx := strings.LastIndex(s, "("); idx > 0 {
		baseStr = strings.TrimSpace(s[:idx])
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, baseStr); err == nil {
			return t, true
		}
	}
	if baseStr != s {
		for _, format := range dateFormats {
			if t, err := time.Parse(format, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Block tags that should create line breaks when stripped
var blockTagRe = regexp.MustCompile(`(?i)<(/?)(p|div|br|hr|h[1-6]|li|tr|td|th|blockquote|pre|table|ul|ol|dl|dt|dd)[^>]*>`)

var scriptTagRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
var styleTagRe = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
var headTagRe = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes HTML tags, decodes entities, and normalizes whitespace.
// Block elements are converted to line breaks for readable plain text output.
func StripHTML(rawHTML string) string {
	text := scriptTagRe.ReplaceAllString(rawHTML, "")
	text = styleTagRe.ReplaceAllString(text, "")
	text = headTagRe.ReplaceAllString(text, "")

	// Both opening and closing block tags emit newlines so consecutive blocks
	// (like </p><p>) get proper spacing. Leading/trailing blank lines are
	// removed by the final TrimSpace.
	text = blockTagRe.ReplaceAllString(text, "\n")
	text = htmlTagRe.ReplaceAllString(text, "")

	text = html.UnescapeString(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	// Replace non-breaking spaces with regular spaces.
	text = strings.ReplaceAll(text, "\u00a0", " ")

	// Collapse runs of spaces on each line but preserve newlines.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(text)
}
