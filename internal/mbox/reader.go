// Package mbox provides random access to the messages stored in an mbox
// mailbox file.
//
// We support typical mboxo/mboxrd files where each message is preceded by a
// Unix "From " separator line. Body lines that begin with "From " (or with one
// or more leading '>' followed by "From ") are commonly escaped in the file by
// prefixing an additional '>' (mboxrd). When reading message bytes we unescape
// by removing a single leading '>' from any line that matches ^>+From .
package mbox

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const maxLineBytes = 32 << 20 // 32 MiB

// ErrNotFound is returned when a message index is past the end of a mailbox.
var ErrNotFound = errors.New("mbox: message not found")

type offsetReader struct {
	r io.Reader
	n int64
}

func (o *offsetReader) Read(p []byte) (int, error) {
	n, err := o.r.Read(p)
	o.n += int64(n)
	return n, err
}

// Reader streams over the separator structure of an MBOX file. It reads one
// line at a time and reports the byte extent of each message, which Mailbox
// uses to build its index.
type Reader struct {
	or *offsetReader
	br *bufio.Reader

	// nextFromLine is the already-read separator line for the next message, if any.
	nextFromLine   string
	nextFromOffset int64
	hasNextFrom    bool
	eof            bool
}

// NewReader creates a new MBOX reader.
func NewReader(r io.Reader) *Reader {
	or := &offsetReader{r: r}
	return &Reader{
		or: or,
		br: bufio.NewReader(or),
	}
}

// Entry describes one message's location within the stream.
type Entry struct {
	// FromLine is the separator line (without trailing newline).
	FromLine string

	// Start and End delimit the raw RFC 5322 message bytes (headers + body)
	// in the underlying stream. The separator line is not included.
	Start, End int64
}

// offset reports the current logical read offset within the underlying
// stream, accounting for buffered data.
func (r *Reader) offset() int64 {
	return r.or.n - int64(r.br.Buffered())
}

// Next returns the extent of the next message in the stream.
// Returns io.EOF when there are no more messages.
func (r *Reader) Next() (Entry, error) {
	if r.eof {
		return Entry{}, io.EOF
	}

	// Find the separator line for the next message, if we don't already have it.
	if !r.hasNextFrom {
		for {
			lineStart := r.offset()
			line, err := r.readLineBytes()
			if err != nil && err != io.EOF {
				return Entry{}, err
			}
			if isFromSeparatorLine(line) {
				r.nextFromLine = string(bytes.TrimRight(line, "\r\n"))
				r.nextFromOffset = lineStart
				r.hasNextFrom = true
				break
			}
			if err == io.EOF {
				r.eof = true
				return Entry{}, io.EOF
			}
		}
	}

	fromLine := r.nextFromLine
	r.hasNextFrom = false
	start := r.offset()
	end := start

	for {
		lineStart := r.offset()
		line, err := r.readLineBytes()
		if len(line) > 0 {
			if isFromSeparatorLine(line) {
				// Found the next separator; stash it for the next call.
				r.nextFromLine = string(bytes.TrimRight(line, "\r\n"))
				r.nextFromOffset = lineStart
				r.hasNextFrom = true
				end = lineStart
				break
			}
		}

		if err != nil {
			if err == io.EOF {
				r.eof = true
				end = r.offset()
				break
			}
			return Entry{}, err
		}
	}

	return Entry{FromLine: fromLine, Start: start, End: end}, nil
}

func (r *Reader) readLineBytes() ([]byte, error) {
	// ReadBytes returns bufio.ErrBufferFull when the buffer fills before finding
	// the delimiter. Treat that as a partial line and keep accumulating.
	var out []byte
	for {
		b, err := r.br.ReadBytes('\n')
		out = append(out, b...)
		if len(out) > maxLineBytes {
			return nil, fmt.Errorf("mbox line exceeds max length (%d bytes)", maxLineBytes)
		}
		if err == nil {
			return out, nil
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == io.EOF {
			return out, io.EOF
		}
		if len(out) > 0 {
			return out, err
		}
		return nil, err
	}
}

var fromPrefix = []byte("From ")

// isFromSeparatorLine checks whether line (with or without trailing newline)
// looks like an mbox "From " separator.
func isFromSeparatorLine(line []byte) bool {
	if !bytes.HasPrefix(line, fromPrefix) {
		return false
	}
	trimmed := string(bytes.TrimRight(line, "\r\n"))
	_, ok := parseSeparatorDate(trimmed)
	return ok
}

var separatorDateLayouts = []string{
	"Mon Jan 2 15:04:05 2006",
	"Mon Jan 2 15:04:05 -0700 2006",
	"Mon Jan 2 15:04:05 MST 2006",
	"Mon Jan 2 15:04:05 2006 -0700",
	"Mon Jan 2 15:04:05 2006 MST",
	"Mon Jan 2 15:04 2006",
	"Jan 2 15:04:05 2006",
	"Jan 2 15:04:05 2006 -0700",
	"Jan 2 15:04 2006",
}

// parseSeparatorDate parses the ctime-like date portion of an mbox "From "
// separator line.
//
// This is intentionally permissive and is used as a heuristic for separator
// detection. In edge cases, an unescaped body line that looks like a separator
// ("From <x> <ctime-like date> ...") can be misclassified; mbox writers should
// escape such body lines (e.g. ">From ").
func parseSeparatorDate(line string) (time.Time, bool) {
	fields := strings.Fields(line)
	// Typical mbox separator: "From <sender> <ctime-like date> [extra...]"
	// Some producers append extra tokens, so only parse the date prefix.
	if len(fields) < 6 || fields[0] != "From" {
		return time.Time{}, false
	}

	for _, layout := range separatorDateLayouts {
		n := len(strings.Fields(layout))
		if len(fields) < 2+n {
			continue
		}
		dateStr := strings.Join(fields[2:2+n], " ")
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// unescapeFromBytes removes a single leading '>' from any line that matches
// ^>+From  (mboxrd unquoting). This also works for mboxo where only ">From "
// appears for originally "From " lines.
func unescapeFromBytes(line []byte) []byte {
	if len(line) == 0 || line[0] != '>' {
		return line
	}

	i := 0
	for i < len(line) && line[i] == '>' {
		i++
	}
	if i < len(line) && bytes.HasPrefix(line[i:], fromPrefix) {
		return line[1:]
	}
	return line
}

// Validate scans the stream and returns an error if it doesn't look like an
// MBOX file. It reads up to maxBytes from the stream. This is a heuristic.
func Validate(r io.Reader, maxBytes int64) error {
	if maxBytes <= 0 {
		return fmt.Errorf("maxBytes must be > 0")
	}
	br := bufio.NewReader(io.LimitReader(r, maxBytes))
	for {
		line, err := br.ReadString('\n')
		if isFromSeparatorLine([]byte(line)) {
			return nil
		}
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("no \"From \" separators found (not an mbox file?)")
			}
			return err
		}
	}
}
