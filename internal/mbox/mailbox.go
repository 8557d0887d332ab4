package mbox

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Mailbox is an indexed view of an mbox file. The separator structure is
// scanned once on Open; message bytes are read back on demand.
type Mailbox struct {
	path    string
	f       *os.File
	entries []Entry
}

// Open opens the mbox file at path and indexes its messages.
func Open(path string) (*Mailbox, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mailbox: %w", err)
	}

	r := NewReader(f)
	var entries []Entry
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("index mailbox %s: %w", path, err)
		}
		entries = append(entries, e)
	}

	return &Mailbox{path: path, f: f, entries: entries}, nil
}

// Close releases the underlying file handle.
func (mb *Mailbox) Close() error {
	return mb.f.Close()
}

// Path returns the mailbox file path.
func (mb *Mailbox) Path() string {
	return mb.path
}

// Len reports the number of messages in the mailbox.
func (mb *Mailbox) Len() int {
	return len(mb.entries)
}

// Raw returns the raw RFC 5322 bytes of message i with mboxrd "From " escaping
// undone. Returns ErrNotFound if i is past the end of the mailbox.
func (mb *Mailbox) Raw(i int) ([]byte, error) {
	if i < 0 || i >= len(mb.entries) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNotFound, i, len(mb.entries))
	}
	e := mb.entries[i]

	buf := make([]byte, e.End-e.Start)
	if _, err := mb.f.ReadAt(buf, e.Start); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read message %d: %w", i, err)
	}

	var out bytes.Buffer
	out.Grow(len(buf))
	sc := bufio.NewReader(bytes.NewReader(buf))
	for {
		line, err := sc.ReadBytes('\n')
		if len(line) > 0 {
			out.Write(unescapeFromBytes(line))
		}
		if err != nil {
			break
		}
	}
	return out.Bytes(), nil
}

// IsMailbox reports whether path looks like an mbox mailbox file: a regular
// file whose name carries no extension and whose content starts with a
// "From " separator.
func IsMailbox(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	// Thunderbird keeps index side files next to mailboxes (INBOX.msf etc);
	// mailbox files themselves have no extension.
	base := info.Name()
	if bytes.ContainsRune([]byte(base), '.') {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 5)
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return bytes.Equal(head, fromPrefix)
}
