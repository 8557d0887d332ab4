// Package testutil provides fixture builders shared by tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MboxMessage describes one message of a fixture mailbox.
type MboxMessage struct {
	From    string // Envelope sender for the separator line
	Ctime   string // ctime-style separator date, e.g. "Sat Jan 16 12:00:00 2021"
	Headers map[string]string
	Body    string
}

// FormatMbox renders messages as an mbox file.
func FormatMbox(msgs []MboxMessage) string {
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "From %s %s\n", m.From, m.Ctime)
		// Keep header order stable for assertions.
		for _, key := range []string{"From", "To", "Subject", "Date", "Content-Type"} {
			if v, ok := m.Headers[key]; ok {
				fmt.Fprintf(&b, "%s: %s\n", key, v)
			}
		}
		for k, v := range m.Headers {
			switch k {
			case "From", "To", "Subject", "Date", "Content-Type":
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
		b.WriteString("\n")
		b.WriteString(m.Body)
		if !strings.HasSuffix(m.Body, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Storage describes a fixture mail storage tree: a root with profiles.ini,
// one profile directory with a prefs.js, and a set of mailbox files.
type Storage struct {
	Root        string
	ProfileName string
	ProfileDir  string
	MailDir     string
}

// NewStorage builds a storage tree in a temp directory with the given
// mailboxes (name -> mbox content).
func NewStorage(t *testing.T, profileName string, mailboxes map[string]string) Storage {
	t.Helper()

	root := t.TempDir()
	profileDir := filepath.Join(root, profileName+".prof")
	mailDir := filepath.Join(profileDir, "Mail")
	if err := os.MkdirAll(mailDir, 0o755); err != nil {
		t.Fatal(err)
	}

	profilesINI := fmt.Sprintf("[Profile0]\nName=%s\nIsRelative=1\nPath=%s.prof\n", profileName, profileName)
	if err := os.WriteFile(filepath.Join(root, "profiles.ini"), []byte(profilesINI), 0o644); err != nil {
		t.Fatal(err)
	}

	prefsJS := fmt.Sprintf("user_pref(%q, %q);\n", "mail.server.server1.directory", mailDir)
	if err := os.WriteFile(filepath.Join(profileDir, "prefs.js"), []byte(prefsJS), 0o644); err != nil {
		t.Fatal(err)
	}

	for name, content := range mailboxes {
		if err := os.WriteFile(filepath.Join(mailDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return Storage{
		Root:        root,
		ProfileName: profileName,
		ProfileDir:  profileDir,
		MailDir:     mailDir,
	}
}

// SampleMailbox returns a small three-message mailbox in descending date
// order, the way mail clients append: most fixtures want predictable
// subjects and senders to filter on.
func SampleMailbox() string {
	return FormatMbox([]MboxMessage{
		{
			From:  "carol@example.com",
			Ctime: "Mon Mar 1 10:00:00 2021",
			Headers: map[string]string{
				"From":    "Carol <carol@example.com>",
				"To":      "me@example.com",
				"Subject": "March status",
				"Date":    "Mon, 01 Mar 2021 10:00:00 +0000",
			},
			Body: "the march report is attached below\n",
		},
		{
			From:  "bob@example.com",
			Ctime: "Sun Jan 17 09:30:00 2021",
			Headers: map[string]string{
				"From":    "Bob <bob@example.com>",
				"To":      "me@example.com",
				"Subject": "Re: lunch",
				"Date":    "Sun, 17 Jan 2021 09:30:00 +0000",
			},
			Body: "tuesday works for me\n",
		},
		{
			From:  "alice@example.com",
			Ctime: "Sat Jan 16 12:00:00 2021",
			Headers: map[string]string{
				"From":    "Alice <alice@example.com>",
				"To":      "me@example.com",
				"Subject": "lunch?",
				"Date":    "Sat, 16 Jan 2021 12:00:00 +0000",
			},
			Body: "free on tuesday?\n",
		},
	})
}
