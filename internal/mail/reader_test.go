package mail

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/wrenmail/wren/internal/testutil"
)

func openTestReader(t *testing.T) *Reader {
	t.Helper()
	st := testutil.NewStorage(t, "default", map[string]string{
		"INBOX": testutil.SampleMailbox(),
		"Sent": testutil.FormatMbox([]testutil.MboxMessage{{
			From:  "me@example.com",
			Ctime: "Mon Feb 1 08:00:00 2021",
			Headers: map[string]string{
				"From":    "me@example.com",
				"To":      "alice@example.com",
				"Subject": "sent one",
				"Date":    "Mon, 01 Feb 2021 08:00:00 +0000",
			},
			Body: "outgoing\n",
		}}),
	})

	r, err := Open(st.Root, "default")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpenSelectsInbox(t *testing.T) {
	r := openTestReader(t)

	if got := filepath.Base(r.Path()); got != "INBOX" {
		t.Errorf("Path() = %s, want INBOX", r.Path())
	}
	if got := r.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := len(r.MailboxPaths()); got != 2 {
		t.Errorf("MailboxPaths() = %d entries, want 2", got)
	}
	if r.Size() <= 0 {
		t.Errorf("Size() = %d, want > 0", r.Size())
	}
}

func TestMessageAccessAndCache(t *testing.T) {
	r := openTestReader(t)

	msg, err := r.Message(0)
	if err != nil {
		t.Fatalf("Message(0): %v", err)
	}
	if msg.Subject != "March status" {
		t.Errorf("Subject = %q", msg.Subject)
	}

	again, err := r.Message(0)
	if err != nil {
		t.Fatalf("Message(0) again: %v", err)
	}
	if msg != again {
		t.Error("second access did not hit the parse cache")
	}

	if _, err := r.Message(3); !errors.Is(err, ErrNotFound) {
		t.Errorf("Message(3) error = %v, want ErrNotFound", err)
	}
}

func TestSetMailbox(t *testing.T) {
	r := openTestReader(t)

	var sent string
	for _, p := range r.MailboxPaths() {
		if filepath.Base(p) == "Sent" {
			sent = p
		}
	}
	if sent == "" {
		t.Fatal("Sent mailbox not discovered")
	}

	if err := r.SetMailbox(sent); err != nil {
		t.Fatalf("SetMailbox: %v", err)
	}
	if r.Path() != sent {
		t.Errorf("Path() = %s, want %s", r.Path(), sent)
	}
	if got := r.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}

	// Paths outside the discovered set are ignored.
	if err := r.SetMailbox("/nonexistent/mailbox"); err != nil {
		t.Fatalf("SetMailbox(outside): %v", err)
	}
	if r.Path() != sent {
		t.Errorf("Path() changed to %s after ignored switch", r.Path())
	}
}

func TestOpenUnknownProfile(t *testing.T) {
	st := testutil.NewStorage(t, "default", map[string]string{"INBOX": testutil.SampleMailbox()})
	if _, err := Open(st.Root, "nonexistent"); err == nil {
		t.Error("Open(unknown profile) = nil, want error")
	}
}

func TestSetProfileUnknown(t *testing.T) {
	r := openTestReader(t)
	if err := r.SetProfile("nonexistent"); err == nil {
		t.Error("SetProfile(unknown) = nil, want error")
	}
}
