package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wrenmail/wren/internal/mbox"
	"github.com/wrenmail/wren/internal/prefs"
	"github.com/wrenmail/wren/internal/profile"
)

// ErrNotFound is returned by Message for indices past the end of the current
// mailbox.
var ErrNotFound = mbox.ErrNotFound

// Reader binds a profile to its mailbox set and gives indexed access to the
// messages of the currently selected mailbox. It owns the open mailbox handle
// for its lifetime; screens share one Reader and never reopen storage.
type Reader struct {
	root     string // Storage root, e.g. ~/.thunderbird
	profiles []profile.Profile
	profile  profile.Profile

	paths   []string // Discovered mailbox file paths
	path    string   // Currently selected mailbox path, "" when none
	mailbox *mbox.Mailbox
	cache   []*Message // Parse cache, indexed by message number
}

// Open creates a Reader rooted at the given storage directory, selecting the
// named profile and its inbox. Profile and preference files that are missing
// or unreadable are fatal startup errors for the caller.
func Open(root, profileName string) (*Reader, error) {
	profiles, err := profile.LoadAll(filepath.Join(root, "profiles.ini"))
	if err != nil {
		return nil, err
	}

	p, ok := profile.Find(profiles, profileName)
	if !ok {
		return nil, fmt.Errorf("profile %q not found in %s", profileName, filepath.Join(root, "profiles.ini"))
	}

	r := &Reader{root: root, profiles: profiles}
	if err := r.setProfile(p); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases the current mailbox handle.
func (r *Reader) Close() error {
	if r.mailbox == nil {
		return nil
	}
	return r.mailbox.Close()
}

// Profile returns the active profile.
func (r *Reader) Profile() profile.Profile {
	return r.profile
}

// Profiles returns all profiles known to the storage root.
func (r *Reader) Profiles() []profile.Profile {
	return r.profiles
}

// MailboxPaths returns the mailbox files discovered for the active profile.
func (r *Reader) MailboxPaths() []string {
	return r.paths
}

// Path returns the currently selected mailbox path, or "" when the profile
// has no mailboxes.
func (r *Reader) Path() string {
	return r.path
}

// Size returns the byte size of the current mailbox file.
func (r *Reader) Size() int64 {
	if r.path == "" {
		return 0
	}
	info, err := os.Stat(r.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Len reports the number of messages in the current mailbox.
func (r *Reader) Len() int {
	if r.mailbox == nil {
		return 0
	}
	return r.mailbox.Len()
}

// Message returns message i of the current mailbox, parsing it on first
// access. Returns ErrNotFound past the end.
func (r *Reader) Message(i int) (*Message, error) {
	if r.mailbox == nil {
		return nil, fmt.Errorf("%w: no mailbox selected", ErrNotFound)
	}
	if i >= 0 && i < len(r.cache) && r.cache[i] != nil {
		return r.cache[i], nil
	}

	raw, err := r.mailbox.Raw(i)
	if err != nil {
		return nil, err
	}
	msg, err := ParseMessage(raw)
	if err != nil {
		return nil, fmt.Errorf("parse message %d of %s: %w", i, r.path, err)
	}

	if r.cache == nil {
		r.cache = make([]*Message, r.mailbox.Len())
	}
	if i < len(r.cache) {
		r.cache[i] = msg
	}
	return msg, nil
}

// SetMailbox switches the reader to another discovered mailbox. Paths outside
// the discovered set are ignored, matching the forgiving behavior of the list
// screens (the selection always comes from MailboxPaths).
func (r *Reader) SetMailbox(path string) error {
	if path == r.path {
		return nil
	}
	found := false
	for _, p := range r.paths {
		if p == path {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	return r.openMailbox(path)
}

// SetProfile switches the reader to another profile, rescanning its mailboxes
// and selecting its inbox.
func (r *Reader) SetProfile(name string) error {
	p, ok := profile.Find(r.profiles, name)
	if !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	return r.setProfile(p)
}

func (r *Reader) setProfile(p profile.Profile) error {
	dirs, err := prefs.Directories(filepath.Join(p.Dir(r.root), "prefs.js"))
	if err != nil {
		return err
	}

	var paths []string
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			return fmt.Errorf("list mail directory %s: %w", d, err)
		}
		for _, e := range entries {
			p := filepath.Join(d, e.Name())
			if mbox.IsMailbox(p) {
				paths = append(paths, p)
			}
		}
	}

	r.profile = p
	r.paths = paths
	return r.openMailbox(inboxPath(paths))
}

// openMailbox replaces the current mailbox. An empty path (profile without
// mailboxes) leaves the reader with a zero-length collection.
func (r *Reader) openMailbox(path string) error {
	if r.mailbox != nil {
		r.mailbox.Close()
		r.mailbox = nil
	}
	r.path = path
	r.cache = nil
	if path == "" {
		return nil
	}

	mb, err := mbox.Open(path)
	if err != nil {
		return err
	}
	r.mailbox = mb
	return nil
}

// inboxPath picks the default mailbox: the first INBOX found, else the first
// mailbox, else "".
func inboxPath(paths []string) string {
	for _, p := range paths {
		if strings.HasSuffix(p, "INBOX") {
			return p
		}
	}
	if len(paths) > 0 {
		return paths[0]
	}
	return ""
}
