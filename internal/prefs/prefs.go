// Package prefs extracts mail storage directories from a prefs.js file.
//
// A prefs.js file consists of javascript calls to a user_pref function taking
// a string key and a value. The only preferences of interest here are the
// per-server mail directories:
//
//	user_pref("mail.server.server1.directory", "/home/user/Mail/Local Folders");
package prefs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var userPrefRe = regexp.MustCompile(`^user_pref\("([^"]+)",\s*"([^"]*)"\);?`)

// Directories parses the prefs.js file at path and returns the configured
// mail.server directories, each followed by its subdirectories (recursively).
// A missing or unreadable file is an error; callers treat it as fatal at
// startup.
func Directories(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read prefs file %s: %w", path, err)
	}
	defer f.Close()

	var dirs []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		m := userPrefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := m[1]
		if !strings.HasPrefix(key, "mail.server.") || !strings.HasSuffix(key, ".directory") {
			continue
		}
		dirs = append(dirs, m[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan prefs file %s: %w", path, err)
	}

	var out []string
	for _, d := range dirs {
		out = append(out, d)
		sub, err := subdirectories(d)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// subdirectories returns all directories below root, depth first.
func subdirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list mail directory %s: %w", root, err)
	}

	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(root, e.Name())
		out = append(out, p)
		sub, err := subdirectories(p)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}
