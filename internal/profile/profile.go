// Package profile reads Thunderbird-style profiles.ini files.
//
// profiles.ini is an INI file with one [ProfileN] section per user profile:
//
//	[Profile0]
//	Name=default
//	IsRelative=1
//	Path=asaqivy2.default
package profile

import (
	"fmt"
	"path/filepath"
	"regexp"

	"gopkg.in/ini.v1"
)

// Profile describes a single mail profile.
type Profile struct {
	Name string
	// Path of the profile directory. Relative to the storage root when
	// IsRelative is set.
	Path       string
	IsRelative bool
}

// Dir resolves the profile directory against the storage root.
func (p Profile) Dir(root string) string {
	if p.IsRelative {
		return filepath.Join(root, p.Path)
	}
	return p.Path
}

var profileSectionRe = regexp.MustCompile(`^Profile\d+$`)

// LoadAll parses the profiles.ini file at path and returns all profiles in
// file order. A missing or unreadable file is an error; callers treat it as
// fatal at startup.
func LoadAll(path string) ([]Profile, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file %s: %w", path, err)
	}

	var profiles []Profile
	for _, sec := range f.Sections() {
		if !profileSectionRe.MatchString(sec.Name()) {
			continue
		}
		profiles = append(profiles, Profile{
			Name:       sec.Key("Name").String(),
			Path:       sec.Key("Path").String(),
			IsRelative: sec.Key("IsRelative").MustBool(false),
		})
	}
	return profiles, nil
}

// Find returns the profile with the given name.
func Find(profiles []Profile, name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}
