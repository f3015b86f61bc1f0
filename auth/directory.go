// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/BurntSushi/toml"
)

// GroupOracle answers group-membership questions for authorization.
type GroupOracle interface {
	// HasAccess reports whether user is, or belongs to, owner.
	HasAccess(user, owner string) bool
	// ValidOwner reports whether owner may be recorded as a device owner.
	ValidOwner(owner string) bool
	// UserEmail returns the address a user is known by.
	UserEmail(user string) string
	// Info returns the extra annotation for a device name, if any.
	Info(deviceName string) string
}

// Directory is a GroupOracle backed by a TOML file:
//
//	realm = "example.org"
//	users = ["alice", "bob"]
//
//	[groups]
//	"hwops@example.org" = ["alice", "infra@example.org"]
//	"infra@example.org" = ["bob@example.org"]
//
//	[info]
//	"web1" = "Primary web server"
type Directory struct {
	Realm  string              `toml:"realm"`
	Users  []string            `toml:"users"`
	Groups map[string][]string `toml:"groups"`
	Notes  map[string]string   `toml:"info"`

	users map[string]bool
}

// LoadDirectory reads a directory file from disk
func LoadDirectory(path string) (*Directory, error) {
	var d Directory
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("failed to load directory %s: %w", path, err)
	}
	d.index()
	return &d, nil
}

// ParseDirectory decodes a directory from TOML text
func ParseDirectory(data string) (*Directory, error) {
	var d Directory
	if _, err := toml.Decode(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse directory: %w", err)
	}
	d.index()
	return &d, nil
}

func (d *Directory) index() {
	d.users = make(map[string]bool, len(d.Users))
	for _, u := range d.Users {
		d.users[strings.ToLower(u)] = true
	}
	if d.Groups == nil {
		d.Groups = map[string][]string{}
	}
	if d.Notes == nil {
		d.Notes = map[string]string{}
	}
}

func (d *Directory) UserEmail(user string) string {
	if user == "" || strings.Contains(user, "@") || d.Realm == "" {
		return user
	}
	return user + "@" + d.Realm
}

func (d *Directory) HasAccess(user, owner string) bool {
	if user == "" || owner == "" {
		return false
	}
	if strings.EqualFold(owner, user) || strings.EqualFold(owner, d.UserEmail(user)) {
		return true
	}
	return d.contains(owner, user, map[string]bool{})
}

// contains resolves nested groups; seen guards against membership cycles.
func (d *Directory) contains(group, user string, seen map[string]bool) bool {
	if seen[group] {
		return false
	}
	seen[group] = true

	members, ok := d.Groups[group]
	if !ok {
		return false
	}
	email := d.UserEmail(user)
	for _, m := range members {
		if strings.EqualFold(m, user) || strings.EqualFold(m, email) {
			return true
		}
		if _, nested := d.Groups[m]; nested && d.contains(m, user, seen) {
			return true
		}
	}
	return false
}

func (d *Directory) ValidOwner(owner string) bool {
	if _, ok := d.Groups[owner]; ok {
		return true
	}

	addr, err := mail.ParseAddress(owner)
	if err != nil || addr.Address != owner || addr.Name != "" {
		return false
	}
	local, domain, _ := strings.Cut(owner, "@")
	return strings.EqualFold(domain, d.Realm) && d.users[strings.ToLower(local)]
}

func (d *Directory) Info(deviceName string) string {
	return d.Notes[deviceName]
}
