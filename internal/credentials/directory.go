// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package credentials maps selectable role names to database credentials.
// The mapping is configuration data injected at startup and never mutated.
// A SecretStore, typically the OS keychain, may supply passwords that the
// configuration leaves out.
package credentials

import (
	"catalognav/cli/internal/config"
	apperrors "catalognav/cli/internal/errors"
)

// Credential is a username/password pair for one role.
type Credential struct {
	Username string
	Password string
}

// NoAuth reports whether no password is configured for the credential.
func (c Credential) NoAuth() bool { return c.Password == "" }

// SecretStore supplies passwords by role. Lookup returns ok=false when the
// store holds nothing for the role.
type SecretStore interface {
	RolePassword(role string) (password string, ok bool, err error)
}

// Directory is an immutable role → credential mapping.
type Directory struct {
	order   []string
	entries map[string]Credential
	secrets SecretStore
}

// NewDirectory builds a Directory from configured roles. A role without an
// explicit username uses its own name.
func NewDirectory(roles []config.Role) *Directory {
	d := &Directory{entries: make(map[string]Credential, len(roles))}
	for _, r := range roles {
		user := r.Username
		if user == "" {
			user = r.Name
		}
		if _, dup := d.entries[r.Name]; !dup {
			d.order = append(d.order, r.Name)
		}
		d.entries[r.Name] = Credential{Username: user, Password: r.Password}
	}
	return d
}

// WithSecrets returns a copy of d that consults store before the configured password.
func (d *Directory) WithSecrets(store SecretStore) *Directory {
	return &Directory{order: d.order, entries: d.entries, secrets: store}
}

// Roles returns the role identifiers in configured order.
func (d *Directory) Roles() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Lookup returns the credential for role. Unknown roles fail with key_not_found.
func (d *Directory) Lookup(role string) (Credential, error) {
	cred, ok := d.entries[role]
	if !ok {
		return Credential{}, apperrors.New(apperrors.KeyNotFound, "unknown role "+quote(role))
	}
	if d.secrets != nil {
		pw, found, err := d.secrets.RolePassword(role)
		if err != nil {
			return Credential{}, apperrors.Wrap(apperrors.SecretStoreFailed, "read password for role "+quote(role), err)
		}
		if found {
			cred.Password = pw
		}
	}
	return cred, nil
}

func quote(s string) string { return "\"" + s + "\"" }
