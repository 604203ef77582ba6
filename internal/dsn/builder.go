// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"net/url"
	"strconv"
	"strings"

	"catalognav/cli/internal/config"
	"catalognav/cli/internal/credentials"
	apperrors "catalognav/cli/internal/errors"
)

// Descriptor holds everything needed to open one database connection.
// It is created per connect action and never persisted.
type Descriptor struct {
	Driver   DBType
	Host     string
	Port     int
	Database string
	Username string
	Password string
	// Schema is the namespace whose tables are listed; empty means the dialect default.
	Schema string
	Params map[string]string
}

// NoAuth reports the explicit "no authentication configured" state.
func (d Descriptor) NoAuth() bool { return d.Password == "" }

// Info converts d to the resolver representation.
func (d Descriptor) Info() *DSNInfo {
	info := &DSNInfo{
		Type:     d.Driver,
		Host:     d.Host,
		User:     d.Username,
		Password: d.Password,
		Database: d.Database,
		Params:   map[string]string{},
	}
	if d.Port > 0 {
		info.Port = strconv.Itoa(d.Port)
	}
	for k, v := range d.Params {
		info.Params[k] = v
	}
	return info
}

// ConnString renders the driver-specific connection string.
func (d Descriptor) ConnString() (string, error) {
	r, ok := ResolverFor(d.Driver)
	if !ok {
		return "", NewParseError("", "unsupported driver "+string(d.Driver), "use postgres, mysql or sqlite")
	}
	return r.Normalize(d.Info())
}

// Redacted renders a display form of the connection with the password masked.
func (d Descriptor) Redacted() string {
	if d.Driver == DBTypeSQLite {
		return "sqlite://" + d.Database
	}
	var b strings.Builder
	b.WriteString(string(d.Driver))
	b.WriteString("://")
	if d.Username != "" {
		b.WriteString(url.User(d.Username).String())
		if !d.NoAuth() {
			b.WriteString(":***")
		}
		b.WriteString("@")
	}
	b.WriteString(d.Host)
	if d.Port > 0 {
		b.WriteString(":" + strconv.Itoa(d.Port))
	}
	b.WriteString("/" + d.Database)
	return b.String()
}

// CredentialLookup resolves a role to its credential.
type CredentialLookup interface {
	Lookup(role string) (credentials.Credential, error)
}

// Builder assembles Descriptors from an environment and a role. Host, port and
// driver are fixed by configuration; the database name is the environment identifier.
type Builder struct {
	db    config.DatabaseConfig
	order []string
	envs  map[string]config.Environment
	creds CredentialLookup
}

// NewBuilder creates a Builder over the configured environments.
func NewBuilder(db config.DatabaseConfig, envs []config.Environment, creds CredentialLookup) *Builder {
	b := &Builder{db: db, envs: make(map[string]config.Environment, len(envs)), creds: creds}
	for _, e := range envs {
		if _, dup := b.envs[e.Name]; !dup {
			b.order = append(b.order, e.Name)
		}
		b.envs[e.Name] = e
	}
	return b
}

// Environments returns environment identifiers in configured order.
func (b *Builder) Environments() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Environment returns the configured environment by name.
func (b *Builder) Environment(name string) (config.Environment, bool) {
	e, ok := b.envs[name]
	return e, ok
}

// Build returns the Descriptor for environment and role. It performs no I/O
// beyond the credential lookup and never checks reachability.
func (b *Builder) Build(environment, role string) (Descriptor, error) {
	env, ok := b.envs[environment]
	if !ok {
		return Descriptor{}, apperrors.New(apperrors.KeyNotFound, "unknown environment \""+environment+"\"")
	}
	cred, err := b.creds.Lookup(role)
	if err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{
		Driver:   DriverType(b.db.Driver),
		Host:     b.db.Host,
		Port:     b.db.Port,
		Database: env.Name,
		Username: cred.Username,
		Password: cred.Password,
		Schema:   b.db.Schema,
		Params:   copyParams(b.db.Params),
	}

	if env.DSN != "" {
		info, err := ParseInfo(env.DSN)
		if err != nil {
			return Descriptor{}, apperrors.Wrap(apperrors.ConfigInvalid, "environment "+env.Name+" dsn", err)
		}
		d.Driver = info.Type
		d.Host = info.Host
		d.Port, _ = strconv.Atoi(info.Port)
		d.Database = info.Database
		for k, v := range info.Params {
			if d.Params == nil {
				d.Params = map[string]string{}
			}
			d.Params[k] = v
		}
	}
	if d.Driver == DBTypeUnknown {
		return Descriptor{}, apperrors.New(apperrors.ConfigInvalid, "unsupported driver \""+b.db.Driver+"\"")
	}
	return d, nil
}

func copyParams(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
