// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

// SQLiteResolver handles sqlite://path and file: URIs. SQLite databases are
// local files, so Host, Port and credentials stay empty.
type SQLiteResolver struct{}

// NewSQLiteResolver creates a new SQLite resolver
func NewSQLiteResolver() *SQLiteResolver {
	return &SQLiteResolver{}
}

// Parse parses sqlite://<path>[?params] or a file: URI.
func (r *SQLiteResolver) Parse(dsn string) (*DSNInfo, error) {
	info := &DSNInfo{Type: DBTypeSQLite, Params: map[string]string{}, Original: dsn}
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "file:"):
		info.Database = dsn
	case strings.HasPrefix(lower, "sqlite://"):
		path, params, _ := strings.Cut(dsn[len("sqlite://"):], "?")
		info.Database = path
		for _, param := range strings.Split(params, "&") {
			if k, v, ok := strings.Cut(param, "="); ok {
				info.Params[k] = v
			}
		}
	default:
		return nil, NewParseError(dsn, "missing or invalid scheme", "use sqlite://path/to.db or file:path/to.db")
	}
	if strings.TrimSpace(info.Database) == "" {
		return nil, NewParseError(dsn, "missing database path", "use sqlite://path/to.db")
	}
	return info, nil
}

// Normalize returns a file: URI. Plain paths are opened read-only so a missing
// file fails instead of being created; file: URIs are passed through untouched.
func (r *SQLiteResolver) Normalize(info *DSNInfo) (string, error) {
	if info == nil || info.Database == "" {
		return "", NewParseError("", "missing database path", "")
	}
	if strings.HasPrefix(strings.ToLower(info.Database), "file:") {
		return info.Database, nil
	}
	var b strings.Builder
	b.WriteString("file:")
	b.WriteString(info.Database)
	b.WriteString("?mode=ro")
	for _, k := range sortedKeys(info.Params) {
		if k == "mode" {
			continue
		}
		b.WriteString("&")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(info.Params[k])
	}
	return b.String(), nil
}

// Validate checks if the DSN is valid for SQLite
func (r *SQLiteResolver) Validate(dsn string) error {
	_, err := r.Parse(dsn)
	return err
}
