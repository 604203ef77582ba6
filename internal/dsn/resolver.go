// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"sort"
	"strings"
)

// DetectDBType detects the database type from a DSN string
func DetectDBType(dsn string) DBType {
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DBTypePostgreSQL
	case strings.HasPrefix(lower, "mysql://"):
		return DBTypeMySQL
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"):
		return DBTypeSQLite
	}
	return DBTypeUnknown
}

// ResolverFor returns the resolver for t.
func ResolverFor(t DBType) (Resolver, bool) {
	switch t {
	case DBTypePostgreSQL:
		return NewPostgreSQLResolver(), true
	case DBTypeMySQL:
		return NewMySQLResolver(), true
	case DBTypeSQLite:
		return NewSQLiteResolver(), true
	}
	return nil, false
}

func resolverForDSN(dsn string) (Resolver, error) {
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid database connection string")
	}
	r, ok := ResolverFor(DetectDBType(dsn))
	if !ok {
		return nil, NewParseError(dsn, "unknown database type", "use postgres://, mysql:// or sqlite://")
	}
	return r, nil
}

// Parse parses a DSN string and returns the normalized connection string.
func Parse(dsn string) (string, error) {
	r, err := resolverForDSN(dsn)
	if err != nil {
		return "", err
	}
	info, err := r.Parse(dsn)
	if err != nil {
		return "", err
	}
	return r.Normalize(info)
}

// Validate validates a DSN string without normalizing it
func Validate(dsn string) error {
	r, err := resolverForDSN(dsn)
	if err != nil {
		return err
	}
	return r.Validate(dsn)
}

// ParseInfo parses a DSN string and returns detailed DSN info
func ParseInfo(dsn string) (*DSNInfo, error) {
	r, err := resolverForDSN(dsn)
	if err != nil {
		return nil, err
	}
	return r.Parse(dsn)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
