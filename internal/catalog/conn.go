// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package catalog inspects database metadata through information_schema and
// the SQLite catalog. A Conn wraps exactly one live connection; nothing is
// cached, so every call is a round trip and reflects the current schema.
package catalog

import (
	"context"
	"database/sql"
	"time"

	"catalognav/cli/internal/dsn"
	apperrors "catalognav/cli/internal/errors"

	"github.com/pterm/pterm"
)

// ConnectTimeout bounds the initial ping when the caller's context has no deadline.
const ConnectTimeout = 5 * time.Second

// Conn is an open connection to one environment's database.
type Conn struct {
	db      *sql.DB
	dialect dialect
	schema  string
}

// Open connects to the database described by d and verifies it with a ping.
// Any failure is a connection_error; the caller owns Close on success.
func Open(ctx context.Context, d dsn.Descriptor) (*Conn, error) {
	dl, ok := dialectFor(d.Driver)
	if !ok {
		return nil, apperrors.New(apperrors.ConnectionFailed, "unsupported driver "+string(d.Driver))
	}
	connString, err := d.ConnString()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ConnectionFailed, "build connection string", err)
	}

	db, err := sql.Open(dl.driverName(), connString)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ConnectionFailed, "open "+d.Redacted(), err)
	}
	// One connection per action, no pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, has := ctx.Deadline(); !has {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(apperrors.ConnectionFailed, "connect to "+d.Redacted(), err)
	}

	schema := d.Schema
	if schema == "" {
		schema = dl.defaultSchema()
	}
	pterm.Debug.Printfln("catalog: connected to %s (schema %q)", d.Redacted(), schema)
	return &Conn{db: db, dialect: dl, schema: schema}, nil
}

// Close releases the connection. It is safe to call more than once.
func (c *Conn) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Schema returns the schema whose tables are inspected.
func (c *Conn) Schema() string { return c.schema }

// ListTables returns the base tables of the connection's schema.
func (c *Conn) ListTables(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, c.dialect.tablesQuery(), c.dialect.tablesArgs(c.schema)...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "list tables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.Wrap(apperrors.QueryFailed, "scan table name", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "list tables", err)
	}
	return tables, nil
}

// ListColumns returns table's columns in definition order, primary keys included.
func (c *Conn) ListColumns(ctx context.Context, table string) ([]ColumnMetadata, error) {
	cols, err := c.dialect.columns(ctx, c.db, c.schema, table)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "list columns of "+table, err)
	}
	return cols, nil
}

// QualifiedName quotes table for use in SQL text, prefixed by the schema where the dialect needs it.
func (c *Conn) QualifiedName(table string) string {
	return c.dialect.qualify(c.schema, table)
}

// QuoteIdent quotes a single identifier for the connection's dialect.
func (c *Conn) QuoteIdent(name string) string {
	return c.dialect.quoteIdent(name)
}

// QueryContext runs a read query on the connection.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}
