// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import (
	"context"
	"database/sql"
	"strings"

	"catalognav/cli/internal/dsn"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// dialect isolates the catalog queries of one database engine.
type dialect interface {
	driverName() string
	defaultSchema() string
	tablesQuery() string
	tablesArgs(schema string) []any
	columnsQuery() string
	columnsArgs(schema, table string) []any
	columns(ctx context.Context, db *sql.DB, schema, table string) ([]ColumnMetadata, error)
	quoteIdent(name string) string
	qualify(schema, table string) string
}

func dialectFor(t dsn.DBType) (dialect, bool) {
	switch t {
	case dsn.DBTypePostgreSQL:
		return postgresDialect{}, true
	case dsn.DBTypeMySQL:
		return mysqlDialect{}, true
	case dsn.DBTypeSQLite:
		return sqliteDialect{}, true
	}
	return nil, false
}

// postgresDialect reads information_schema through the pgx stdlib driver.
type postgresDialect struct{}

func (postgresDialect) driverName() string    { return "pgx" }
func (postgresDialect) defaultSchema() string { return "public" }

func (postgresDialect) tablesQuery() string {
	return `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`
}

func (postgresDialect) tablesArgs(schema string) []any { return []any{schema} }

func (postgresDialect) columnsQuery() string {
	return `
		SELECT column_name,
		       CASE WHEN character_maximum_length IS NOT NULL
		            THEN data_type || '(' || character_maximum_length || ')'
		            ELSE data_type END,
		       is_nullable = 'YES'
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`
}

func (postgresDialect) columnsArgs(schema, table string) []any { return []any{schema, table} }

// postgresPrimaryKeysQuery takes the same arguments as the columns query.
const postgresPrimaryKeysQuery = `
		SELECT kc.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kc
		  ON tc.constraint_name = kc.constraint_name
		 AND tc.table_schema = kc.table_schema
		 AND tc.table_name = kc.table_name
		WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'PRIMARY KEY'`

func (d postgresDialect) columns(ctx context.Context, db *sql.DB, schema, table string) ([]ColumnMetadata, error) {
	rows, err := db.QueryContext(ctx, d.columnsQuery(), d.columnsArgs(schema, table)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnMetadata
	for rows.Next() {
		var c ColumnMetadata
		if err := rows.Scan(&c.Name, &c.Type, &c.Nullable); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pks, err := postgresPrimaryKeys(ctx, db, d.columnsArgs(schema, table))
	if err != nil {
		return nil, err
	}
	for i := range cols {
		cols[i].PrimaryKey = pks[cols[i].Name]
	}
	return cols, nil
}

func postgresPrimaryKeys(ctx context.Context, db *sql.DB, args []any) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, postgresPrimaryKeysQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pks := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		pks[name] = true
	}
	return pks, rows.Err()
}

func (postgresDialect) quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (postgresDialect) qualify(schema, table string) string {
	return pgx.Identifier{schema, table}.Sanitize()
}

// mysqlDialect reads INFORMATION_SCHEMA; an empty schema means DATABASE().
type mysqlDialect struct{}

func (mysqlDialect) driverName() string    { return "mysql" }
func (mysqlDialect) defaultSchema() string { return "" }

func (mysqlDialect) tablesQuery() string {
	return `
		SELECT TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`
}

func (mysqlDialect) tablesArgs(schema string) []any { return []any{schema} }

func (mysqlDialect) columnsQuery() string {
	return `
		SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_KEY
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`
}

func (mysqlDialect) columnsArgs(schema, table string) []any { return []any{schema, table} }

func (d mysqlDialect) columns(ctx context.Context, db *sql.DB, schema, table string) ([]ColumnMetadata, error) {
	rows, err := db.QueryContext(ctx, d.columnsQuery(), d.columnsArgs(schema, table)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnMetadata
	for rows.Next() {
		var name, colType, nullable, key string
		if err := rows.Scan(&name, &colType, &nullable, &key); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnMetadata{
			Name:       name,
			Type:       colType,
			Nullable:   nullable == "YES",
			PrimaryKey: key == "PRI",
		})
	}
	return cols, rows.Err()
}

func (mysqlDialect) quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d mysqlDialect) qualify(schema, table string) string {
	if schema == "" {
		return d.quoteIdent(table)
	}
	return d.quoteIdent(schema) + "." + d.quoteIdent(table)
}

// sqliteDialect reads sqlite_master and pragma_table_info.
type sqliteDialect struct{}

func (sqliteDialect) driverName() string    { return "sqlite3" }
func (sqliteDialect) defaultSchema() string { return "main" }

func (sqliteDialect) tablesQuery() string {
	return `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`
}

func (sqliteDialect) tablesArgs(string) []any { return nil }

func (sqliteDialect) columnsQuery() string {
	return `
		SELECT name, type, "notnull", pk
		FROM pragma_table_info(?, ?)
		ORDER BY cid`
}

// columnsArgs follows pragma_table_info's (table, schema) parameter order.
func (sqliteDialect) columnsArgs(schema, table string) []any { return []any{table, schema} }

func (d sqliteDialect) columns(ctx context.Context, db *sql.DB, schema, table string) ([]ColumnMetadata, error) {
	rows, err := db.QueryContext(ctx, d.columnsQuery(), d.columnsArgs(schema, table)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnMetadata
	for rows.Next() {
		var (
			c       ColumnMetadata
			notNull int
			pk      int
		)
		if err := rows.Scan(&c.Name, &c.Type, &notNull, &pk); err != nil {
			return nil, err
		}
		c.Nullable = notNull == 0
		c.PrimaryKey = pk > 0
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// quoteIdent uses grave accents: SQLite reads an unknown double-quoted name
// as a string literal, which would hide a missing column.
func (sqliteDialect) quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d sqliteDialect) qualify(schema, table string) string {
	return d.quoteIdent(schema) + "." + d.quoteIdent(table)
}
