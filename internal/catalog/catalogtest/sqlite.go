// Package catalogtest provides in-memory SQLite databases for tests that need
// a live catalog to inspect.
package catalogtest

import (
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"catalognav/cli/internal/dsn"

	_ "github.com/mattn/go-sqlite3"
)

// HotelSchema is a trimmed hotel booking warehouse with a classification column.
var HotelSchema = []string{
	`CREATE TABLE dim_customer (
		customer_id    INTEGER PRIMARY KEY,
		name           VARCHAR(100) NOT NULL,
		email          VARCHAR(255),
		phone_number   VARCHAR(32),
		credit_card    VARCHAR(32),
		classification VARCHAR(20)
	)`,
	`CREATE TABLE fact_booking (
		booking_id              INTEGER PRIMARY KEY,
		customer_id             INTEGER NOT NULL,
		arrival_date            DATE,
		reservation_status_date DATE,
		adr                     NUMERIC(10,2)
	)`,
	`INSERT INTO dim_customer (customer_id, name, email, classification) VALUES
		(1, 'Ana',   'ana@example.com',   'Gold'),
		(2, 'Ben',   'ben@example.com',   'Silver'),
		(3, 'Chloe', 'chloe@example.com', 'Gold'),
		(4, 'Dev',   NULL,                'Bronze'),
		(5, 'Eli',   'eli@example.com',   'Gold')`,
}

var seq atomic.Int64

// NewSQLite creates a shared-cache in-memory database, runs stmts against it
// and returns a Descriptor that opens it. The database lives until the test ends.
func NewSQLite(t testing.TB, stmts ...string) dsn.Descriptor {
	t.Helper()

	name := fmt.Sprintf("%s_%d", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()), seq.Add(1))
	uri := "file:" + name + "?mode=memory&cache=shared"

	keeper, err := sql.Open("sqlite3", uri)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Holding one connection open keeps the in-memory database alive.
	keeper.SetMaxIdleConns(1)
	if err := keeper.Ping(); err != nil {
		t.Fatalf("ping sqlite: %v", err)
	}
	t.Cleanup(func() { _ = keeper.Close() })

	for _, stmt := range stmts {
		if _, err := keeper.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return dsn.Descriptor{Driver: dsn.DBTypeSQLite, Database: uri}
}
