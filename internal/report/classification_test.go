package report_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"catalognav/cli/internal/catalog"
	"catalognav/cli/internal/catalog/catalogtest"
	apperrors "catalognav/cli/internal/errors"
	"catalognav/cli/internal/report"
)

func open(t *testing.T, stmts ...string) *catalog.Conn {
	t.Helper()
	conn, err := catalog.Open(context.Background(), catalogtest.NewSQLite(t, stmts...))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestReport(t *testing.T) {
	stmts := append(append([]string(nil), catalogtest.HotelSchema...),
		`INSERT INTO dim_customer (customer_id, name, classification) VALUES (6, 'Fay', NULL)`)
	conn := open(t, stmts...)

	got, err := report.New("dim_customer", "classification").Report(context.Background(), conn)
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	want := []report.ClassificationCount{
		{Label: report.NullLabel, Count: 1},
		{Label: "Bronze", Count: 1},
		{Label: "Gold", Count: 3},
		{Label: "Silver", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Report() = %+v, want %+v", got, want)
	}
}

func TestReport_MissingTable(t *testing.T) {
	conn := open(t, `CREATE TABLE fact_booking (booking_id INTEGER PRIMARY KEY)`)

	_, err := report.New("dim_customer", "classification").Report(context.Background(), conn)
	if !apperrors.Is(err, apperrors.QueryFailed) {
		t.Fatalf("Report() error = %v, want query_error", err)
	}
	if !strings.Contains(err.Error(), "no such table") {
		t.Errorf("error should carry the database reason, got %q", err.Error())
	}
}

func TestReport_MissingColumn(t *testing.T) {
	conn := open(t, `CREATE TABLE dim_customer (customer_id INTEGER PRIMARY KEY, name TEXT)`)

	_, err := report.New("dim_customer", "classification").Report(context.Background(), conn)
	if !apperrors.Is(err, apperrors.QueryFailed) {
		t.Fatalf("Report() error = %v, want query_error", err)
	}
}

func TestApplies(t *testing.T) {
	r := report.New("dim_customer", "classification")
	if !r.Applies("dim_customer") {
		t.Error("Applies(dim_customer) = false")
	}
	for _, other := range []string{"fact_booking", "DIM_CUSTOMER", "dim_customer_v2", ""} {
		if r.Applies(other) {
			t.Errorf("Applies(%q) = true", other)
		}
	}
}

func TestQuery(t *testing.T) {
	conn := open(t)
	got := report.New("dim_customer", "classification").Query(conn)
	want := "SELECT `classification`, COUNT(*) FROM `main`.`dim_customer` GROUP BY `classification` ORDER BY 1"
	if got != want {
		t.Errorf("Query() = %s", got)
	}
}
