package catalog

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	"catalognav/cli/internal/dsn"
)

var pgPlaceholder = regexp.MustCompile(`\$(\d+)`)

// placeholders counts the distinct bind parameters of a query.
func placeholders(d dialect, query string) int {
	if _, ok := d.(postgresDialect); ok {
		seen := map[string]bool{}
		for _, m := range pgPlaceholder.FindAllStringSubmatch(query, -1) {
			seen[m[1]] = true
		}
		return len(seen)
	}
	return strings.Count(query, "?")
}

func TestDialectFor(t *testing.T) {
	tests := map[dsn.DBType]string{
		dsn.DBTypePostgreSQL: "pgx",
		dsn.DBTypeMySQL:      "mysql",
		dsn.DBTypeSQLite:     "sqlite3",
	}
	for typ, driver := range tests {
		d, ok := dialectFor(typ)
		if !ok || d.driverName() != driver {
			t.Errorf("dialectFor(%s) driver = %v, %v; want %s", typ, d, ok, driver)
		}
	}
	if _, ok := dialectFor(dsn.DBTypeUnknown); ok {
		t.Error("dialectFor(unknown) should fail")
	}
}

func TestDialect_ArgumentsMatchPlaceholders(t *testing.T) {
	for _, d := range []dialect{postgresDialect{}, mysqlDialect{}, sqliteDialect{}} {
		schema := d.defaultSchema()
		if got, want := placeholders(d, d.tablesQuery()), len(d.tablesArgs(schema)); got != want {
			t.Errorf("%s tables query has %d placeholders, %d args", d.driverName(), got, want)
		}
		if got, want := placeholders(d, d.columnsQuery()), len(d.columnsArgs(schema, "dim_customer")); got != want {
			t.Errorf("%s columns query has %d placeholders, %d args", d.driverName(), got, want)
		}
	}
	if got := placeholders(postgresDialect{}, postgresPrimaryKeysQuery); got != 2 {
		t.Errorf("postgres primary key query has %d placeholders, want 2", got)
	}
}

func TestPostgresDialect_Queries(t *testing.T) {
	d := postgresDialect{}

	if got := d.tablesArgs("public"); !reflect.DeepEqual(got, []any{"public"}) {
		t.Errorf("tablesArgs() = %v", got)
	}
	if !strings.Contains(d.tablesQuery(), "table_schema = $1 AND table_type = 'BASE TABLE'") {
		t.Errorf("tables query does not filter base tables of $1:\n%s", d.tablesQuery())
	}

	if got := d.columnsArgs("public", "dim_customer"); !reflect.DeepEqual(got, []any{"public", "dim_customer"}) {
		t.Errorf("columnsArgs() = %v, want [public dim_customer]", got)
	}
	q := d.columnsQuery()
	for _, frag := range []string{
		"table_schema = $1 AND table_name = $2",
		"THEN data_type || '(' || character_maximum_length || ')'",
		"ELSE data_type END",
		"is_nullable = 'YES'",
		"ORDER BY ordinal_position",
	} {
		if !strings.Contains(q, frag) {
			t.Errorf("columns query lacks %q:\n%s", frag, q)
		}
	}

	for _, frag := range []string{
		"JOIN information_schema.key_column_usage kc",
		"ON tc.constraint_name = kc.constraint_name",
		"AND tc.table_schema = kc.table_schema",
		"AND tc.table_name = kc.table_name",
		"tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'PRIMARY KEY'",
	} {
		if !strings.Contains(postgresPrimaryKeysQuery, frag) {
			t.Errorf("primary key query lacks %q:\n%s", frag, postgresPrimaryKeysQuery)
		}
	}
}

func TestMySQLDialect_Queries(t *testing.T) {
	d := mysqlDialect{}

	if d.defaultSchema() != "" {
		t.Errorf("defaultSchema() = %q, want empty for DATABASE()", d.defaultSchema())
	}
	if got := d.columnsArgs("", "dim_customer"); !reflect.DeepEqual(got, []any{"", "dim_customer"}) {
		t.Errorf("columnsArgs() = %v, want [\"\" dim_customer]", got)
	}
	for _, q := range []string{d.tablesQuery(), d.columnsQuery()} {
		if !strings.Contains(q, "TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE())") {
			t.Errorf("query does not fall back to DATABASE():\n%s", q)
		}
	}
	if !strings.Contains(d.columnsQuery(), "AND TABLE_NAME = ?") {
		t.Errorf("columns query does not bind the table second:\n%s", d.columnsQuery())
	}
	if got := d.qualify("", "dim_customer"); got != "`dim_customer`" {
		t.Errorf("qualify(\"\", dim_customer) = %s", got)
	}
	if got := d.qualify("hotel_dw", "dim_customer"); got != "`hotel_dw`.`dim_customer`" {
		t.Errorf("qualify(hotel_dw, dim_customer) = %s", got)
	}
}

func TestSQLiteDialect_ColumnsArgsOrder(t *testing.T) {
	d := sqliteDialect{}
	if got := d.columnsArgs("main", "dim_customer"); !reflect.DeepEqual(got, []any{"dim_customer", "main"}) {
		t.Errorf("columnsArgs() = %v, want [dim_customer main]", got)
	}
	if d.tablesArgs("main") != nil {
		t.Errorf("tablesArgs() = %v, want nil", d.tablesArgs("main"))
	}
}
