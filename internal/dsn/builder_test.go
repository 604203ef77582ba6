package dsn

import (
	"reflect"
	"testing"

	"catalognav/cli/internal/config"
	"catalognav/cli/internal/credentials"
	apperrors "catalognav/cli/internal/errors"
)

func defaultBuilder() *Builder {
	cfg := config.Default()
	return NewBuilder(cfg.Database, cfg.Environments, credentials.NewDirectory(cfg.Roles))
}

func TestBuilder_Build(t *testing.T) {
	d, err := defaultBuilder().Build("hotel_dw_test", "analyst_1")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := Descriptor{
		Driver:   DBTypePostgreSQL,
		Host:     "localhost",
		Port:     5431,
		Database: "hotel_dw_test",
		Username: "analyst_1",
		Password: "",
	}
	if !reflect.DeepEqual(d, want) {
		t.Errorf("Build() = %+v, want %+v", d, want)
	}
	if !d.NoAuth() {
		t.Error("expected no-auth descriptor")
	}

	conn, err := d.ConnString()
	if err != nil {
		t.Fatalf("ConnString() error: %v", err)
	}
	if conn != "postgresql://analyst_1@localhost:5431/hotel_dw_test" {
		t.Errorf("ConnString() = %q", conn)
	}
}

func TestBuilder_BuildIsPure(t *testing.T) {
	b := defaultBuilder()
	for _, env := range b.Environments() {
		for _, role := range []string{"dba_1", "developer_1", "engineer_1", "analyst_1"} {
			first, err1 := b.Build(env, role)
			second, err2 := b.Build(env, role)
			if err1 != nil || err2 != nil {
				t.Fatalf("Build(%s, %s) errors: %v %v", env, role, err1, err2)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("Build(%s, %s) not deterministic", env, role)
			}
			if first.Database != env || first.Username != role {
				t.Errorf("Build(%s, %s) = %+v", env, role, first)
			}
		}
	}
}

func TestBuilder_UnknownKeys(t *testing.T) {
	b := defaultBuilder()
	if _, err := b.Build("hotel_dw_staging", "analyst_1"); !apperrors.Is(err, apperrors.KeyNotFound) {
		t.Errorf("unknown environment error = %v", err)
	}
	if _, err := b.Build("hotel_dw", "root"); !apperrors.Is(err, apperrors.KeyNotFound) {
		t.Errorf("unknown role error = %v", err)
	}
}

func TestBuilder_EnvironmentDSNOverride(t *testing.T) {
	cfg := config.Default()
	envs := []config.Environment{
		{Name: "hotel_dw", DSN: "mysql://ignored@mysql.internal:3307/hotel_dw?parseTime=true"},
		{Name: "local", DSN: "sqlite://testdata/local.db"},
		{Name: "broken", DSN: "oracle://x@y/z"},
	}
	b := NewBuilder(cfg.Database, envs, credentials.NewDirectory(cfg.Roles))

	d, err := b.Build("hotel_dw", "dba_1")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if d.Driver != DBTypeMySQL || d.Host != "mysql.internal" || d.Port != 3307 {
		t.Errorf("override not applied: %+v", d)
	}
	if d.Username != "dba_1" {
		t.Errorf("role credentials must win over DSN user, got %q", d.Username)
	}
	if d.Params["parseTime"] != "true" {
		t.Errorf("params = %v", d.Params)
	}

	d, err = b.Build("local", "dba_1")
	if err != nil {
		t.Fatalf("Build(local) error: %v", err)
	}
	if conn, _ := d.ConnString(); conn != "file:testdata/local.db?mode=ro" {
		t.Errorf("ConnString() = %q", conn)
	}

	if _, err := b.Build("broken", "dba_1"); !apperrors.Is(err, apperrors.ConfigInvalid) {
		t.Errorf("broken DSN error = %v", err)
	}
}

func TestDescriptor_Redacted(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want string
	}{
		{
			name: "no auth",
			d:    Descriptor{Driver: DBTypePostgreSQL, Host: "localhost", Port: 5431, Database: "hotel_dw", Username: "dba_1"},
			want: "postgresql://dba_1@localhost:5431/hotel_dw",
		},
		{
			name: "password masked",
			d:    Descriptor{Driver: DBTypeMySQL, Host: "db", Port: 3306, Database: "hotel_dw", Username: "dba_1", Password: "hunter2"},
			want: "mysql://dba_1:***@db:3306/hotel_dw",
		},
		{
			name: "sqlite",
			d:    Descriptor{Driver: DBTypeSQLite, Database: "local.db"},
			want: "sqlite://local.db",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Redacted(); got != tt.want {
				t.Errorf("Redacted() = %q, want %q", got, tt.want)
			}
		})
	}
}
