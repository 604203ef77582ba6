package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := stderrors.New("dial tcp 127.0.0.1:5431: connect: connection refused")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: base, want: ""},
		{name: "direct", err: Wrap(ConnectionFailed, "open hotel_dw", base), want: ConnectionFailed},
		{name: "wrapped by fmt", err: fmt.Errorf("explore: %w", New(KeyNotFound, "unknown role")), want: KeyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestE_ErrorAndUnwrap(t *testing.T) {
	base := stderrors.New("relation \"dim_customer\" does not exist")
	err := Wrap(QueryFailed, "classification breakdown", base)

	want := "query_error: classification breakdown: relation \"dim_customer\" does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, base) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
	if !Is(err, QueryFailed) || Is(err, ConnectionFailed) {
		t.Error("Is() reported the wrong kind")
	}
	if got := New(ConfigInvalid, "no roles").Error(); got != "config_invalid: no roles" {
		t.Errorf("New().Error() = %q", got)
	}
}
