// Package pii flags columns whose names mark them as personally identifiable.
// Matching is exact and case-sensitive against a fixed set supplied at startup.
package pii

import "catalognav/cli/internal/catalog"

// DefaultColumns is the built-in sensitive column list of the hotel warehouse.
var DefaultColumns = []string{
	"name",
	"email",
	"phone_number",
	"credit_card",
	"arrival_date",
	"reservation_status_date",
}

// Classifier is a fixed-set membership test. The zero value flags nothing.
type Classifier struct {
	set map[string]struct{}
}

// NewClassifier returns a Classifier over columns.
func NewClassifier(columns []string) *Classifier {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &Classifier{set: set}
}

// IsSensitive reports whether column is in the set.
func (c *Classifier) IsSensitive(column string) bool {
	if c == nil {
		return false
	}
	_, ok := c.set[column]
	return ok
}

// Annotate sets Sensitive on every column in place and returns how many were flagged.
func (c *Classifier) Annotate(cols []catalog.ColumnMetadata) int {
	n := 0
	for i := range cols {
		cols[i].Sensitive = c.IsSensitive(cols[i].Name)
		if cols[i].Sensitive {
			n++
		}
	}
	return n
}
