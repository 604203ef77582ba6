// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package report computes the classification breakdown of the customer dimension.
package report

import (
	"context"
	"database/sql"
	"fmt"

	"catalognav/cli/internal/catalog"
	apperrors "catalognav/cli/internal/errors"
)

// NullLabel stands in for a NULL classification.
const NullLabel = "(none)"

// ClassificationCount is one bar of the breakdown chart.
type ClassificationCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Querier is the part of catalog.Conn the reporter needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QualifiedName(table string) string
	QuoteIdent(name string) string
}

var _ Querier = (*catalog.Conn)(nil)

// Reporter groups one table by one column.
type Reporter struct {
	Table  string
	Column string
}

// New returns a Reporter for table grouped by column.
func New(table, column string) *Reporter {
	return &Reporter{Table: table, Column: column}
}

// Applies reports whether the breakdown belongs to table.
func (r *Reporter) Applies(table string) bool {
	return table == r.Table
}

// Query returns the grouping statement for q's dialect.
func (r *Reporter) Query(q Querier) string {
	col := q.QuoteIdent(r.Column)
	return fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s ORDER BY 1", col, q.QualifiedName(r.Table), col)
}

// Report runs the grouping query. Failures, including a missing table or
// column, are query_error.
func (r *Reporter) Report(ctx context.Context, q Querier) ([]ClassificationCount, error) {
	rows, err := q.QueryContext(ctx, r.Query(q))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "classification breakdown of "+r.Table, err)
	}
	defer rows.Close()

	var out []ClassificationCount
	for rows.Next() {
		var (
			label sql.NullString
			count int64
		)
		if err := rows.Scan(&label, &count); err != nil {
			return nil, apperrors.Wrap(apperrors.QueryFailed, "scan classification row", err)
		}
		c := ClassificationCount{Label: label.String, Count: count}
		if !label.Valid {
			c.Label = NullLabel
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "classification breakdown of "+r.Table, err)
	}
	return out, nil
}
