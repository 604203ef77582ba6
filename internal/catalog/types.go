// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

// ColumnMetadata describes one column as reported by the database catalog.
// Sensitive is not read from the database; the PII classifier fills it in.
type ColumnMetadata struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
	Sensitive  bool   `json:"is_sensitive"`
}

// TableMetadata is a table name with its columns in definition order.
type TableMetadata struct {
	Name    string           `json:"name"`
	Columns []ColumnMetadata `json:"columns"`
}
