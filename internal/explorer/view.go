// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package explorer

import (
	"fmt"

	"catalognav/cli/internal/catalog"
	"catalognav/cli/internal/report"
)

// View is the result of one explore action, ready for a presentation surface.
// When Error is set the action halted and Tables holds whatever was read
// before the failure.
type View struct {
	ActionID    string      `json:"action_id"`
	Environment string      `json:"environment"`
	Role        string      `json:"role"`
	Username    string      `json:"username,omitempty"`
	Database    string      `json:"database,omitempty"`
	Connection  string      `json:"connection,omitempty"`
	NoAuth      bool        `json:"no_auth"`
	Tables      []TableView `json:"tables"`
	Error       string      `json:"error,omitempty"`
	ErrorKind   string      `json:"error_kind,omitempty"`
	Hint        string      `json:"hint,omitempty"`
}

// TableView is one table of the explorer with its optional breakdown.
type TableView struct {
	Name    string                       `json:"name"`
	Columns []catalog.ColumnMetadata     `json:"columns"`
	Chart   []report.ClassificationCount `json:"chart,omitempty"`
	Warning string                       `json:"warning,omitempty"`
}

// Failed reports whether the action halted.
func (v *View) Failed() bool { return v.Error != "" }

// Outcome summarizes the action for metrics.
func (v *View) Outcome() string {
	if v.Failed() {
		return OutcomeError
	}
	for _, t := range v.Tables {
		if t.Warning != "" {
			return OutcomeWarning
		}
	}
	return OutcomeOK
}

// ConnectedMessage is the success line shown once the connection is open.
func (v *View) ConnectedMessage() string {
	return fmt.Sprintf("Connected as `%s` to `%s`", v.Role, v.Database)
}

// AccessMessage describes the credential the role used.
func (v *View) AccessMessage() string {
	if v.NoAuth {
		return fmt.Sprintf("Role %s connects as %s with no password configured", v.Role, v.Username)
	}
	return fmt.Sprintf("Role %s connects as %s with a password", v.Role, v.Username)
}

// SensitiveCount returns the number of flagged columns in the table.
func (t TableView) SensitiveCount() int {
	n := 0
	for _, c := range t.Columns {
		if c.Sensitive {
			n++
		}
	}
	return n
}
