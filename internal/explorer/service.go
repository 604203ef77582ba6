// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package explorer runs the connect-and-inspect action behind both the web
// dashboard and the terminal explorer.
package explorer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"catalognav/cli/internal/catalog"
	"catalognav/cli/internal/config"
	"catalognav/cli/internal/dsn"
	apperrors "catalognav/cli/internal/errors"
	"catalognav/cli/internal/logging"
	"catalognav/cli/internal/pii"
	"catalognav/cli/internal/report"
)

const (
	failedMessage  = "Failed to connect or load metadata"
	warningMessage = "Cannot access classification breakdown"
)

// DescriptorBuilder turns an environment and a role into connection parameters.
type DescriptorBuilder interface {
	Build(environment, role string) (dsn.Descriptor, error)
	Environment(name string) (config.Environment, bool)
}

// Request is the user's selection for one action.
type Request struct {
	Environment string `json:"environment"`
	Role        string `json:"role"`
}

// Service wires the builder, inspector, classifier and reporter together.
type Service struct {
	builder    DescriptorBuilder
	classifier *pii.Classifier
	reporter   *report.Reporter
	metrics    *Metrics
	logger     *pterm.Logger
}

// New creates a Service. metrics may be nil.
func New(builder DescriptorBuilder, classifier *pii.Classifier, reporter *report.Reporter, metrics *Metrics) *Service {
	return &Service{
		builder:    builder,
		classifier: classifier,
		reporter:   reporter,
		metrics:    metrics,
	}
}

// WithLogger returns a copy of s that logs to l instead of the process logger.
func (s *Service) WithLogger(l *pterm.Logger) *Service {
	cp := *s
	cp.logger = l
	return &cp
}

func (s *Service) log() *pterm.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logging.Logger()
}

// Explore connects to the selected environment as the selected role and
// reads every table's columns. It never returns nil and never panics on
// database errors: build, connect and listing failures halt the action and
// set View.Error; a failed breakdown only sets that table's Warning.
func (s *Service) Explore(ctx context.Context, req Request) *View {
	start := time.Now()
	v := &View{
		ActionID:    uuid.NewString(),
		Environment: req.Environment,
		Role:        req.Role,
		Tables:      []TableView{},
	}
	flagged := s.explore(ctx, req, v)

	elapsed := time.Since(start)
	s.metrics.observe(s.metricEnvironment(req.Environment), v.Outcome(), flagged, elapsed)

	l := s.log()
	args := l.Args("action", v.ActionID, "environment", v.Environment, "role", v.Role, "tables", len(v.Tables), "duration", elapsed.Round(time.Millisecond).String())
	switch v.Outcome() {
	case OutcomeError:
		l.Error("explore failed", append(args, l.Args("kind", v.ErrorKind, "error", v.Error)...))
	case OutcomeWarning:
		l.Warn("explore finished with warnings", args)
	default:
		l.Info("explore finished", args)
	}
	return v
}

// metricEnvironment keeps the metric label set bounded to configured names.
func (s *Service) metricEnvironment(name string) string {
	if _, ok := s.builder.Environment(name); ok {
		return name
	}
	return UnknownEnvironment
}

func (s *Service) explore(ctx context.Context, req Request, v *View) int {
	d, err := s.builder.Build(req.Environment, req.Role)
	if err != nil {
		s.fail(v, err)
		return 0
	}
	v.Username = d.Username
	v.Database = d.Database
	v.Connection = d.Redacted()
	v.NoAuth = d.NoAuth()

	conn, err := catalog.Open(ctx, d)
	if err != nil {
		s.fail(v, err)
		return 0
	}
	defer conn.Close()

	tables, err := conn.ListTables(ctx)
	if err != nil {
		s.fail(v, err)
		return 0
	}

	flagged := 0
	for _, table := range tables {
		cols, err := conn.ListColumns(ctx, table)
		if err != nil {
			s.fail(v, err)
			return flagged
		}
		flagged += s.classifier.Annotate(cols)
		tv := TableView{Name: table, Columns: cols}

		if s.reporter != nil && s.reporter.Applies(table) {
			counts, err := s.reporter.Report(ctx, conn)
			if err != nil {
				tv.Warning = logging.PresentError(warningMessage, err)
			} else {
				tv.Chart = counts
			}
		}
		v.Tables = append(v.Tables, tv)
	}
	return flagged
}

func (s *Service) fail(v *View, err error) {
	v.Error = logging.PresentError(failedMessage, err)
	v.ErrorKind = string(apperrors.KindOf(err))
	if apperrors.Is(err, apperrors.ConnectionFailed) {
		v.Hint = logging.HintFor(err)
	}
}
