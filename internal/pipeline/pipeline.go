// Package pipeline runs the load, validate, build and export stages for a
// sidebar specification file.
package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/export"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/outline"
	"git.home.luguber.info/inful/docnav/internal/report"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/specload"
)

// Result is the outcome of a run.
type Result struct {
	Report   *report.Report
	Sidebar  *sidebar.Sidebar // nil unless the specification is valid
	Exported []Target
}

// Runner executes plans.
type Runner struct {
	recorder metrics.Recorder
}

// NewRunner creates a runner. A nil recorder disables metrics.
func NewRunner(recorder metrics.Recorder) *Runner {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Runner{recorder: recorder}
}

// LoadSpec reads the plan's specification file in its configured format.
func LoadSpec(p *Plan) (sidebar.Spec, error) {
	if p.Format != config.FormatMarkdown {
		return specload.LoadFile(p.SpecFile)
	}
	data, err := os.ReadFile(p.SpecFile)
	if err != nil {
		return nil, fmt.Errorf("read sidebar outline: %w", err)
	}
	spec, err := outline.Parse(data, p.DefaultName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.SpecFile, err)
	}
	return spec, nil
}

// Check loads and validates the specification, collecting every
// violation into the report. The returned error is non-nil only when the
// file cannot be loaded.
func (r *Runner) Check(ctx context.Context, p *Plan) (*Result, error) {
	start := time.Now()
	res, _, err := r.check(ctx, p)
	r.finish(p, start, res, err)
	return res, err
}

// Build checks the specification and, when it is valid, builds the tree
// and writes every export target. Violations are returned as a specification error
// alongside the result so callers can still print the report.
func (r *Runner) Build(ctx context.Context, p *Plan) (*Result, error) {
	start := time.Now()
	res, err := r.build(ctx, p)
	r.finish(p, start, res, err)
	return res, err
}

func (r *Runner) check(ctx context.Context, p *Plan) (*Result, sidebar.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	spec, err := LoadSpec(p)
	if err != nil {
		return nil, nil, errors.SpecLoadFailed(p.SpecFile, err)
	}

	decoded, err := sidebar.Decode(spec, p.Options...)
	var violations sidebar.Violations
	if err == nil {
		violations = sidebar.Validate(decoded, p.Options...)
	} else {
		var malformed *sidebar.MalformedSpecError
		if !stderrors.As(err, &malformed) {
			return nil, nil, errors.InternalError("unexpected decode failure", err)
		}
		// Shape errors stop decoding, so this is the only violation known.
		decoded = nil
		violations = sidebar.Violations{{
			Kind:    sidebar.KindMalformed,
			Section: malformed.Section,
			Path:    malformed.Path,
			Index:   malformed.Index,
			Message: malformed.Reason,
		}}
	}

	res := &Result{Report: report.New(p.SpecFile, decoded, violations)}
	if len(violations) == 0 {
		res.Sidebar = decoded
	}
	return res, spec, nil
}

func (r *Runner) build(ctx context.Context, p *Plan) (*Result, error) {
	res, spec, err := r.check(ctx, p)
	if err != nil {
		return res, err
	}
	if vs := res.Report.Violations; len(vs) > 0 {
		return res, errors.SpecInvalid(p.SpecFile, len(vs), vs.Err())
	}

	sb, err := sidebar.Build(spec, p.Options...)
	if err != nil {
		// Validate and Build disagree; this is a bug, not bad input.
		return res, errors.InternalError("sidebar build failed after validation passed", err)
	}
	res.Sidebar = sb

	for _, t := range p.Targets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := export.WriteFile(t.Path, func(w io.Writer) error { return t.Render(w, sb) }); err != nil {
			return res, errors.ExportFailed(t.Name, t.Path, err)
		}
		slog.Info("Exported sidebar", logfields.Target(t.Name), logfields.Path(t.Path))
		res.Exported = append(res.Exported, t)
	}
	return res, nil
}

func (r *Runner) finish(p *Plan, start time.Time, res *Result, err error) {
	elapsed := time.Since(start)
	r.recorder.ObserveBuildDuration(elapsed)

	attrs := []any{logfields.File(p.SpecFile), logfields.DurationMS(float64(elapsed.Microseconds()) / 1000)}
	if res != nil {
		attrs = append(attrs, logfields.RunID(res.Report.RunID))
		for _, v := range res.Report.Violations {
			r.recorder.IncViolation(string(v.Kind))
		}
	}

	switch {
	case res != nil && !res.Report.OK():
		r.recorder.IncBuildOutcome(metrics.OutcomeInvalid)
		slog.Warn("Sidebar specification has violations", append(attrs, logfields.Violations(len(res.Report.Violations)))...)
	case err != nil:
		r.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		slog.Error("Sidebar run failed", append(attrs, logfields.Error(err))...)
	default:
		r.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
		r.recorder.SetTreeSize(res.Report.Categories, res.Report.Docs)
		slog.Info("Sidebar specification is valid", append(attrs,
			logfields.Categories(res.Report.Categories),
			logfields.Docs(res.Report.Docs))...)
	}
}
