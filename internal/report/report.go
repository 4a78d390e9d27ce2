// Package report formats sidebar validation results for people and tools.
package report

import (
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"github.com/google/uuid"
)

// Report summarizes one validation run over a specification file.
type Report struct {
	RunID      string
	Source     string
	Sections   []string
	Categories int
	Docs       int
	Violations sidebar.Violations
}

// New builds a report for sb (which may be nil when decoding failed) and
// tags it with a fresh run id.
func New(source string, sb *sidebar.Sidebar, vs sidebar.Violations) *Report {
	r := &Report{
		RunID:      uuid.NewString(),
		Source:     source,
		Violations: vs,
	}
	if sb != nil {
		r.Sections = sb.Names()
		r.Categories, r.Docs = sb.Counts()
	}
	return r
}

// OK reports whether the run found no violations.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}
