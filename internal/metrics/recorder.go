package metrics

import "time"

// OutcomeLabel enumerates build outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeInvalid OutcomeLabel = "invalid" // specification rejected by validation
	OutcomeFailed  OutcomeLabel = "failed"  // load or export failure
)

// Recorder defines observability hooks for sidebar builds.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome OutcomeLabel)
	IncViolation(kind string)
	SetTreeSize(categories, docs int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(OutcomeLabel)       {}
func (NoopRecorder) IncViolation(string)                {}
func (NoopRecorder) SetTreeSize(int, int)               {}
