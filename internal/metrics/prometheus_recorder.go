package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	violations    *prom.CounterVec
	treeNodes     *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "build_duration_seconds",
			Help:      "Duration of sidebar load, validation and export",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "build_outcomes_total",
			Help:      "Sidebar builds by final status",
		}, []string{"outcome"}),
		violations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "violations_total",
			Help:      "Sidebar invariant violations by kind",
		}, []string{"kind"}),
		treeNodes: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "tree_nodes",
			Help:      "Nodes in the last successfully built sidebar",
		}, []string{"type"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.violations, pr.treeNodes)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncViolation(kind string) {
	if p == nil {
		return
	}
	p.violations.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetTreeSize(categories, docs int) {
	if p == nil {
		return
	}
	p.treeNodes.WithLabelValues("category").Set(float64(categories))
	p.treeNodes.WithLabelValues("doc").Set(float64(docs))
}
