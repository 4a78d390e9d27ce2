// Package metrics provides observability hooks for sidebar builds.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so callers never nil-check; PrometheusRecorder is swapped in
// when the watch command is started with a metrics listen address:
//
//	reg := metrics.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
