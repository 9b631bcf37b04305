// Package metrics records check and render metrics for docsite runs.
//
// Components receive a Recorder through injection and default to
// NoopRecorder, so metrics stay optional:
//
//	recorder := metrics.Recorder(metrics.NoopRecorder{})
//	if metricsFile != "" {
//	    recorder = metrics.NewPrometheusRecorder(nil)
//	}
//
// PrometheusRecorder keeps its own registry and can write it in the node
// exporter textfile format with WriteTextfile, which suits one-shot CI runs
// where nothing scrapes the process.
package metrics
