// Package metrics records hxhooks demo activity.
//
// Components receive a Recorder and default to NoopRecorder, so nothing
// needs a nil check. PrometheusRecorder is wired in when metrics are
// enabled in config, and also satisfies component.Observer so the
// registry can report per-action request latency.
package metrics
