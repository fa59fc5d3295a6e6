// Package report defines where timing results go.
//
// A timed call produces one Invocation (name, start, end) and hands it to a
// Reporter. Several sinks are provided:
//   - Console : the human-readable line "Finished '<name>' in 0.0000 seconds"
//   - Log     : a structured slog record
//   - Metrics : Prometheus counter, histogram and gauges labelled by function
//   - Trace   : an OpenTelemetry span spanning the call
//
// Multi combines sinks. Invocations are never retained beyond the call that
// produced them, except for the per-function aggregates kept by Metrics.
package report
