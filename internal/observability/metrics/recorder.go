package metrics

// Recorder defines a minimal interface for recording metrics.
// Components depend on it rather than on concrete Prometheus collectors.
type Recorder interface {
	// RecordOperation records an operation outcome, e.g. ("session_save", "committed").
	RecordOperation(operation, status string)

	// RecordDuration records how long an operation took, in seconds.
	RecordDuration(operation string, seconds float64)

	// RecordError records a failure with its error category.
	RecordError(operation, errorType string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) RecordOperation(string, string) {}
func (NopRecorder) RecordDuration(string, float64) {}
func (NopRecorder) RecordError(string, string) {}
