// Package metrics provides constants used across metric definitions.
package metrics

// Operation names recorded through Recorder.
const (
	// OpSessionSave is a unit-of-work commit.
	OpSessionSave = "session_save"
	// OpSeed is a seed loader run.
	OpSeed = "seed"
	// OpHTTPRequest is one handled API request.
	OpHTTPRequest = "http_request"
)

// Outcome labels.
const (
	StatusCommitted = "committed"
	StatusNoop      = "noop"
	StatusRollback  = "rollback"
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusSkipped   = "skipped"
)

// Histogram bucket layout.
const (
	// BucketStart1ms is the starting bucket for 1ms histograms.
	BucketStart1ms = 0.001
	// BucketFactor2 is the common exponential growth factor of 2 for histogram buckets.
	BucketFactor2 = 2
	// BucketCount15 defines 15 exponential buckets (1ms to ~16s).
	BucketCount15 = 15
	// BucketCount8 defines 8 exponential buckets.
	BucketCount8 = 8
)
