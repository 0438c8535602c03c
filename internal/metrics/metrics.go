// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Letter management metrics
	IncLetterCreated()
	IncLetterEdited()
	IncLetterDeleted()

	// Reaction metrics
	IncHeartGiven()
	IncHeartDuplicate()

	// Account metrics
	IncSignup()
	IncLogin()
	IncLoginFailed()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
