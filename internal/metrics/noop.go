package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncLetterCreated is a no-op.
func (n *NoopRecorder) IncLetterCreated() {}

// IncLetterEdited is a no-op.
func (n *NoopRecorder) IncLetterEdited() {}

// IncLetterDeleted is a no-op.
func (n *NoopRecorder) IncLetterDeleted() {}

// IncHeartGiven is a no-op.
func (n *NoopRecorder) IncHeartGiven() {}

// IncHeartDuplicate is a no-op.
func (n *NoopRecorder) IncHeartDuplicate() {}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin() {}

// IncLoginFailed is a no-op.
func (n *NoopRecorder) IncLoginFailed() {}
