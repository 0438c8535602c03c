package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	LettersCreated  uint64
	LettersEdited   uint64
	LettersDeleted  uint64
	HeartsGiven     uint64
	HeartDuplicates uint64
	Signups         uint64
	Logins          uint64
	LoginsFailed    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	lettersCreated  uint64
	lettersEdited   uint64
	lettersDeleted  uint64
	heartsGiven     uint64
	heartDuplicates uint64
	signups         uint64
	logins          uint64
	loginsFailed    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		LettersCreated:  atomic.LoadUint64(&m.lettersCreated),
		LettersEdited:   atomic.LoadUint64(&m.lettersEdited),
		LettersDeleted:  atomic.LoadUint64(&m.lettersDeleted),
		HeartsGiven:     atomic.LoadUint64(&m.heartsGiven),
		HeartDuplicates: atomic.LoadUint64(&m.heartDuplicates),
		Signups:         atomic.LoadUint64(&m.signups),
		Logins:          atomic.LoadUint64(&m.logins),
		LoginsFailed:    atomic.LoadUint64(&m.loginsFailed),
	}
}

// IncLetterCreated increments the letters created counter.
func (m *InMemoryRecorder) IncLetterCreated() {
	atomic.AddUint64(&m.lettersCreated, 1)
}

// IncLetterEdited increments the letters edited counter.
func (m *InMemoryRecorder) IncLetterEdited() {
	atomic.AddUint64(&m.lettersEdited, 1)
}

// IncLetterDeleted increments the letters deleted counter.
func (m *InMemoryRecorder) IncLetterDeleted() {
	atomic.AddUint64(&m.lettersDeleted, 1)
}

// IncHeartGiven increments the hearts given counter.
func (m *InMemoryRecorder) IncHeartGiven() {
	atomic.AddUint64(&m.heartsGiven, 1)
}

// IncHeartDuplicate increments the duplicate heart attempt counter.
func (m *InMemoryRecorder) IncHeartDuplicate() {
	atomic.AddUint64(&m.heartDuplicates, 1)
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the successful login counter.
func (m *InMemoryRecorder) IncLogin() {
	atomic.AddUint64(&m.logins, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}
