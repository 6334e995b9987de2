package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups          uint64
	SignupsInvalid   uint64
	SignupsDuplicate uint64
	SigninsSucceeded uint64
	SigninsFailed    uint64
	TokensMissing    uint64
	TokensInvalid    uint64
	TodosCreated     uint64
	TodosUpdated     uint64
	TodosDeleted     uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	signups          atomic.Uint64
	signupsInvalid   atomic.Uint64
	signupsDuplicate atomic.Uint64
	signinsSucceeded atomic.Uint64
	signinsFailed    atomic.Uint64
	tokensMissing    atomic.Uint64
	tokensInvalid    atomic.Uint64
	todosCreated     atomic.Uint64
	todosUpdated     atomic.Uint64
	todosDeleted     atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:          m.signups.Load(),
		SignupsInvalid:   m.signupsInvalid.Load(),
		SignupsDuplicate: m.signupsDuplicate.Load(),
		SigninsSucceeded: m.signinsSucceeded.Load(),
		SigninsFailed:    m.signinsFailed.Load(),
		TokensMissing:    m.tokensMissing.Load(),
		TokensInvalid:    m.tokensInvalid.Load(),
		TodosCreated:     m.todosCreated.Load(),
		TodosUpdated:     m.todosUpdated.Load(),
		TodosDeleted:     m.todosDeleted.Load(),
	}
}

// IncSignup increments the successful signup counter.
func (m *InMemoryRecorder) IncSignup() {
	m.signups.Add(1)
}

// IncSignupRejected increments the rejected signup counter for reason.
func (m *InMemoryRecorder) IncSignupRejected(reason string) {
	switch reason {
	case "duplicate":
		m.signupsDuplicate.Add(1)
	default:
		m.signupsInvalid.Add(1)
	}
}

// IncSignin increments the signin counter by outcome.
func (m *InMemoryRecorder) IncSignin(success bool) {
	if success {
		m.signinsSucceeded.Add(1)
		return
	}
	m.signinsFailed.Add(1)
}

// IncTokenRejected increments the rejected token counter for reason.
func (m *InMemoryRecorder) IncTokenRejected(reason string) {
	switch reason {
	case "missing":
		m.tokensMissing.Add(1)
	default:
		m.tokensInvalid.Add(1)
	}
}

// IncTodoCreated increments todo created counter.
func (m *InMemoryRecorder) IncTodoCreated() {
	m.todosCreated.Add(1)
}

// IncTodoUpdated increments todo updated counter.
func (m *InMemoryRecorder) IncTodoUpdated() {
	m.todosUpdated.Add(1)
}

// IncTodoDeleted increments todo deleted counter.
func (m *InMemoryRecorder) IncTodoDeleted() {
	m.todosDeleted.Add(1)
}
