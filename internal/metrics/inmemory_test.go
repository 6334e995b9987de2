package metrics

import (
	"sync"
	"testing"
)

func TestInMemoryRecorder_Counts(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	m.IncSignup()
	m.IncSignupRejected("duplicate")
	m.IncSignupRejected("invalid")
	m.IncSignin(true)
	m.IncSignin(false)
	m.IncSignin(false)
	m.IncTokenRejected("missing")
	m.IncTokenRejected("invalid")
	m.IncTodoCreated()
	m.IncTodoUpdated()
	m.IncTodoDeleted()

	got := m.Snapshot()
	want := Snapshot{
		Signups:          1,
		SignupsInvalid:   1,
		SignupsDuplicate: 1,
		SigninsSucceeded: 1,
		SigninsFailed:    2,
		TokensMissing:    1,
		TokensInvalid:    1,
		TodosCreated:     1,
		TodosUpdated:     1,
		TodosDeleted:     1,
	}
	if got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestInMemoryRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncTodoCreated()
		}()
	}
	wg.Wait()

	if got := m.Snapshot().TodosCreated; got != 50 {
		t.Errorf("TodosCreated = %d, want 50", got)
	}
}

func TestNoopRecorder_ImplementsRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder = NewNoop()
	r.IncSignup()
	r.IncTodoDeleted()
}
