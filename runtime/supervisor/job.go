package supervisor

import (
	"fmt"
	"sync"

	"github.com/viant/fluxpath/model/carrier"
)

// JobState is a state of the per-carrier re-queue state machine
type JobState int

const (
	StateQueued JobState = iota
	StateRunning
	StateAwaitingPredicate
	StateRequeued
	StateDone
	StateFailed
)

var stateNames = map[JobState]string{
	StateQueued:            "queued",
	StateRunning:           "running",
	StateAwaitingPredicate: "awaitingPredicate",
	StateRequeued:          "requeued",
	StateDone:              "done",
	StateFailed:            "failed",
}

func (s JobState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal returns true for Done and Failed
func (s JobState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// Predicate is invoked after every traversal. Returning true re-queues the
// carrier for another traversal; the predicate may reset the itinerary.
type Predicate func(c *carrier.Carrier) (bool, error)

// Job tracks one carrier and its predicate loop
type Job struct {
	Carrier   *carrier.Carrier
	predicate Predicate
	session   *Session

	mux        sync.Mutex
	state      JobState
	iterations int
	err        error
	done       chan struct{}
}

// Session returns the session owning the job
func (j *Job) Session() *Session {
	return j.session
}

// State returns the current state
func (j *Job) State() JobState {
	j.mux.Lock()
	defer j.mux.Unlock()
	return j.state
}

// Iterations returns the number of started traversals
func (j *Job) Iterations() int {
	j.mux.Lock()
	defer j.mux.Unlock()
	return j.iterations
}

// Err returns the error that failed the job
func (j *Job) Err() error {
	j.mux.Lock()
	defer j.mux.Unlock()
	return j.err
}

// Done is closed once the job reaches a terminal state
func (j *Job) Done() <-chan struct{} {
	return j.done
}

func (j *Job) transition(state JobState) {
	j.mux.Lock()
	defer j.mux.Unlock()
	j.state = state
	if state == StateRunning {
		j.iterations++
	}
}

func (j *Job) finish(err error) {
	j.mux.Lock()
	defer j.mux.Unlock()
	j.err = err
	j.state = StateDone
	if err != nil {
		j.state = StateFailed
	}
	close(j.done)
}

// evaluate runs the predicate converting panics into errors
func (j *Job) evaluate() (again bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			again = false
			err = &PredicateError{CarrierID: j.Carrier.ID, Iteration: j.Iterations(), Err: panicError(r)}
		}
	}()
	again, err = j.predicate(j.Carrier)
	if err != nil {
		return false, &PredicateError{CarrierID: j.Carrier.ID, Iteration: j.Iterations(), Err: err}
	}
	return again, nil
}

func newJob(c *carrier.Carrier, predicate Predicate, session *Session) *Job {
	return &Job{
		Carrier:   c,
		predicate: predicate,
		session:   session,
		state:     StateQueued,
		done:      make(chan struct{}),
	}
}

func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("predicate panic: %w", err)
	}
	return fmt.Errorf("predicate panic: %v", r)
}
