// Package supervisor schedules carrier traversals within a tree of named
// sessions and drives predicate gated re-traversal loops.
package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/viant/fluxpath/internal/logging"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/runtime/network"
	"github.com/viant/fluxpath/service/messaging"
	"github.com/viant/fluxpath/tracing"
	"golang.org/x/sync/semaphore"
)

// DefaultSession names the root session
const DefaultSession = "default"

// Supervisor runs carriers through a network. Session scoping (NewSession,
// Close) is meant to be driven by a single controlling goroutine; work added
// to sessions runs concurrently.
type Supervisor struct {
	network       *network.Network
	logger        logr.Logger
	observer      Observer
	workers       *semaphore.Weighted
	maxIterations int
	pollInterval  time.Duration

	mux     sync.Mutex
	root    *Session
	current *Session
}

// Network returns the routing engine
func (s *Supervisor) Network() *network.Network {
	return s.network
}

// Root returns the default session
func (s *Supervisor) Root() *Session {
	return s.root
}

// Current returns the innermost open session
func (s *Supervisor) Current() *Session {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.current
}

// NewSession opens a session and makes it current; callers must Close it,
// typically with defer. When inherit is not nil the session inherits from it.
func (s *Supervisor) NewSession(name string, inherit *Session) *Session {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret := newSession(s, name, inherit)
	ret.previous = s.current
	s.current = ret
	s.logger.V(1).Info("session opened", "session", name, "inherit", inherit != nil)
	return ret
}

// WithSession runs fn within a new session scope
func (s *Supervisor) WithSession(name string, inherit *Session, fn func(session *Session) error) error {
	session := s.NewSession(name, inherit)
	defer session.Close()
	return fn(session)
}

// Add enqueues the carrier on the current session
func (s *Supervisor) Add(ctx context.Context, c *carrier.Carrier, inThread bool, predicate Predicate) (*Job, error) {
	return s.Current().Add(ctx, c, inThread, predicate)
}

// Start runs pending carriers of the current session
func (s *Supervisor) Start(ctx context.Context, inThread bool) error {
	return s.Current().Start(ctx, inThread)
}

// Wait joins work tracked by the current session
func (s *Supervisor) Wait() error {
	return s.Current().Wait()
}

func (s *Supervisor) closeSession(session *Session) {
	session.mux.Lock()
	session.closed = true
	session.mux.Unlock()

	s.mux.Lock()
	defer s.mux.Unlock()
	if session == s.root || s.current != session {
		return
	}
	s.current = session.previous
	for s.current != s.root && s.current.Closed() {
		s.current = s.current.previous
	}
	s.logger.V(1).Info("session closed", "session", session.Name)
}

func (s *Supervisor) spawn(ctx context.Context, session *Session, job *Job, msg messaging.Message[Job]) {
	session.track()
	go s.execute(ctx, session, job, msg)
}

// execute runs the job loop; the session must already track the job
func (s *Supervisor) execute(ctx context.Context, session *Session, job *Job, msg messaging.Message[Job]) {
	err := s.loop(ctx, session, job)
	job.finish(err)
	if msg != nil {
		if err != nil {
			_ = msg.Nack(err)
		} else {
			_ = msg.Ack()
		}
	}
	if err != nil {
		s.logger.Error(err, "carrier failed", "session", session.Name, "carrier", job.Carrier.ID, "iterations", job.Iterations())
	}
	s.observer.OnJobDone(session.Name, job)
	session.complete(err)
}

// loop drives Queued -> Running -> AwaitingPredicate -> Requeued -> Running ... -> Done | Failed
func (s *Supervisor) loop(ctx context.Context, session *Session, job *Job) (err error) {
	s.observer.OnJobStart(session.Name, job)
	ctx, span := tracing.StartSpan(ctx, "fluxpath.job", map[string]string{
		tracing.CarrierIDKey: job.Carrier.ID,
		tracing.SessionKey:   session.Name,
	})
	defer func() {
		span.WithInt("fluxpath.iterations", job.Iterations())
		tracing.EndSpan(span, err)
	}()
	for {
		err = s.traverse(ctx, job)
		s.observer.OnIteration(session.Name, job, err)
		if err != nil || job.predicate == nil {
			return err
		}
		job.transition(StateAwaitingPredicate)
		var again bool
		again, err = job.evaluate()
		if err != nil || !again {
			return err
		}
		if s.maxIterations > 0 && job.Iterations() >= s.maxIterations {
			s.logger.Info("iteration limit reached", "session", session.Name, "carrier", job.Carrier.ID, "iterations", job.Iterations())
			return nil
		}
		job.transition(StateRequeued)
		if err = s.pause(ctx); err != nil {
			return err
		}
	}
}

func (s *Supervisor) traverse(ctx context.Context, job *Job) error {
	if s.workers != nil {
		if err := s.workers.Acquire(ctx, 1); err != nil {
			return err
		}
		defer s.workers.Release(1)
	}
	job.transition(StateRunning)
	return s.network.SendCarrier(ctx, job.Carrier)
}

func (s *Supervisor) pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.pollInterval <= 0 {
		return nil
	}
	timer := time.NewTimer(s.pollInterval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// New creates a supervisor with an open default session
func New(net *network.Network, options ...Option) *Supervisor {
	ret := &Supervisor{
		network:  net,
		logger:   logging.New("supervisor"),
		observer: nopObserver{},
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.root = newSession(ret, DefaultSession, nil)
	ret.current = ret.root
	return ret
}
