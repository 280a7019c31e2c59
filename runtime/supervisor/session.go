package supervisor

import (
	"context"
	"errors"
	"sync"

	"github.com/viant/fluxpath/internal/idgen"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/service/messaging"
	"github.com/viant/fluxpath/service/messaging/memory"
)

// Session is a scheduling scope owning a queue of pending carriers.
//
// A session created with an inherited parent drains the parent's pending
// queue when started, and its work is tracked by the parent as well: Wait
// and Start(ctx, false) on a parent return only once the work of every
// inheriting child started so far has finished.
type Session struct {
	ID   string
	Name string

	supervisor *Supervisor
	parent     *Session
	previous   *Session
	pending    *memory.Queue[Job]

	mux      sync.Mutex
	idle     *sync.Cond
	inflight int
	jobs     []*Job
	errs     []error
	closed   bool
}

// Parent returns the session this one inherits from
func (s *Session) Parent() *Session {
	return s.parent
}

// Pending returns the number of queued carriers not yet started
func (s *Session) Pending() int {
	return s.pending.Size()
}

// Jobs returns all jobs added to this session
func (s *Session) Jobs() []*Job {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]*Job(nil), s.jobs...)
}

// Failed returns jobs added to this session that ended with an error, whether
// queued, started in thread or drained by an inheriting session
func (s *Session) Failed() []*Job {
	var ret []*Job
	for _, job := range s.Jobs() {
		if job.State() == StateFailed {
			ret = append(ret, job)
		}
	}
	return ret
}

// Closed returns true once the session scope was exited
func (s *Session) Closed() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.closed
}

// Add enqueues the carrier. With inThread the traversal starts immediately on
// its own goroutine and the carrier is not queued for Start.
func (s *Session) Add(ctx context.Context, c *carrier.Carrier, inThread bool, predicate Predicate) (*Job, error) {
	s.mux.Lock()
	if s.closed {
		s.mux.Unlock()
		return nil, ErrSessionClosed
	}
	job := newJob(c, predicate, s)
	s.jobs = append(s.jobs, job)
	s.mux.Unlock()
	if inThread {
		s.supervisor.spawn(ctx, s, job, nil)
		return job, nil
	}
	if err := s.pending.Publish(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Start runs every pending carrier of this session and of the sessions it
// inherits from. With inThread each carrier loop runs on its own goroutine and
// Start returns immediately; otherwise carriers run sequentially and Start
// returns the joined errors once all tracked work finished.
func (s *Session) Start(ctx context.Context, inThread bool) error {
	for _, msg := range s.drain() {
		job := msg.T()
		if inThread {
			s.supervisor.spawn(ctx, s, job, msg)
			continue
		}
		s.track()
		s.supervisor.execute(ctx, s, job, msg)
	}
	if inThread {
		return nil
	}
	return s.Wait()
}

// Wait blocks until all work tracked by the session finished and returns the
// joined errors of failed jobs.
func (s *Session) Wait() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	for s.inflight > 0 {
		s.idle.Wait()
	}
	return errors.Join(s.errs...)
}

// Err returns the joined errors of failed jobs so far
func (s *Session) Err() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return errors.Join(s.errs...)
}

// Close exits the session scope and restores the previous current session.
// Running work is not interrupted.
func (s *Session) Close() {
	s.supervisor.closeSession(s)
}

func (s *Session) drain() []messaging.Message[Job] {
	var ret []messaging.Message[Job]
	for session := s; session != nil; session = session.parent {
		for {
			msg, ok := session.pending.TryConsume()
			if !ok {
				break
			}
			ret = append(ret, msg)
		}
	}
	return ret
}

// track registers work with this session and every ancestor
func (s *Session) track() {
	for session := s; session != nil; session = session.parent {
		session.mux.Lock()
		session.inflight++
		session.mux.Unlock()
	}
}

func (s *Session) complete(err error) {
	for session := s; session != nil; session = session.parent {
		session.mux.Lock()
		if err != nil {
			session.errs = append(session.errs, err)
		}
		session.inflight--
		if session.inflight == 0 {
			session.idle.Broadcast()
		}
		session.mux.Unlock()
	}
}

func newSession(supervisor *Supervisor, name string, parent *Session) *Session {
	ret := &Session{
		ID:         idgen.New(),
		Name:       name,
		supervisor: supervisor,
		parent:     parent,
		pending:    memory.NewQueue[Job](memory.DefaultConfig()),
	}
	ret.idle = sync.NewCond(&ret.mux)
	return ret
}
