package supervisor

import (
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/semaphore"
)

// Option customises a Supervisor
type Option func(s *Supervisor)

// WithLogger sets the supervisor logger
func WithLogger(logger logr.Logger) Option {
	return func(s *Supervisor) {
		s.logger = logger
	}
}

// WithObserver adds a job observer; repeated options notify every observer
func WithObserver(observer Observer) Option {
	return func(s *Supervisor) {
		if observer == nil {
			return
		}
		switch actual := s.observer.(type) {
		case nopObserver, nil:
			s.observer = observer
		case Observers:
			s.observer = append(actual, observer)
		default:
			s.observer = Observers{actual, observer}
		}
	}
}

// WithWorkers caps the number of concurrent traversals; zero means unlimited
func WithWorkers(count int) Option {
	return func(s *Supervisor) {
		s.workers = nil
		if count > 0 {
			s.workers = semaphore.NewWeighted(int64(count))
		}
	}
}

// WithMaxIterations bounds every predicate loop; zero means unbounded
func WithMaxIterations(count int) Option {
	return func(s *Supervisor) {
		s.maxIterations = count
	}
}

// WithPollInterval delays every re-queued traversal
func WithPollInterval(interval time.Duration) Option {
	return func(s *Supervisor) {
		s.pollInterval = interval
	}
}
