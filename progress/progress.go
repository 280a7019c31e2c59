// Package progress keeps per-session job counters of a supervisor. A Tracker
// is a supervisor.Observer; every counter change is reported to an optional
// callback with a consistent snapshot.
package progress

import (
	"sort"
	"sync"
	"time"

	"github.com/viant/fluxpath/internal/clock"
	"github.com/viant/fluxpath/runtime/supervisor"
)

// Delta is a signed counter change
type Delta struct {
	Total      int
	Running    int
	Completed  int
	Failed     int
	Iterations int
}

// Progress holds the counters of one session. It is safe for concurrent use.
type Progress struct {
	Session    string
	StartedAt  time.Time
	Total      int
	Running    int
	Completed  int
	Failed     int
	Iterations int

	mux      sync.Mutex
	onChange func(Progress)
}

// Update applies d and invokes the change callback outside the lock
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.Total += d.Total
	p.Running += d.Running
	p.Completed += d.Completed
	p.Failed += d.Failed
	p.Iterations += d.Iterations
	snapshot := p.copy()
	callback := p.onChange
	p.mux.Unlock()
	if callback != nil {
		callback(snapshot)
	}
}

// Snapshot returns a copy for read-only inspection
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.copy()
}

// OnChange replaces the change callback; nil disables it
func (p *Progress) OnChange(callback func(Progress)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = callback
	p.mux.Unlock()
}

// Finished returns true once every started job completed or failed
func (p *Progress) Finished() bool {
	return p.Total > 0 && p.Running == 0 && p.Completed+p.Failed == p.Total
}

func (p *Progress) copy() Progress {
	return Progress{
		Session:    p.Session,
		StartedAt:  p.StartedAt,
		Total:      p.Total,
		Running:    p.Running,
		Completed:  p.Completed,
		Failed:     p.Failed,
		Iterations: p.Iterations,
	}
}

// Tracker keeps one Progress per session
type Tracker struct {
	mux      sync.Mutex
	sessions map[string]*Progress
	onChange func(Progress)
}

// Session returns a snapshot of the named session counters
func (t *Tracker) Session(name string) (Progress, bool) {
	t.mux.Lock()
	p, ok := t.sessions[name]
	t.mux.Unlock()
	if !ok {
		return Progress{}, false
	}
	return p.Snapshot(), true
}

// Sessions returns snapshots ordered by session name
func (t *Tracker) Sessions() []Progress {
	t.mux.Lock()
	names := make([]string, 0, len(t.sessions))
	for name := range t.sessions {
		names = append(names, name)
	}
	t.mux.Unlock()
	sort.Strings(names)
	ret := make([]Progress, 0, len(names))
	for _, name := range names {
		if p, ok := t.Session(name); ok {
			ret = append(ret, p)
		}
	}
	return ret
}

func (t *Tracker) progress(session string) *Progress {
	t.mux.Lock()
	defer t.mux.Unlock()
	ret, ok := t.sessions[session]
	if !ok {
		ret = &Progress{Session: session, StartedAt: clock.Now(), onChange: t.onChange}
		t.sessions[session] = ret
	}
	return ret
}

// OnJobStart implements supervisor.Observer
func (t *Tracker) OnJobStart(session string, _ *supervisor.Job) {
	t.progress(session).Update(Delta{Total: 1, Running: 1})
}

// OnIteration implements supervisor.Observer
func (t *Tracker) OnIteration(session string, _ *supervisor.Job, _ error) {
	t.progress(session).Update(Delta{Iterations: 1})
}

// OnJobDone implements supervisor.Observer
func (t *Tracker) OnJobDone(session string, job *supervisor.Job) {
	delta := Delta{Running: -1, Completed: 1}
	if job.State() == supervisor.StateFailed {
		delta = Delta{Running: -1, Failed: 1}
	}
	t.progress(session).Update(delta)
}

// NewTracker creates a tracker; onChange receives every session update
func NewTracker(onChange func(Progress)) *Tracker {
	return &Tracker{sessions: map[string]*Progress{}, onChange: onChange}
}

var _ supervisor.Observer = (*Tracker)(nil)
