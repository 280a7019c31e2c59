package supervisor

// Observer receives job lifecycle notifications; implementations must be safe
// for concurrent use.
type Observer interface {
	OnJobStart(session string, job *Job)
	OnIteration(session string, job *Job, err error)
	OnJobDone(session string, job *Job)
}

type nopObserver struct{}

func (nopObserver) OnJobStart(string, *Job)         {}
func (nopObserver) OnIteration(string, *Job, error) {}
func (nopObserver) OnJobDone(string, *Job)          {}

// Observers notifies every observer in order
type Observers []Observer

func (o Observers) OnJobStart(session string, job *Job) {
	for _, observer := range o {
		observer.OnJobStart(session, job)
	}
}

func (o Observers) OnIteration(session string, job *Job, err error) {
	for _, observer := range o {
		observer.OnIteration(session, job, err)
	}
}

func (o Observers) OnJobDone(session string, job *Job) {
	for _, observer := range o {
		observer.OnJobDone(session, job)
	}
}
