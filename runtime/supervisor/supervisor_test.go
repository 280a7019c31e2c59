package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/schema"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/fluxpath/runtime/network"
)

func counterBlock(counter *int32) station.Block {
	return station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		atomic.AddInt32(counter, 1)
		return payload, nil
	})
}

func newTestNetwork(t *testing.T, blocks map[string]station.Block) *network.Network {
	aSchema := schema.New()
	for name, block := range blocks {
		assert.Nil(t, aSchema.Register(name, block))
	}
	return network.New(aSchema)
}

func newCarrier(t *testing.T, id string, itinerary interface{}) *carrier.Carrier {
	ret, err := carrier.New(id, nil, itinerary)
	assert.Nil(t, err)
	return ret
}

func TestSupervisor_Start_Sequential(t *testing.T) {
	var visits int32
	net := newTestNetwork(t, map[string]station.Block{"a": counterBlock(&visits), "b": counterBlock(&visits)})
	visor := New(net)
	ctx := context.Background()

	polled, err := visor.Add(ctx, newCarrier(t, "polled", "a/b"), false, func(c *carrier.Carrier) (bool, error) {
		return c.Traversals() < 3, nil
	})
	assert.Nil(t, err)
	once, err := visor.Add(ctx, newCarrier(t, "once", "a"), false, nil)
	assert.Nil(t, err)
	assert.Equal(t, StateQueued, polled.State())
	assert.Equal(t, 2, visor.Root().Pending())

	assert.Nil(t, visor.Start(ctx, false))
	assert.Equal(t, StateDone, polled.State())
	assert.Equal(t, 3, polled.Iterations())
	assert.Equal(t, StateDone, once.State())
	assert.Equal(t, 1, once.Iterations())
	assert.EqualValues(t, 7, atomic.LoadInt32(&visits))
	assert.Equal(t, 0, visor.Root().Pending())
}

func TestSupervisor_Start_InThread(t *testing.T) {
	var visits int32
	net := newTestNetwork(t, map[string]station.Block{"a": counterBlock(&visits)})
	visor := New(net, WithWorkers(2))
	ctx := context.Background()
	var jobs []*Job
	for i := 0; i < 10; i++ {
		job, err := visor.Add(ctx, newCarrier(t, "", "a"), false, nil)
		assert.Nil(t, err)
		jobs = append(jobs, job)
	}
	direct, err := visor.Add(ctx, newCarrier(t, "direct", "a"), true, nil)
	assert.Nil(t, err)
	assert.Nil(t, visor.Start(ctx, true))
	assert.Nil(t, visor.Wait())
	for _, job := range append(jobs, direct) {
		assert.Equal(t, StateDone, job.State())
		select {
		case <-job.Done():
		default:
			t.Fatalf("job %v not closed", job.Carrier.ID)
		}
	}
	assert.EqualValues(t, 11, atomic.LoadInt32(&visits))
}

func TestSupervisor_Workers(t *testing.T) {
	var running, peak int32
	block := station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		current := atomic.AddInt32(&running, 1)
		for {
			seen := atomic.LoadInt32(&peak)
			if current <= seen || atomic.CompareAndSwapInt32(&peak, seen, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return payload, nil
	})
	visor := New(newTestNetwork(t, map[string]station.Block{"a": block}), WithWorkers(1))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := visor.Add(ctx, newCarrier(t, "", "a"), true, nil)
		assert.Nil(t, err)
	}
	assert.Nil(t, visor.Wait())
	assert.EqualValues(t, 1, atomic.LoadInt32(&peak))
}

func TestSupervisor_Sessions(t *testing.T) {
	visor := New(newTestNetwork(t, map[string]station.Block{}))
	root := visor.Current()
	assert.Equal(t, DefaultSession, root.Name)

	err := visor.WithSession("outer", nil, func(outer *Session) error {
		assert.Same(t, outer, visor.Current())
		inner := visor.NewSession("inner", outer)
		assert.Same(t, inner, visor.Current())
		assert.Same(t, outer, inner.Parent())
		inner.Close()
		assert.Same(t, outer, visor.Current())

		_, err := inner.Add(context.Background(), newCarrier(t, "late", "a"), false, nil)
		assert.ErrorIs(t, err, ErrSessionClosed)
		return nil
	})
	assert.Nil(t, err)
	assert.Same(t, root, visor.Current())

	first := visor.NewSession("first", nil)
	second := visor.NewSession("second", nil)
	first.Close()
	assert.Same(t, second, visor.Current(), "closing a non current session keeps the current one")
	second.Close()
	assert.Same(t, root, visor.Current())
}

func TestSupervisor_Inheritance(t *testing.T) {
	var visits int32
	release := make(chan struct{})
	blocking := station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		<-release
		return payload, nil
	})
	visor := New(newTestNetwork(t, map[string]station.Block{"a": counterBlock(&visits), "wait": blocking}))
	ctx := context.Background()

	parent := visor.NewSession("base", nil)
	parentJob, err := visor.Add(ctx, newCarrier(t, "carrier1", "a"), false, nil)
	assert.Nil(t, err)

	var childJob, blockedJob *Job
	assert.Nil(t, visor.WithSession("child", parent, func(child *Session) error {
		childJob, err = visor.Add(ctx, newCarrier(t, "carrier2", "a"), false, nil)
		assert.Nil(t, err)
		blockedJob, err = visor.Add(ctx, newCarrier(t, "blocked", "wait"), true, nil)
		assert.Nil(t, err)
		return visor.Start(ctx, true)
	}))
	assert.Same(t, parent, visor.Current())

	done := make(chan error, 1)
	go func() {
		done <- parent.Start(ctx, false)
	}()
	select {
	case <-done:
		t.Fatal("parent returned before inherited child work finished")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	select {
	case err := <-done:
		assert.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("parent did not return")
	}
	assert.Equal(t, StateDone, parentJob.State(), "child drains the parent queue")
	assert.Equal(t, 1, parentJob.Iterations())
	assert.Equal(t, StateDone, childJob.State())
	assert.Equal(t, StateDone, blockedJob.State())
	assert.Equal(t, 0, parent.Pending())
	assert.EqualValues(t, 2, atomic.LoadInt32(&visits))
	parent.Close()
}

func TestSupervisor_Failures(t *testing.T) {
	boom := errors.New("boom")
	failing := station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		return nil, boom
	})
	var visits int32
	net := newTestNetwork(t, map[string]station.Block{"a": counterBlock(&visits), "fail": failing})

	var testCases = []struct {
		description string
		itinerary   string
		predicate   Predicate
		expectErr   error
		expectIter  int
	}{
		{
			description: "station error",
			itinerary:   "a/fail",
			expectErr:   boom,
			expectIter:  1,
		},
		{
			description: "unknown station",
			itinerary:   "a/missing",
			expectErr:   schema.ErrUnknownStation,
			expectIter:  1,
		},
		{
			description: "predicate error",
			itinerary:   "a",
			predicate: func(c *carrier.Carrier) (bool, error) {
				return c.Traversals() < 2, errorAfter(c, 2, boom)
			},
			expectErr:  ErrPredicate,
			expectIter: 2,
		},
		{
			description: "predicate panic",
			itinerary:   "a",
			predicate: func(c *carrier.Carrier) (bool, error) {
				panic("broken predicate")
			},
			expectErr:  ErrPredicate,
			expectIter: 1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			visor := New(net)
			ctx := context.Background()
			healthy, err := visor.Add(ctx, newCarrier(t, "healthy", "a"), false, nil)
			assert.Nil(t, err)
			job, err := visor.Add(ctx, newCarrier(t, "failing", testCase.itinerary), false, testCase.predicate)
			assert.Nil(t, err)
			err = visor.Start(ctx, false)
			assert.ErrorIs(t, err, testCase.expectErr)
			assert.ErrorIs(t, job.Err(), testCase.expectErr)
			assert.Equal(t, StateFailed, job.State())
			assert.Equal(t, testCase.expectIter, job.Iterations())
			assert.Equal(t, StateDone, healthy.State())
			assert.Equal(t, []*Job{job}, visor.Root().Failed())
		})
	}
}

func TestSession_Failed(t *testing.T) {
	boom := errors.New("boom")
	failing := station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		return nil, boom
	})
	var visits int32
	visor := New(newTestNetwork(t, map[string]station.Block{"a": counterBlock(&visits), "fail": failing}))
	ctx := context.Background()

	parent := visor.NewSession("parent", nil)
	queued, err := visor.Add(ctx, newCarrier(t, "queued", "fail"), false, nil)
	assert.Nil(t, err)
	_, err = visor.Add(ctx, newCarrier(t, "healthy", "a"), false, nil)
	assert.Nil(t, err)
	direct, err := visor.Add(ctx, newCarrier(t, "direct", "fail"), true, nil)
	assert.Nil(t, err)
	<-direct.Done()

	assert.Nil(t, visor.WithSession("child", parent, func(child *Session) error {
		err := visor.Start(ctx, false)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, child.Failed())
		return nil
	}))
	assert.ErrorIs(t, parent.Wait(), boom)
	assert.Equal(t, []*Job{queued, direct}, parent.Failed())
	parent.Close()
}

func errorAfter(c *carrier.Carrier, traversals int, err error) error {
	if c.Traversals() >= traversals {
		return err
	}
	return nil
}

func TestSupervisor_Cancellation(t *testing.T) {
	var visits int32
	visor := New(newTestNetwork(t, map[string]station.Block{"a": counterBlock(&visits)}))
	ctx, cancel := context.WithCancel(context.Background())
	job, err := visor.Add(ctx, newCarrier(t, "forever", "a"), true, func(c *carrier.Carrier) (bool, error) {
		cancel()
		return true, nil
	})
	assert.Nil(t, err)
	<-job.Done()
	assert.ErrorIs(t, job.Err(), context.Canceled)
	assert.Equal(t, 1, job.Iterations())
	assert.ErrorIs(t, visor.Wait(), context.Canceled)
}

func TestSupervisor_MaxIterations(t *testing.T) {
	var visits int32
	visor := New(newTestNetwork(t, map[string]station.Block{"a": counterBlock(&visits)}), WithMaxIterations(4), WithPollInterval(time.Millisecond))
	job, err := visor.Add(context.Background(), newCarrier(t, "bounded", "a"), false, func(c *carrier.Carrier) (bool, error) {
		return true, nil
	})
	assert.Nil(t, err)
	assert.Nil(t, visor.Start(context.Background(), false))
	assert.Equal(t, StateDone, job.State())
	assert.Equal(t, 4, job.Iterations())
	assert.EqualValues(t, 4, atomic.LoadInt32(&visits))
}

type recordingObserver struct {
	mux        sync.Mutex
	started    int
	iterations int
	done       []JobState
}

func (o *recordingObserver) OnJobStart(session string, job *Job) {
	o.mux.Lock()
	defer o.mux.Unlock()
	o.started++
}

func (o *recordingObserver) OnIteration(session string, job *Job, err error) {
	o.mux.Lock()
	defer o.mux.Unlock()
	o.iterations++
}

func (o *recordingObserver) OnJobDone(session string, job *Job) {
	o.mux.Lock()
	defer o.mux.Unlock()
	o.done = append(o.done, job.State())
}

func TestSupervisor_Observer(t *testing.T) {
	var visits int32
	observer, second := &recordingObserver{}, &recordingObserver{}
	visor := New(newTestNetwork(t, map[string]station.Block{"a": counterBlock(&visits)}), WithObserver(observer), WithObserver(second))
	_, err := visor.Add(context.Background(), newCarrier(t, "observed", "a"), false, func(c *carrier.Carrier) (bool, error) {
		return c.Traversals() < 2, nil
	})
	assert.Nil(t, err)
	assert.Nil(t, visor.Start(context.Background(), false))
	assert.Equal(t, 1, observer.started)
	assert.Equal(t, 2, observer.iterations)
	assert.Equal(t, []JobState{StateDone}, observer.done)
	assert.Equal(t, 2, second.iterations)
}
