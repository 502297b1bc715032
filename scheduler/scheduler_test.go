package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeycumines/go-fibernet/fiber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsScheduledCallbacks(t *testing.T) {
	s := New(2, false, "test")
	s.Start()

	var n atomic.Int64
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		s.Schedule(func() {
			n.Add(1)
			wg.Done()
		}, AnyThread)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for scheduled callbacks")
	}

	assert.Equal(t, int64(10), n.Load())
	s.Stop()
}

func TestScheduler_RunsPrebuiltFiber(t *testing.T) {
	s := New(1, false, "test")
	s.Start()

	var ran bool
	done := make(chan struct{})
	f := fiber.Create(func() {
		ran = true
		close(done)
	}, 0, false)
	s.Schedule(f, AnyThread)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fiber")
	}
	assert.True(t, ran)
	s.Stop()
}

func TestScheduler_StopDrainsAndReturns(t *testing.T) {
	s := New(3, false, "test")
	s.Start()

	var n atomic.Int64
	for i := 0; i < 50; i++ {
		s.Schedule(func() { n.Add(1) }, AnyThread)
	}

	s.Stop()
	assert.Equal(t, int64(50), n.Load())
	assert.True(t, s.Stopping())
}

func TestScheduler_UseCallerParticipatesOnStop(t *testing.T) {
	s := New(2, true, "test")
	s.Start()

	var n atomic.Int64
	for i := 0; i < 20; i++ {
		s.Schedule(func() { n.Add(1) }, AnyThread)
	}

	s.Stop()
	require.Equal(t, int64(20), n.Load())
}

func TestScheduler_ScheduleBatchRunsAllAndTicklesOnce(t *testing.T) {
	s := New(2, false, "test")
	var tickles atomic.Int64
	s.TickleFunc = func() { tickles.Add(1) }
	s.Start()

	var n atomic.Int64
	var wg sync.WaitGroup
	wg.Add(10)
	fcs := make([]any, 10)
	for i := range fcs {
		fcs[i] = func() {
			n.Add(1)
			wg.Done()
		}
	}
	s.ScheduleBatch(fcs, AnyThread)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for batched callbacks")
	}

	assert.Equal(t, int64(10), n.Load())
	assert.Equal(t, int64(1), tickles.Load())
	s.Stop()
}

func TestScheduler_ScheduleBatchEmptyIsNoop(t *testing.T) {
	s := New(1, false, "test")
	s.Start()
	s.ScheduleBatch(nil, AnyThread)
	s.Stop()
}

func TestScheduler_ThreadAffinityPinsToWorker(t *testing.T) {
	s := New(2, false, "test")
	s.Start()

	results := make(chan int, 4)
	for i := 0; i < 4; i++ {
		s.Schedule(func() {
			results <- 0
		}, 0)
	}

	for i := 0; i < 4; i++ {
		select {
		case <-results:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for pinned task")
		}
	}
	s.Stop()
}
