package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/StardustBot_Go/internal/worker"
)

type entry struct {
	interval time.Duration
	job      worker.Job
}

// Scheduler enqueues registered jobs onto a worker pool at fixed intervals.
type Scheduler struct {
	workerPool *worker.Pool
	entries    []entry
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. Jobs do not run
// until Start is called.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.entries = append(s.entries, entry{interval: interval, job: job})
}

// Start launches a ticker goroutine per registered job.
func (s *Scheduler) Start() {
	for _, e := range s.entries {
		s.wg.Add(1)
		go s.run(e)
	}
}

func (s *Scheduler) run(e entry) {
	defer s.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Blocks while the pool queue is full, pacing the scheduler
			// instead of dropping the run.
			s.workerPool.Enqueue(e.job)
		case <-s.quit:
			return
		}
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
