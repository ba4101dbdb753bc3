package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a pool of goroutines for parallel table generation.
//
// The pool distributes work items across multiple workers, each with their
// own queue. Workers steal from other queues when their own runs dry, which
// balances load when some bands are slower than others (script rows cost
// more than builtin rows, edge bands are smaller than interior ones).
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	// workers is the number of worker goroutines.
	workers int

	// queues holds per-worker work queues. Each worker primarily pulls
	// from its own queue but can steal from the others.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// Workers start immediately and wait for work.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Queue depth of a few items per worker hides scheduling latency
	// without hoarding work that idle workers could steal.
	queueSize := 4
	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	mine := p.queues[id]

	for {
		select {
		case <-p.done:
			// Finish whatever was already queued before exiting.
			p.drain(mine)
			return

		case work := <-mine:
			if work != nil {
				work()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				// Nothing to steal anywhere, block on own queue.
				select {
				case <-p.done:
					p.drain(mine)
					return
				case work := <-mine:
					if work != nil {
						work()
					}
				}
			}
		}
	}
}

// drain executes all remaining work in a queue.
func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *Pool) steal(myID int) func() {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
			// Queue is empty, try the next one.
		}
	}
	return nil
}

// ExecuteAll distributes work across the workers and waits for all of it
// to complete. When the pool has been closed the work still runs, serially
// on the calling goroutine, so callers never observe a half-done batch.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(work))

	for i, fn := range work {
		fn := fn
		wrapped := func() {
			defer pending.Done()
			fn()
		}

		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			// Pool is closing underneath us; run the item here.
			wrapped()
		}
	}

	pending.Wait()
}

// Close gracefully shuts down the pool. It stops accepting new work,
// lets workers finish what is already queued, and then stops them.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
