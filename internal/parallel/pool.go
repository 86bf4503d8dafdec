package parallel

import (
	"runtime"
	"sync"
)

// Pool is a fixed set of long-lived worker goroutines.
type Pool struct {
	tasks chan func()
	size  int
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPool starts a pool with the given number of workers.
// A non-positive count uses runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		tasks: make(chan func(), workers),
		size:  workers,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the process-wide pool, sized to the host's hardware
// parallelism. It is created on first use and never closed.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = NewPool(runtime.NumCPU())
	})
	return defaultPool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// trySubmit hands task to an idle worker without blocking.
// It reports false when the pool is saturated or closed.
func (p *Pool) trySubmit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

// Close stops the workers after queued tasks have run.
// Loops started on a closed pool run entirely on their caller.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
