// Package parallel provides the worker pool and chunked loop used by the
// dispatch engine.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of goroutines sharing one loop, caller included.
	MinChunkSize int  // Minimum iterations per chunk.
}

// DefaultConfig returns sensible defaults based on CPU count.
// One iteration of the engine's outer loop covers a whole sub-space, so
// chunks may be as small as a single iteration.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// Sequential returns a configuration that runs every loop on the caller.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// For executes f(i) for i in [0, n) on the process-wide pool.
// See Pool.For.
func For(n int, f func(i int) error, cfg Config) error {
	return Default().For(n, f, cfg)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too
// small.
//
// The range is cut into chunks claimed by the calling goroutine and by up to
// NumWorkers-1 pool workers. Iterations inside a chunk run in ascending order.
// The first error stops the loop cooperatively: no new iteration starts once
// it is observed, iterations already running finish. For returns that first
// error after every participant has stopped. A panic in f is re-raised on the
// calling goroutine once the loop has stopped.
func (p *Pool) For(n int, f func(i int) error, cfg Config) error {
	return p.ForStoppable(n, func(i int, _ func() bool) error { return f(i) }, cfg)
}

// ForStoppable is For where f also receives stopped, which reports whether
// another iteration has failed. A long iteration polls it and returns nil
// early once it is true; the loop still returns the first failure.
func (p *Pool) ForStoppable(n int, f func(i int, stopped func() bool) error, cfg Config) error {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			if err := f(i, neverStopped); err != nil {
				return err
			}
		}
		return nil
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	l := &loop{
		n:      n,
		chunk:  chunkSize,
		chunks: (n + chunkSize - 1) / chunkSize,
		f:      f,
	}
	l.stopped = l.stop.Load
	l.cond = sync.NewCond(&l.mu)

	for h := min(cfg.NumWorkers, l.chunks) - 1; h > 0; h-- {
		if !p.trySubmit(l.help) {
			break
		}
	}
	l.drain()
	l.join()

	if l.panicked {
		panic(l.panicVal)
	}
	return l.err
}

// loop is the shared state of one For call.
type loop struct {
	n      int
	chunk  int
	chunks int
	f      func(i int, stopped func() bool) error

	next    atomic.Int64
	stop    atomic.Bool
	stopped func() bool

	once     sync.Once
	err      error
	panicked bool
	panicVal any

	mu     sync.Mutex
	cond   *sync.Cond
	active int
	closed bool
}

// help runs on a pool worker. Helpers that start after the caller has
// joined return immediately, so the caller never waits on a queued task.
func (l *loop) help() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.active++
	l.mu.Unlock()

	l.drain()

	l.mu.Lock()
	l.active--
	if l.active == 0 {
		l.cond.Broadcast()
	}
	l.mu.Unlock()
}

func (l *loop) join() {
	l.mu.Lock()
	l.closed = true
	for l.active > 0 {
		l.cond.Wait()
	}
	l.mu.Unlock()
}

func (l *loop) drain() {
	defer func() {
		if v := recover(); v != nil {
			l.fail(nil, true, v)
		}
	}()

	for !l.stop.Load() {
		c := int(l.next.Add(1) - 1)
		if c >= l.chunks {
			return
		}
		start := c * l.chunk
		end := min(start+l.chunk, l.n)
		for i := start; i < end; i++ {
			if l.stop.Load() {
				return
			}
			if err := l.f(i, l.stopped); err != nil {
				l.fail(err, false, nil)
				return
			}
		}
	}
}

func (l *loop) fail(err error, panicked bool, v any) {
	l.once.Do(func() {
		l.err = err
		l.panicked = panicked
		l.panicVal = v
	})
	l.stop.Store(true)
}

func neverStopped() bool { return false }
