package walk

import (
	"runtime"
	"sync"
	"sync/atomic"
)

var parallelism atomic.Int32

func init() {
	parallelism.Store(int32(max(runtime.NumCPU(), 4)))
}

// SetParallelism sets the number of workers used by traversals that don't ask
// for a specific count. Values below 1 are ignored.
func SetParallelism(n int) {
	if n < 1 {
		return
	}
	parallelism.Store(int32(n))
}

// Parallelism returns the default worker count.
func Parallelism() int {
	return int(parallelism.Load())
}

// queue holds the directories waiting to be visited. It is a LIFO so the
// frontier stays close to depth-first and doesn't balloon on wide trees.
// active counts queued plus in-flight directories; the traversal is finished
// when it drops to zero.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Dir
	active int
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(dirs []Dir) {
	if len(dirs) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, dirs...)
	q.active += len(dirs)
	q.mu.Unlock()
	if len(dirs) == 1 {
		q.cond.Signal()
	} else {
		q.cond.Broadcast()
	}
}

// pop blocks until a directory is available. It returns false once every
// pushed directory has been visited.
func (q *queue) pop() (Dir, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && q.active > 0 {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return Dir{}, false
	}
	last := len(q.items) - 1
	d := q.items[last]
	q.items[last] = Dir{}
	q.items = q.items[:last]
	return d, true
}

// done marks one popped directory as fully visited.
func (q *queue) done() {
	q.mu.Lock()
	q.active--
	finished := q.active == 0
	q.mu.Unlock()
	if finished {
		q.cond.Broadcast()
	}
}

// Visitor handles one directory and returns the children that should be
// visited next. worker identifies the calling goroutine (0..workers-1) so
// visitors can keep per-worker state without locking.
type Visitor func(worker int, dir Dir) []Dir

// Run visits roots and everything the visitor pushes back, using workers
// goroutines (Parallelism() when workers < 1). It returns once the queue is
// drained. Closing stop makes the workers drop the remaining directories
// without visiting them; a nil stop never fires.
func Run(roots []Dir, workers int, stop <-chan struct{}, visit Visitor) {
	if workers < 1 {
		workers = Parallelism()
	}
	q := newQueue()
	q.push(roots)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				d, ok := q.pop()
				if !ok {
					return
				}
				if !stopped(stop) {
					q.push(visit(worker, d))
				}
				q.done()
			}
		}(i)
	}
	wg.Wait()
}

func stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}
