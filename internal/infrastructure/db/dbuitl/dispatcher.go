package dbutil

import (
	"sync"

	"github.com/arkade-os/ledgerd/internal/core/domain"
)

type dispatchJob struct {
	handlers []func(events []domain.Event)
	events   []domain.Event
}

// Dispatcher runs event handlers in a single go routine, in the order the
// events were pushed. The queue is unbounded so Push never blocks the writer.
type Dispatcher struct {
	lock   *sync.Mutex
	cond   *sync.Cond
	queue  []dispatchJob
	closed bool
}

func NewDispatcher() *Dispatcher {
	lock := &sync.Mutex{}
	d := &Dispatcher{
		lock:  lock,
		cond:  sync.NewCond(lock),
		queue: make([]dispatchJob, 0),
	}
	go d.run()
	return d
}

// Push enqueues events for the given handlers. It is a no-op once closed.
func (d *Dispatcher) Push(handlers []func(events []domain.Event), events []domain.Event) {
	if len(handlers) == 0 || len(events) == 0 {
		return
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	if d.closed {
		return
	}
	d.queue = append(d.queue, dispatchJob{handlers, events})
	d.cond.Signal()
}

// Close stops the dispatcher, pending jobs are dropped.
func (d *Dispatcher) Close() {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.closed = true
	d.queue = nil
	d.cond.Broadcast()
}

func (d *Dispatcher) run() {
	for {
		d.lock.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if d.closed {
			d.lock.Unlock()
			return
		}
		job := d.queue[0]
		d.queue = d.queue[1:]
		d.lock.Unlock()

		for _, handler := range job.handlers {
			handler(job.events)
		}
	}
}
