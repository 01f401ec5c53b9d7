// Package externalprinter implements the bounded MPSC queue of spec.md
// §4.11: any goroutine may enqueue a message to be printed above the active
// edit line; the engine drains it before every repaint. Send blocks on a
// full queue rather than dropping, per spec.md §5's "never silently drops."
package externalprinter

import "context"

// Printer is a bounded, multi-producer, single-consumer message queue.
type Printer struct {
	ch chan string
}

// DefaultCapacity is the queue capacity used when none is given.
const DefaultCapacity = 20

// New returns a Printer with the given capacity. A non-positive capacity
// falls back to DefaultCapacity.
func New(capacity int) *Printer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Printer{ch: make(chan string, capacity)}
}

// Send enqueues message, blocking if the queue is full. Safe to call from
// any goroutine.
func (p *Printer) Send(message string) {
	p.ch <- message
}

// TrySend enqueues message without blocking, reporting whether it fit.
func (p *Printer) TrySend(message string) bool {
	select {
	case p.ch <- message:
		return true
	default:
		return false
	}
}

// SendContext enqueues message, blocking until it is accepted or ctx is
// done, in which case it returns ctx.Err().
func (p *Printer) SendContext(ctx context.Context, message string) error {
	select {
	case p.ch <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain removes and returns every message currently queued, without
// blocking. Called once per read-loop iteration before painting, per
// spec.md §4.11/§4.12 step 1.
func (p *Printer) Drain() []string {
	var out []string
	for {
		select {
		case msg := <-p.ch:
			out = append(out, msg)
		default:
			return out
		}
	}
}

// Len reports the number of messages currently queued.
func (p *Printer) Len() int {
	return len(p.ch)
}
