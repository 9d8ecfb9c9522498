package actor

import (
	"sync"

	"github.com/markinthebyss/pyact-go/actor/internal/queue"
)

// mailbox is the append-only FIFO owned exclusively by one actor: only
// that actor's own goroutine scans and removes from it; every other
// actor only appends, via cast. Appends are serialized with arming the
// wait signal so that a signal set between "check empty" and "block on
// signal" is never lost (the no-lost-wakeup contract of the concurrency
// model): push always attempts a non-blocking send on notify after
// releasing the queue lock, and a waiter that finds nothing on its scan
// unconditionally re-scans after waking, so a stale or coalesced token
// can never cause a missed message.
type mailbox struct {
	mu     sync.Mutex
	items  *queue.Queue[Value]
	notify chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{
		items:  queue.New[Value](),
		notify: make(chan struct{}, 1),
	}
}

func (m *mailbox) push(v Value) {
	m.mu.Lock()
	m.items.PushBack(v)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// scanRemove scans the mailbox head to tail for the first entry matching
// any of patterns, ties broken by pattern order, removes and returns it
// along with the index of the pattern it matched. It reports ok=false if
// nothing in the mailbox currently matches.
func (m *mailbox) scanRemove(patterns []Shape) (idx int, v Value, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < m.items.Len(); i++ {
		candidate := m.items.At(i)
		for pi, pattern := range patterns {
			if Matches(candidate, pattern) {
				m.items.RemoveAt(i)
				return pi, candidate, true
			}
		}
	}
	return 0, nil, false
}

func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items.Len()
}
