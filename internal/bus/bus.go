// Package bus carries the process-wide "task data changed" broadcast.
// Subscribers react by refetching; the event payload lets them tell what
// moved without forcing them to care.
package bus

import (
	"sync"

	"github.com/google/uuid"
)

type Op string

const (
	OpCreated   Op = "created"
	OpUpdated   Op = "updated"
	OpMoved     Op = "moved"
	OpCompleted Op = "completed"
	OpDeleted   Op = "deleted"
)

// TaskChanged is published after every successful task mutation.
type TaskChanged struct {
	TaskID uuid.UUID
	Op     Op
}

type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan TaskChanged
}

func New() *Bus {
	return &Bus{subs: make(map[int]chan TaskChanged)}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func (b *Bus) Subscribe() (<-chan TaskChanged, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan TaskChanged, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans the event out without blocking. A subscriber with a full
// buffer misses the event; reloads are idempotent and the poller catches up.
func (b *Bus) Publish(ev TaskChanged) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
