// Package chat implements the direct-messaging side of the board: per-user
// unread bookkeeping and the realtime fanout behind the message stream.
package chat

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker keeps the per-receiver unread counters and which conversation each
// receiver currently has open. A message from the focused contact is
// delivered read; anything else bumps that sender's counter by one.
type Tracker struct {
	mu     sync.Mutex
	unread map[uuid.UUID]map[uuid.UUID]int
	focus  map[uuid.UUID]uuid.UUID
}

func NewTracker() *Tracker {
	return &Tracker{
		unread: make(map[uuid.UUID]map[uuid.UUID]int),
		focus:  make(map[uuid.UUID]uuid.UUID),
	}
}

// Seed replaces a receiver's counters with counts derived from the store,
// used when a stream (re)connects so counts survive dropped connections.
func (t *Tracker) Seed(receiver uuid.UUID, counts map[uuid.UUID]int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fresh := make(map[uuid.UUID]int, len(counts))
	for sender, n := range counts {
		fresh[sender] = n
	}
	t.unread[receiver] = fresh
}

// Focused reports whether the receiver has the sender's conversation open.
// A message into a focused conversation is stored already read.
func (t *Tracker) Focused(receiver, sender uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.focus[receiver] == sender
}

// Increment bumps one sender's unread counter. Callers bump only after the
// message is actually stored, so the counter never outruns the store.
func (t *Tracker) Increment(receiver, sender uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.unread[receiver] == nil {
		t.unread[receiver] = make(map[uuid.UUID]int)
	}
	t.unread[receiver][sender]++
}

// Open focuses a conversation and zeroes its unread counter. The caller
// issues the batch mark-read against the store.
func (t *Tracker) Open(receiver, sender uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.focus[receiver] = sender
	if t.unread[receiver] != nil {
		delete(t.unread[receiver], sender)
	}
}

// Zero clears one sender's counter without touching focus, for an explicit
// mark-as-read that happens outside an open conversation.
func (t *Tracker) Zero(receiver, sender uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.unread[receiver] != nil {
		delete(t.unread[receiver], sender)
	}
}

// Close drops the receiver's conversation focus.
func (t *Tracker) Close(receiver uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.focus, receiver)
}

// Unread returns a copy of the receiver's per-sender counters.
func (t *Tracker) Unread(receiver uuid.UUID) map[uuid.UUID]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[uuid.UUID]int, len(t.unread[receiver]))
	for sender, n := range t.unread[receiver] {
		counts[sender] = n
	}
	return counts
}

// Total is the badge count: the sum over all senders.
func (t *Tracker) Total(receiver uuid.UUID) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := 0
	for _, n := range t.unread[receiver] {
		total += n
	}
	return total
}
