package services

import (
	"sync"

	"github.com/google/uuid"
)

// RankingsNotifier broadcasts payload-less "rankings may have changed"
// signals after ledger mutations. Delivery is fire-and-forget: each
// subscriber has a 1-slot buffer, so rapid mutations coalesce and a slow or
// gone subscriber never blocks a write. Subscribers re-fetch rankings
// themselves; nothing is pushed beyond the signal.
type RankingsNotifier struct {
	mu   sync.Mutex
	subs map[string]chan struct{}
}

func NewRankingsNotifier() *RankingsNotifier {
	return &RankingsNotifier{subs: make(map[string]chan struct{})}
}

// Subscribe registers a listener. The returned id must be passed to
// Unsubscribe when the listener goes away.
func (n *RankingsNotifier) Subscribe() (string, <-chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := uuid.NewString()
	ch := make(chan struct{}, 1)
	n.subs[id] = ch
	return id, ch
}

func (n *RankingsNotifier) Unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs, id)
}

// Notify signals every subscriber. Non-blocking: if a subscriber already has
// a pending signal the new one is dropped (it carries no information anyway).
func (n *RankingsNotifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount is used by the SSE handler's startup log.
func (n *RankingsNotifier) SubscriberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
