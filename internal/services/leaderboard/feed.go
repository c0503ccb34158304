package leaderboard

import (
	"sync"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/models"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts dropping records rather than blocking
// submissions.
const subscriberBuffer = 16

// Feed fans accepted score submissions out to live subscribers.
type Feed struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// Subscriber is one live-feed consumer. C is closed on Unsubscribe.
type Subscriber struct {
	C chan models.ScoreRecord
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a new consumer.
func (f *Feed) Subscribe() *Subscriber {
	sub := &Subscriber{C: make(chan models.ScoreRecord, subscriberBuffer)}
	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
	return sub
}

// Unsubscribe removes a consumer and closes its channel. Safe to call once
// per subscriber.
func (f *Feed) Unsubscribe(sub *Subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[sub]; !ok {
		return
	}
	delete(f.subs, sub)
	close(sub.C)
}

// SubscriberCount reports how many consumers are currently attached.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Publish delivers a record to every subscriber without blocking the
// submitter. Slow subscribers miss records instead of stalling writes.
func (f *Feed) Publish(record models.ScoreRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		select {
		case sub.C <- record:
		default:
		}
	}
}
