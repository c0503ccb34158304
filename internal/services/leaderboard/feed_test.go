package leaderboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/models"
)

func TestFeedDeliversToAllSubscribers(t *testing.T) {
	feed := NewFeed()
	a := feed.Subscribe()
	b := feed.Subscribe()

	record := models.ScoreRecord{ID: "r1", UserID: "u1", UserName: "Alice", Score: 10}
	feed.Publish(record)

	assert.Equal(t, record, <-a.C)
	assert.Equal(t, record, <-b.C)
}

func TestFeedUnsubscribeClosesChannel(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe()

	feed.Unsubscribe(sub)

	_, open := <-sub.C
	assert.False(t, open)

	// Unsubscribing twice must not panic.
	feed.Unsubscribe(sub)
}

func TestFeedDoesNotBlockOnSlowSubscriber(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe()

	// Overfill the subscriber buffer; Publish must keep returning.
	for i := 0; i < subscriberBuffer*2; i++ {
		feed.Publish(models.ScoreRecord{ID: fmt.Sprintf("r%d", i)})
	}

	require.Len(t, sub.C, subscriberBuffer)
	assert.Equal(t, "r0", (<-sub.C).ID, "oldest buffered record is kept, newer ones drop")
}

func TestFeedPublishAfterUnsubscribe(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe()
	feed.Unsubscribe(sub)

	// Must not panic on the closed channel.
	feed.Publish(models.ScoreRecord{ID: "r1"})
}
