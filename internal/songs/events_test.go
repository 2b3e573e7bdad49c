package songs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishEvent(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, eventChannel)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	s := NewServer(nil, rdb)
	s.publishEvent(ctx, "rating.updated", map[string]any{"id": "song-1", "rating": 4})

	select {
	case msg := <-sub.Channel():
		var event struct {
			Type    string         `json:"type"`
			Payload map[string]any `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, "rating.updated", event.Type)
		assert.Equal(t, "song-1", event.Payload["id"])
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestPublishEventWithoutRedis(t *testing.T) {
	s := NewServer(nil, nil)
	// must be a silent no-op
	s.publishEvent(context.Background(), "songs.uploaded", map[string]any{"inserted_count": 1})
}
