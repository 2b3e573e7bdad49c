package songs

import (
	"context"
	"encoding/json"
	"log"
)

const eventChannel = "song-events"

// publishEvent broadcasts a domain event over Redis pub/sub. Publishing is
// best-effort: failures are logged and never surfaced to the request, and a
// nil client disables events entirely.
func (s *Server) publishEvent(ctx context.Context, eventType string, payload any) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Printf("song-service: marshal event: %v", err)
		return
	}

	if err := s.rdb.Publish(ctx, eventChannel, string(data)).Err(); err != nil {
		log.Printf("song-service: publish event: %v", err)
	}
}
