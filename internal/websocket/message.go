package websocket

import (
	"encoding/json"

	"github.com/statushub/profiles-be/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewFeedItemMessage encodes a newly created feed item for broadcast.
func NewFeedItemMessage(item models.FeedItem) []byte {
	data, _ := json.Marshal(Message{Action: "feed.created", Payload: item})
	return data
}
