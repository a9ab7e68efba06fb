// ws/events.go
package ws

import (
	"encoding/json"
	"log"
	"time"
)

// Idea activity event types
const (
	EventIdeaCreated   = "IDEA_CREATED"
	EventStatusChanged = "IDEA_STATUS_CHANGED"
	EventIdeaLiked     = "IDEA_LIKED"
	EventIdeaUnliked   = "IDEA_UNLIKED"
	EventCommentAdded  = "COMMENT_ADDED"
	EventRewardGranted = "REWARD_GRANTED"
)

// Event is a real-time idea activity update pushed to all feed clients.
type Event struct {
	Type      string      `json:"type"`
	IdeaID    string      `json:"ideaId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	UserID    string      `json:"userId,omitempty"`
}

// Broadcast pushes an event to every connected feed client. Safe to call
// from any goroutine; a slow client is dropped rather than blocking.
func Broadcast(eventType, ideaID, userID string, data interface{}) {
	ev := Event{
		Type:      eventType,
		IdeaID:    ideaID,
		Data:      data,
		Timestamp: time.Now().UTC(),
		UserID:    userID,
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal feed event: %v", err)
		return
	}
	select {
	case hub.broadcast <- payload:
	default:
		log.Println("Feed broadcast buffer full, dropping event")
	}
}
