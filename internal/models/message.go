package models

import "time"

type ChatMessageType string

const (
	ChatMessageTypeSystem ChatMessageType = "system"
	ChatMessageTypePlayer ChatMessageType = "player"
)

// ChatMessage is one entry in a room's append-only chat log. System entries
// carry no author; player entries record who said what. Seq is a per-room
// monotonic sequence number assigned at commit time and preserves append
// order regardless of clock skew between writers.
type ChatMessage struct {
	Type     ChatMessageType `json:"type" bson:"type"`
	Seq      int64           `json:"seq" bson:"seq"`
	PlayerID string          `json:"player_id,omitempty" bson:"player_id,omitempty"`
	Name     string          `json:"name,omitempty" bson:"name,omitempty"`
	Text     string          `json:"text" bson:"text"`
	Ts       time.Time       `json:"ts" bson:"ts"`
}
