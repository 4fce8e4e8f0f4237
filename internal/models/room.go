package models

import (
	"sort"
	"time"
)

// Room is the full state of one game instance. It is a value document: every
// mutation produces a new committed snapshot through the store, there is no
// shared in-process instance. The bson tags mirror the json tags so that
// store.Patch addresses the same field names in every driver.
type Room struct {
	Code          string            `json:"code" bson:"code"`
	LeaderID      string            `json:"leader_id" bson:"leader_id"`
	ImposterCount int               `json:"imposter_count" bson:"imposter_count"`
	Started       bool              `json:"started" bson:"started"`
	TurnIndex     int               `json:"turn_index" bson:"turn_index"`
	Players       map[string]Player `json:"players" bson:"players"`
	Chat          []ChatMessage     `json:"chat" bson:"chat"`
	ChatSeq       int64             `json:"chat_seq" bson:"chat_seq"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
}

// MemberCount returns the number of players currently in the room.
func (r *Room) MemberCount() int {
	return len(r.Players)
}

// OrderedPlayers returns the members sorted by join time, ties broken by id.
// Turn computation and leader promotion index into this slice; the Players
// map itself has no meaningful iteration order.
func (r *Room) OrderedPlayers() []Player {
	players := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].ID < players[j].ID
	})
	return players
}

// CurrentPlayer returns whose turn it is. The modulo is taken against the
// current member count on every call so the pointer stays valid when
// membership shrinks between turns. Returns false if the room has no members.
func (r *Room) CurrentPlayer() (Player, bool) {
	ordered := r.OrderedPlayers()
	if len(ordered) == 0 {
		return Player{}, false
	}
	return ordered[r.TurnIndex%len(ordered)], true
}

// Clone returns a deep copy. Stores hand clones to transform functions so a
// failed or retried transaction never leaks partial writes into a snapshot
// another reader holds.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Players = make(map[string]Player, len(r.Players))
	for id, p := range r.Players {
		cp.Players[id] = p
	}
	cp.Chat = make([]ChatMessage, len(r.Chat))
	copy(cp.Chat, r.Chat)
	return &cp
}
