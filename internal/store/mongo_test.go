package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/patelshaan/imposter/internal/models"
)

// Patch addresses room fields by their JSON names, so the stored document
// must use those same names. A diverging bson tag would make Patch write a
// sibling field that Get never reads back.
func TestMongoDocument_StoredFieldNamesMatchPatchNames(t *testing.T) {
	room := testRoom("AAAAAA")
	room.Chat = append(room.Chat, models.ChatMessage{
		Type:     models.ChatMessageTypePlayer,
		Seq:      1,
		PlayerID: "alice",
		Name:     "Alice",
		Text:     "hello",
		Ts:       room.CreatedAt,
	})

	raw, err := bson.Marshal(mongoDocument{Code: "AAAAAA", Version: 1, Room: room, UpdatedAt: time.Now()})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	stored, ok := doc["room"].(bson.M)
	require.True(t, ok, "room subdocument missing")
	for _, field := range []string{
		"code", "leader_id", "imposter_count", "started",
		"turn_index", "players", "chat", "chat_seq", "created_at",
	} {
		assert.Contains(t, stored, field)
	}

	players, ok := stored["players"].(bson.M)
	require.True(t, ok, "players subdocument missing")
	alice, ok := players["alice"].(bson.M)
	require.True(t, ok, "player entry missing")
	for _, field := range []string{"id", "name", "role", "joined_at"} {
		assert.Contains(t, alice, field)
	}

	chat, ok := stored["chat"].(bson.A)
	require.True(t, ok, "chat array missing")
	require.Len(t, chat, 1)
	entry, ok := chat[0].(bson.M)
	require.True(t, ok, "chat entry missing")
	for _, field := range []string{"type", "seq", "player_id", "text", "ts"} {
		assert.Contains(t, entry, field)
	}
}

// The round trip through the driver's codec must reproduce the room so a
// Transact read-modify-write cycle does not corrupt state.
func TestMongoDocument_RoundTrip(t *testing.T) {
	room := testRoom("AAAAAA")
	room.Started = true
	room.TurnIndex = 2

	raw, err := bson.Marshal(mongoDocument{Code: "AAAAAA", Version: 3, Room: room, UpdatedAt: time.Now()})
	require.NoError(t, err)

	var doc mongoDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	assert.Equal(t, int64(3), doc.Version)
	assert.Equal(t, "AAAAAA", doc.Room.Code)
	assert.Equal(t, "alice", doc.Room.LeaderID)
	assert.True(t, doc.Room.Started)
	assert.Equal(t, 2, doc.Room.TurnIndex)
	require.Contains(t, doc.Room.Players, "alice")
	assert.True(t, doc.Room.Players["alice"].JoinedAt.Equal(room.Players["alice"].JoinedAt))
}
