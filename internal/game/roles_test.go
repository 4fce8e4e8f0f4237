package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patelshaan/imposter/internal/models"
)

func countImposters(room *models.Room) int {
	n := 0
	for _, p := range room.Players {
		if p.Role == models.RoleImposter {
			n++
		}
	}
	return n
}

func TestSetImposterCount(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob", "carol", "dave")

	after, err := svc.SetImposterCount(context.Background(), room.Code, "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, after.ImposterCount)
}

func TestSetImposterCount_NotLeader(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	_, err := svc.SetImposterCount(context.Background(), room.Code, "bob", 2)
	assert.ErrorIs(t, err, ErrNotLeader)
}

func TestSetImposterCount_Invalid(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	_, err := svc.SetImposterCount(context.Background(), room.Code, "alice", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetImposterCount_AfterStart(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	_, err := svc.StartGame(context.Background(), room.Code, "alice")
	require.NoError(t, err)

	_, err = svc.SetImposterCount(context.Background(), room.Code, "alice", 1)
	assert.ErrorIs(t, err, ErrGameStarted)
}

func TestStartGame_RolePartition(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob", "carol", "dave", "erin")

	_, err := svc.SetImposterCount(context.Background(), room.Code, "alice", 2)
	require.NoError(t, err)

	after, err := svc.StartGame(context.Background(), room.Code, "alice")
	require.NoError(t, err)

	assert.True(t, after.Started)
	assert.Equal(t, 0, after.TurnIndex)
	assert.Equal(t, 2, countImposters(after))
	for _, p := range after.Players {
		assert.Contains(t, []models.Role{models.RoleCrewmate, models.RoleImposter}, p.Role)
	}
}

func TestStartGame_ClampsToHalfTheMembers(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob", "carol", "dave")

	_, err := svc.SetImposterCount(context.Background(), room.Code, "alice", 5)
	require.NoError(t, err)

	after, err := svc.StartGame(context.Background(), room.Code, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, after.ImposterCount)
	assert.Equal(t, 2, countImposters(after))
}

func TestStartGame_SoloRoomStillGetsOneImposter(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc)

	after, err := svc.StartGame(context.Background(), room.Code, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, countImposters(after))
}

func TestStartGame_AppendsSystemMessage(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	after, err := svc.StartGame(context.Background(), room.Code, "alice")
	require.NoError(t, err)

	require.Len(t, after.Chat, 1)
	msg := after.Chat[0]
	assert.Equal(t, models.ChatMessageTypeSystem, msg.Type)
	assert.Empty(t, msg.PlayerID)
	assert.Contains(t, msg.Text, "1 of 2")
	assert.Equal(t, int64(1), msg.Seq)
}

func TestStartGame_NotLeader(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	_, err := svc.StartGame(context.Background(), room.Code, "bob")
	assert.ErrorIs(t, err, ErrNotLeader)
}

func TestStartGame_AlreadyStarted(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	_, err := svc.StartGame(context.Background(), room.Code, "alice")
	require.NoError(t, err)

	_, err = svc.StartGame(context.Background(), room.Code, "alice")
	assert.ErrorIs(t, err, ErrValidation)
}

// The two-player scenario: Alice creates, Bob joins, one imposter is dealt,
// the other player is crewmate.
func TestStartGame_TwoPlayerScenario(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	after, err := svc.StartGame(context.Background(), room.Code, "alice")
	require.NoError(t, err)

	roles := map[models.Role]int{}
	for _, p := range after.Players {
		roles[p.Role]++
	}
	assert.Equal(t, 1, roles[models.RoleImposter])
	assert.Equal(t, 1, roles[models.RoleCrewmate])
}
