package game

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patelshaan/imposter/internal/models"
)

func TestJoin(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc)

	joined, err := svc.Join(context.Background(), room.Code, "bob", " Bob ")
	require.NoError(t, err)

	assert.Equal(t, 2, joined.MemberCount())
	bob := joined.Players["bob"]
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, models.RoleCrewmate, bob.Role)

	ordered := joined.OrderedPlayers()
	assert.Equal(t, "alice", ordered[0].ID, "creator joined first")
	assert.Equal(t, "bob", ordered[1].ID)
}

func TestJoin_Idempotent(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	again, err := svc.Join(context.Background(), room.Code, "bob", "Bob")
	require.NoError(t, err)
	assert.Equal(t, 2, again.MemberCount())
}

func TestJoin_RoomNotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Join(context.Background(), "ZZZZZZ", "bob", "Bob")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoin_AfterStart(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	_, err := svc.StartGame(context.Background(), room.Code, "alice")
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), room.Code, "carol", "Carol")
	assert.ErrorIs(t, err, ErrGameStarted)
}

func TestJoin_EmptyName(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc)

	_, err := svc.Join(context.Background(), room.Code, "bob", "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLeave_PromotesEarliestJoined(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob", "carol")

	require.NoError(t, svc.Leave(context.Background(), room.Code, "alice"))

	after, err := svc.GetRoom(context.Background(), room.Code)
	require.NoError(t, err)
	assert.Equal(t, "bob", after.LeaderID)
	assert.Equal(t, 2, after.MemberCount())
}

func TestLeave_LastMemberDeletesRoom(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc)

	require.NoError(t, svc.Leave(context.Background(), room.Code, "alice"))

	_, err := svc.GetRoom(context.Background(), room.Code)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestLeave_AbsentRoomIsNoop(t *testing.T) {
	svc := setupService(t)

	assert.NoError(t, svc.Leave(context.Background(), "ZZZZZZ", "alice"))
}

func TestLeave_NonMemberIsNoop(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	require.NoError(t, svc.Leave(context.Background(), room.Code, "mallory"))

	after, err := svc.GetRoom(context.Background(), room.Code)
	require.NoError(t, err)
	assert.Equal(t, 2, after.MemberCount())
}

func TestKick(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	after, err := svc.Kick(context.Background(), room.Code, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, after.MemberCount())
	assert.NotContains(t, after.Players, "bob")
}

func TestKick_NotLeader(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	_, err := svc.Kick(context.Background(), room.Code, "bob", "alice")
	assert.ErrorIs(t, err, ErrNotLeader)
}

func TestKick_TargetNotFound(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	_, err := svc.Kick(context.Background(), room.Code, "alice", "mallory")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestKick_SelfPromotesNext(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc, "bob")

	after, err := svc.Kick(context.Background(), room.Code, "alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", after.LeaderID)
}

func TestKick_SelfInEmptyRoomDeletesRoom(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc)

	after, err := svc.Kick(context.Background(), room.Code, "alice", "alice")
	require.NoError(t, err)
	assert.Nil(t, after)

	_, err = svc.GetRoom(context.Background(), room.Code)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoin_ConcurrentClientsBothLand(t *testing.T) {
	svc := setupService(t)
	room := setupRoom(t, svc)

	const joiners = 10
	var wg sync.WaitGroup
	errs := make([]error, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("player-%d", i)
			_, errs[i] = svc.Join(context.Background(), room.Code, id, id)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "joiner %d", i)
	}

	after, err := svc.GetRoom(context.Background(), room.Code)
	require.NoError(t, err)
	assert.Equal(t, joiners+1, after.MemberCount(), "no join may be lost to a concurrent commit")
}
