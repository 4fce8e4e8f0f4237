package game

import (
	"context"
	"strings"

	"github.com/patelshaan/imposter/internal/models"
)

// Join adds a player to an open room. Joining a room you are already in is a
// no-op success. All checks run inside the transaction, so two clients
// joining the same room concurrently both land.
func (s *Service) Join(ctx context.Context, code, playerID, name string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" || playerID == "" {
		return nil, ErrValidation
	}

	return s.atomically(ctx, code, func(room *models.Room) (*models.Room, error) {
		if room == nil {
			return nil, ErrRoomNotFound
		}
		if room.Started {
			return nil, ErrGameStarted
		}
		if _, ok := room.Players[playerID]; ok {
			return nil, errNoChange
		}
		room.Players[playerID] = models.Player{
			ID:       playerID,
			Name:     name,
			Role:     models.RoleCrewmate,
			JoinedAt: s.now(),
		}
		return room, nil
	})
}

// Leave removes a player. The leader leaving promotes the earliest-joined
// remaining member; the last member leaving deletes the room. Leaving a room
// or membership that no longer exists is a no-op success.
func (s *Service) Leave(ctx context.Context, code, playerID string) error {
	_, err := s.atomically(ctx, code, func(room *models.Room) (*models.Room, error) {
		if room == nil {
			return nil, errNoChange
		}
		if _, ok := room.Players[playerID]; !ok {
			return nil, errNoChange
		}
		return removeMember(room, playerID), nil
	})
	return err
}

// Kick removes a member on the leader's behalf. Leadership is re-checked
// inside the transaction: a stale leader whose promotion was overtaken by a
// concurrent commit gets ErrNotLeader, not a silent removal.
func (s *Service) Kick(ctx context.Context, code, requesterID, targetID string) (*models.Room, error) {
	return s.atomically(ctx, code, func(room *models.Room) (*models.Room, error) {
		if room == nil {
			return nil, ErrRoomNotFound
		}
		if room.LeaderID != requesterID {
			return nil, ErrNotLeader
		}
		if _, ok := room.Players[targetID]; !ok {
			return nil, ErrPlayerNotFound
		}
		return removeMember(room, targetID), nil
	})
}

// removeMember deletes the player and repairs the leader invariant: leaderId
// must resolve to a member for as long as the room exists, and an empty room
// does not exist. Returning nil deletes the room document.
func removeMember(room *models.Room, playerID string) *models.Room {
	delete(room.Players, playerID)
	if len(room.Players) == 0 {
		return nil
	}
	if room.LeaderID == playerID {
		room.LeaderID = room.OrderedPlayers()[0].ID
	}
	return room
}
