package game

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/patelshaan/imposter/internal/models"
)

// SetImposterCount updates the configured imposter count. Leader-only; the
// value is validated here but only clamped against the member count when the
// game actually starts.
func (s *Service) SetImposterCount(ctx context.Context, code, requesterID string, count int) (*models.Room, error) {
	if count < 1 {
		return nil, ErrValidation
	}
	return s.atomically(ctx, code, func(room *models.Room) (*models.Room, error) {
		if room == nil {
			return nil, ErrRoomNotFound
		}
		if room.LeaderID != requesterID {
			return nil, ErrNotLeader
		}
		if room.Started {
			return nil, ErrGameStarted
		}
		room.ImposterCount = count
		return room, nil
	})
}

// StartGame deals roles and opens play. It clamps the imposter count to at
// most half the members (but never below one), samples that many imposters
// uniformly via a shuffle of the deterministically ordered member list, marks
// the room started, resets the turn pointer and records a system chat entry.
// Everything commits as one transaction.
func (s *Service) StartGame(ctx context.Context, code, requesterID string) (*models.Room, error) {
	return s.atomically(ctx, code, func(room *models.Room) (*models.Room, error) {
		if room == nil {
			return nil, ErrRoomNotFound
		}
		if room.LeaderID != requesterID {
			return nil, ErrNotLeader
		}
		if room.Started || room.MemberCount() == 0 {
			return nil, ErrValidation
		}

		ordered := room.OrderedPlayers()
		n := len(ordered)
		k := room.ImposterCount
		if half := n / 2; k > half {
			k = half
		}
		if k < 1 {
			k = 1
		}

		// math/rand/v2's global generator is ChaCha8, runtime-seeded, and
		// Shuffle is Fisher-Yates, so the sample is uniform.
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		rand.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		imposters := make(map[string]bool, k)
		for _, idx := range indices[:k] {
			imposters[ordered[idx].ID] = true
		}
		for id, p := range room.Players {
			if imposters[id] {
				p.Role = models.RoleImposter
			} else {
				p.Role = models.RoleCrewmate
			}
			room.Players[id] = p
		}

		room.ImposterCount = k
		room.Started = true
		room.TurnIndex = 0
		room.ChatSeq++
		room.Chat = append(room.Chat, models.ChatMessage{
			Type: models.ChatMessageTypeSystem,
			Seq:  room.ChatSeq,
			Text: fmt.Sprintf("The game has started. %d of %d players are imposters.", k, n),
			Ts:   s.now(),
		})
		return room, nil
	})
}
