package game

import (
	"context"
	"strings"

	"github.com/patelshaan/imposter/internal/models"
)

// SendHint appends a hint to the chat and advances the turn pointer, as one
// transaction. The turn check recomputes the modulo against the member count
// observed inside the transaction, so the rotation stays correct when members
// left since the pointer was last advanced.
func (s *Service) SendHint(ctx context.Context, code, playerID, text string) (*models.Room, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation
	}

	return s.atomically(ctx, code, func(room *models.Room) (*models.Room, error) {
		if room == nil {
			return nil, ErrRoomNotFound
		}
		if !room.Started {
			return nil, ErrValidation
		}
		player, ok := room.Players[playerID]
		if !ok {
			return nil, ErrPlayerNotFound
		}
		current, ok := room.CurrentPlayer()
		if !ok || current.ID != playerID {
			return nil, ErrNotYourTurn
		}

		room.ChatSeq++
		room.Chat = append(room.Chat, models.ChatMessage{
			Type:     models.ChatMessageTypePlayer,
			Seq:      room.ChatSeq,
			PlayerID: player.ID,
			Name:     player.Name,
			Text:     text,
			Ts:       s.now(),
		})
		room.TurnIndex = (room.TurnIndex + 1) % room.MemberCount()
		return room, nil
	})
}
