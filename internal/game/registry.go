package game

import (
	"context"
	"errors"
	"strings"

	"github.com/patelshaan/imposter/internal/models"
	"github.com/patelshaan/imposter/internal/store"
)

// RoomSummary is the discovery projection of an open room.
type RoomSummary struct {
	Code        string `json:"code"`
	MemberCount int    `json:"member_count"`
	LeaderName  string `json:"leader_name"`
	Started     bool   `json:"started"`
}

// CreateRoom allocates a fresh code and creates a room with the creator as
// its only member and leader. Codes that collide with a live room are retried
// a bounded number of times before ErrCodeExhausted.
func (s *Service) CreateRoom(ctx context.Context, playerID, name string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" || playerID == "" {
		return nil, ErrValidation
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	for attempt := 0; attempt < s.codeRetries; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, err
		}

		_, err = s.store.Get(ctx, code)
		if err == nil {
			continue // code taken, draw again
		}
		if !errors.Is(err, store.ErrAbsent) {
			return nil, translateStoreErr(err)
		}

		now := s.now()
		room := &models.Room{
			Code:          code,
			LeaderID:      playerID,
			ImposterCount: 1,
			Started:       false,
			TurnIndex:     0,
			Players: map[string]models.Player{
				playerID: {ID: playerID, Name: name, Role: models.RoleCrewmate, JoinedAt: now},
			},
			Chat:      []models.ChatMessage{},
			CreatedAt: now,
		}
		if err := s.store.Put(ctx, code, room); err != nil {
			if errors.Is(err, store.ErrConflict) {
				continue // lost the code to a concurrent creator
			}
			return nil, translateStoreErr(err)
		}
		return room, nil
	}
	return nil, ErrCodeExhausted
}

// GetRoom returns the current snapshot of a room.
func (s *Service) GetRoom(ctx context.Context, code string) (*models.Room, error) {
	room, err := s.store.Get(ctx, code)
	if errors.Is(err, store.ErrAbsent) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return room, nil
}

// ListOpenRooms returns summaries of rooms still accepting members. The
// listing is a non-transactional read and may lag behind concurrent commits;
// join re-validates against live state anyway.
func (s *Service) ListOpenRooms(ctx context.Context) ([]RoomSummary, error) {
	rooms, err := s.store.List(ctx)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		if room.Started {
			continue
		}
		leaderName := ""
		if leader, ok := room.Players[room.LeaderID]; ok {
			leaderName = leader.Name
		}
		summaries = append(summaries, RoomSummary{
			Code:        room.Code,
			MemberCount: room.MemberCount(),
			LeaderName:  leaderName,
			Started:     room.Started,
		})
	}
	return summaries, nil
}
