package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/patelshaan/imposter/internal/models"
	"github.com/patelshaan/imposter/internal/store"
)

// fakeClock hands out strictly increasing timestamps so joinedAt ordering is
// deterministic in tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// stubCodes replays a fixed sequence of room codes.
type stubCodes struct {
	mu    sync.Mutex
	codes []string
	i     int
}

func (s *stubCodes) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.codes[s.i%len(s.codes)]
	s.i++
	return code, nil
}

func setupService(t *testing.T) *Service {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	// A generous retry budget: the concurrency tests run many writers against
	// one room, and every writer must eventually land.
	return NewService(store.NewMemory(64), Config{
		OpTimeout: 2 * time.Second,
		Now:       clock.Now,
	})
}

// setupRoom creates a room led by "alice" and joins the extra players in
// order, so ordered membership is alice first, then the extras.
func setupRoom(t *testing.T, svc *Service, extras ...string) *models.Room {
	t.Helper()
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, "alice", "Alice")
	require.NoError(t, err)

	for _, id := range extras {
		room, err = svc.Join(ctx, room.Code, id, id)
		require.NoError(t, err)
	}
	return room
}
