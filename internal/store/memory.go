package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/patelshaan/imposter/internal/hub"
	"github.com/patelshaan/imposter/internal/models"
)

type memoryEntry struct {
	room    *models.Room
	version int64
}

// Memory is an in-process Store. It backs local single-node play and every
// test in this repo; its Transact is a real compare-and-swap over a version
// counter, so concurrent-writer behavior matches the durable drivers.
type Memory struct {
	mu      sync.RWMutex
	rooms   map[string]memoryEntry
	hub     *hub.Hub
	retries int
}

// NewMemory creates an empty in-memory store. retries bounds the Transact
// conflict loop; values below 1 fall back to the default of 8.
func NewMemory(retries int) *Memory {
	if retries < 1 {
		retries = 8
	}
	return &Memory{
		rooms:   make(map[string]memoryEntry),
		hub:     hub.NewHub(),
		retries: retries,
	}
}

func (m *Memory) Get(ctx context.Context, code string) (*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.rooms[code]
	if !ok {
		return nil, ErrAbsent
	}
	return entry.room.Clone(), nil
}

func (m *Memory) Put(ctx context.Context, code string, room *models.Room) error {
	m.mu.Lock()
	if _, exists := m.rooms[code]; exists {
		m.mu.Unlock()
		return ErrConflict
	}
	version := int64(1)
	snapshot := room.Clone()
	m.rooms[code] = memoryEntry{room: snapshot, version: version}
	m.mu.Unlock()

	m.hub.Broadcast(hub.Snapshot{Code: code, Version: version, Room: snapshot.Clone()})
	return nil
}

// Patch round-trips the document through its JSON form so field names match
// the wire representation used by the durable drivers.
func (m *Memory) Patch(ctx context.Context, code string, fields map[string]any) error {
	m.mu.Lock()
	entry, ok := m.rooms[code]
	if !ok {
		m.mu.Unlock()
		return ErrAbsent
	}

	raw, err := json.Marshal(entry.room)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("patch %s: %w", code, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("patch %s: %w", code, err)
	}
	for field, value := range fields {
		doc[field] = value
	}
	patched, err := json.Marshal(doc)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("patch %s: %w", code, err)
	}
	next := &models.Room{}
	if err := json.Unmarshal(patched, next); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("patch %s: %w", code, err)
	}

	version := entry.version + 1
	m.rooms[code] = memoryEntry{room: next, version: version}
	m.mu.Unlock()

	m.hub.Broadcast(hub.Snapshot{Code: code, Version: version, Room: next.Clone()})
	return nil
}

func (m *Memory) Remove(ctx context.Context, code string) error {
	m.mu.Lock()
	entry, ok := m.rooms[code]
	if ok {
		delete(m.rooms, code)
	}
	m.mu.Unlock()

	if ok {
		m.hub.Broadcast(hub.Snapshot{Code: code, Version: entry.version + 1, Room: nil})
	}
	return nil
}

func (m *Memory) Transact(ctx context.Context, code string, fn TransformFunc) (*models.Room, error) {
	for attempt := 0; attempt < m.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m.mu.RLock()
		entry, exists := m.rooms[code]
		m.mu.RUnlock()

		var observed *models.Room
		if exists {
			observed = entry.room.Clone()
		}

		next, err := fn(observed)
		if err != nil {
			var current *models.Room
			if exists {
				current = entry.room.Clone()
			}
			return current, err
		}

		m.mu.Lock()
		latest, stillExists := m.rooms[code]
		if stillExists != exists || (exists && latest.version != entry.version) {
			m.mu.Unlock()
			continue // lost the race, re-read and re-run the transform
		}

		switch {
		case next == nil && !exists:
			m.mu.Unlock()
			return nil, nil
		case next == nil:
			delete(m.rooms, code)
			m.mu.Unlock()
			m.hub.Broadcast(hub.Snapshot{Code: code, Version: entry.version + 1, Room: nil})
			return nil, nil
		default:
			version := entry.version + 1
			snapshot := next.Clone()
			m.rooms[code] = memoryEntry{room: snapshot, version: version}
			m.mu.Unlock()
			m.hub.Broadcast(hub.Snapshot{Code: code, Version: version, Room: snapshot.Clone()})
			return snapshot.Clone(), nil
		}
	}
	return nil, ErrConflict
}

func (m *Memory) List(ctx context.Context) ([]*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(m.rooms))
	for _, entry := range m.rooms {
		rooms = append(rooms, entry.room.Clone())
	}
	return rooms, nil
}

func (m *Memory) Subscribe(ctx context.Context, code string, onChange func(*models.Room), onError func(error)) (*Subscription, error) {
	// Register with the hub before reading the initial snapshot so a commit
	// landing in between is queued rather than lost. Queued snapshots the
	// initial read already reflects are dropped by version below.
	client := make(hub.Client, 16)
	m.hub.Subscribe(code, client)

	m.mu.RLock()
	entry, ok := m.rooms[code]
	initial := entry.room.Clone()
	last := entry.version
	m.mu.RUnlock()

	if !ok {
		m.hub.Unsubscribe(code, client)
		return nil, ErrAbsent
	}

	done := make(chan struct{})
	go func() {
		onChange(initial)
		for {
			select {
			case snap, ok := <-client:
				if !ok {
					return
				}
				if snap.Version <= last {
					continue
				}
				last = snap.Version
				onChange(snap.Room)
				if snap.Room == nil {
					m.hub.Unsubscribe(code, client)
					return
				}
			case <-ctx.Done():
				m.hub.Unsubscribe(code, client)
				return
			case <-done:
				return
			}
		}
	}()

	return NewSubscription(func() {
		close(done)
		m.hub.Unsubscribe(code, client)
	}), nil
}

func (m *Memory) Close(ctx context.Context) error {
	return nil
}
