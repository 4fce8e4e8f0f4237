// Package game implements the room coordination core: registry, membership,
// role assignment and turn rotation, all funnelled through one optimistic
// transaction path against the shared state store.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/patelshaan/imposter/internal/models"
	"github.com/patelshaan/imposter/internal/store"
)

// Config tunes a Service. Zero values fall back to defaults.
type Config struct {
	// OpTimeout is the deadline applied to every state-mutating operation,
	// covering store round-trips and conflict retries. Default 5s.
	OpTimeout time.Duration
	// CodeRetries bounds how many candidate codes CreateRoom tries before
	// giving up with ErrCodeExhausted. Default 6.
	CodeRetries int
	// Codes overrides the room-code generator. Default crypto/rand.
	Codes CodeGenerator
	// Now overrides the clock, for tests. Default time.Now.
	Now func() time.Time
}

// Service is the coordination core. All room state lives in the store; a
// Service holds no room state of its own and any number of them, in any
// number of processes, may act on the same room concurrently.
type Service struct {
	store       store.Store
	codes       CodeGenerator
	opTimeout   time.Duration
	codeRetries int
	now         func() time.Time
}

// NewService creates a Service over the given store.
func NewService(st store.Store, cfg Config) *Service {
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 5 * time.Second
	}
	if cfg.CodeRetries < 1 {
		cfg.CodeRetries = 6
	}
	if cfg.Codes == nil {
		cfg.Codes = NewCodeGenerator()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		store:       st,
		codes:       cfg.Codes,
		opTimeout:   cfg.OpTimeout,
		codeRetries: cfg.CodeRetries,
		now:         cfg.Now,
	}
}

// atomically is the single choke point for room mutations: it runs the
// transform as an optimistic transaction with the operation deadline applied
// and translates store failures into the caller-facing taxonomy. A transform
// returning errNoChange succeeds without committing anything.
func (s *Service) atomically(ctx context.Context, code string, fn store.TransformFunc) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	room, err := s.store.Transact(ctx, code, fn)
	switch {
	case err == nil:
		return room, nil
	case errors.Is(err, errNoChange):
		return room, nil
	default:
		return nil, translateStoreErr(err)
	}
}

// translateStoreErr maps store and context failures onto the game error
// taxonomy, passing game errors through untouched.
func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrConflict):
		return ErrConflictExhausted
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, store.ErrUnavailable):
		return ErrStoreUnavailable
	default:
		return err
	}
}

// Watch subscribes to a room's change feed. onChange fires once immediately
// with the current snapshot and again after every committed mutation by any
// member; a nil snapshot means the room was deleted. After onError fires the
// subscription is dead and must be re-established.
func (s *Service) Watch(ctx context.Context, code string, onChange func(*models.Room), onError func(error)) (*store.Subscription, error) {
	sub, err := s.store.Subscribe(ctx, code, onChange, func(err error) {
		onError(translateStoreErr(err))
	})
	if errors.Is(err, store.ErrAbsent) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return sub, nil
}
