// Package store abstracts the shared, multi-writer state store that holds
// room documents. Any backend offering keyed documents, change notification
// and an optimistic read-modify-write primitive can implement it; the memory,
// postgres and mongo drivers in this package do.
package store

import (
	"context"
	"errors"

	"github.com/patelshaan/imposter/internal/models"
)

var (
	// ErrAbsent is returned by Get when no document exists at the code.
	ErrAbsent = errors.New("store: document absent")
	// ErrConflict is returned by Transact when the retry budget is spent
	// without a commit landing.
	ErrConflict = errors.New("store: transaction conflict retries exhausted")
	// ErrUnavailable wraps transport or configuration failures. It must never
	// be conflated with ErrAbsent.
	ErrUnavailable = errors.New("store: unavailable")
)

// TransformFunc maps the current room document to its next state. It receives
// nil when the document is absent; returning nil deletes the document.
// Returning an error aborts the transaction without committing.
type TransformFunc func(*models.Room) (*models.Room, error)

// Subscription is a live change feed for one room. Cancel stops delivery and
// releases the feed; it is safe to call more than once.
type Subscription struct {
	cancel func()
}

func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Store is the single synchronization point between independent clients of a
// room. Implementations must make Transact an atomic compare-and-swap: a
// concurrent commit between the read and the write forces a re-read and a
// re-run of the transform, bounded by the driver's retry budget.
type Store interface {
	// Get returns the current snapshot, or ErrAbsent.
	Get(ctx context.Context, code string) (*models.Room, error)

	// Put creates the document, failing with ErrConflict if one already
	// exists at the code. Only initial room creation uses it; every later
	// mutation goes through Transact.
	Put(ctx context.Context, code string, room *models.Room) error

	// Patch applies a multi-field atomic update. Fields are top-level
	// document field names (JSON names). Authoritative game mutations do not
	// use Patch because it cannot re-validate state it does not read.
	Patch(ctx context.Context, code string, fields map[string]any) error

	// Remove deletes the document. Removing an absent document is not an
	// error.
	Remove(ctx context.Context, code string) error

	// Transact runs the optimistic read-transform-commit cycle. On success it
	// returns the committed snapshot. If fn returns an error the transaction
	// is aborted and Transact returns the snapshot fn observed alongside that
	// error, so callers can surface idempotent no-ops cheaply.
	Transact(ctx context.Context, code string, fn TransformFunc) (*models.Room, error)

	// List returns a snapshot of every stored room, for discovery reads.
	// The result may be stale; callers must not base authoritative decisions
	// on it.
	List(ctx context.Context) ([]*models.Room, error)

	// Subscribe delivers the current snapshot immediately, then a fresh
	// snapshot after every committed change, including deletions (delivered
	// as nil). After onError fires the subscription is terminally failed and
	// must be re-established by the caller.
	Subscribe(ctx context.Context, code string, onChange func(*models.Room), onError func(error)) (*Subscription, error)

	// Close releases the backend connection.
	Close(ctx context.Context) error
}
