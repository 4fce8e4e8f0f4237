package game

import "errors"

var (
	ErrValidation        = errors.New("invalid input")
	ErrRoomNotFound      = errors.New("room not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrGameStarted       = errors.New("game already started")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNotLeader         = errors.New("only the leader can do that")
	ErrCodeExhausted     = errors.New("could not allocate a free room code")
	ErrConflictExhausted = errors.New("too many concurrent updates, try again")
	ErrStoreUnavailable  = errors.New("state store unavailable")
	ErrTimeout           = errors.New("operation timed out")
)

// errNoChange aborts a transaction without committing while still reporting
// success to the caller, for the idempotent no-op cases (re-join, leaving a
// room you are not in).
var errNoChange = errors.New("no change")
