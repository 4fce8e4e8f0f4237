package models

import "time"

// Role is the hidden role dealt to a player when the game starts.
type Role string

const (
	RoleCrewmate Role = "crewmate"
	RoleImposter Role = "imposter"
)

// Player represents a participant bound to a room. The ID is asserted by the
// client and stable for that device across sessions.
type Player struct {
	ID       string    `json:"id" bson:"id"`
	Name     string    `json:"name" bson:"name"`
	Role     Role      `json:"role" bson:"role"`
	JoinedAt time.Time `json:"joined_at" bson:"joined_at"`
}
