package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlayerIDHeader carries the client-asserted, device-scoped player identity.
// There is deliberately no verification: identity is trusted as asserted, and
// anything privileged (kick, start) is gated on leadership re-checked inside
// the store transaction, not on who the caller claims to be here.
const PlayerIDHeader = "X-Player-Id"

const playerIDKey = "playerID"

// IdentityMiddleware resolves the caller's player id from the request header,
// minting a fresh one for first-time clients and echoing it back so the
// device can persist it.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(PlayerIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(PlayerIDHeader, id)
		c.Set(playerIDKey, id)
		c.Next()
	}
}

// PlayerID returns the player id resolved by IdentityMiddleware.
func PlayerID(c *gin.Context) string {
	id, _ := c.Get(playerIDKey)
	s, _ := id.(string)
	return s
}
