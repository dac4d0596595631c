package middleware

import (
	"go-leaveledger/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

// Actor extracts the caller identity from the X-Actor-ID header. Operations
// triggered without a caller identity (external schedulers, operator scripts)
// run as the "system" actor.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		if actorID == "" {
			actorID = contextutil.SystemActor
		}

		c.Set("actor_id", actorID)

		ctx := contextutil.WithActor(c.Request.Context(), actorID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
