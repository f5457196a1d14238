package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/identity"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/response"
)

const (
	CtxActorEmail = "actorEmail"
	CtxActorName  = "actorName"
)

// Auth verifies the Authorization bearer credential and stores the verified
// identity in the Gin context. It never touches the user directory; role
// resolution is RequireRole's job.
func Auth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid bearer token", nil)
			return
		}
		c.Set(CtxActorEmail, id.Email)
		c.Set(CtxActorName, id.Name)
		c.Next()
	}
}

// ActorEmail returns the verified caller email set by Auth.
func ActorEmail(c *gin.Context) string {
	return c.GetString(CtxActorEmail)
}
