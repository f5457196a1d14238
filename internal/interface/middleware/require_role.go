package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/policy"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/response"
)

// RequireRole resolves the verified identity to an account and runs the
// given policy rule against its role. The role is read fresh from the
// directory on every request, so a demotion takes effect immediately.
// An identity with no matching account is denied; a directory failure is
// reported as a server error, not an access decision.
func RequireRole(users repository.UserRepository, rule policy.RoleRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := ActorEmail(c)
		if email == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing verified identity", nil)
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortError(c, http.StatusForbidden, "access denied", nil)
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		if d := rule(u.Role); !d.Allowed {
			response.AbortError(c, d.Kind.HTTPStatus(), d.Reason, nil)
			return
		}
		c.Next()
	}
}
