package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
	"github.com/jobdeck/jobboard-api/internal/auth"
	"github.com/jobdeck/jobboard-api/internal/models"
	"github.com/jobdeck/jobboard-api/internal/services"
)

const identityKey = "identity"

// RequireAuth verifies the bearer token and re-resolves the user record, so
// a token issued before a role change or a deletion does not keep working.
// The resolved user lands in the request context for handlers downstream.
func RequireAuth(tokens *auth.TokenManager, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			abort(c, apperrors.Unauthenticated("missing bearer token"))
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			abort(c, err)
			return
		}
		user, err := authService.ResolveIdentity(c.Request.Context(), claims)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// OptionalAuth resolves an identity when a bearer token is present but lets
// anonymous requests through. Used on public job routes so a posting
// company still sees its own unapproved listings.
func OptionalAuth(tokens *auth.TokenManager, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.Next()
			return
		}
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			abort(c, err)
			return
		}
		user, err := authService.ResolveIdentity(c.Request.Context(), claims)
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(identityKey, user)
		c.Next()
	}
}

// RequireRoles gates a route by role membership. Pure predicate; must run
// after RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := Identity(c)
		if user == nil {
			abort(c, apperrors.Unauthenticated("authentication required"))
			return
		}
		if !allowed[user.Role] {
			abort(c, apperrors.Forbidden("insufficient role"))
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated user set by RequireAuth, or nil.
func Identity(c *gin.Context) *models.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func abort(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"status": false, "message": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"status": false, "message": apperrors.ClientMessage(err)})
}
