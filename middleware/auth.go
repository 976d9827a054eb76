package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/longbourn/pemberley/identity"
	"github.com/longbourn/pemberley/utils"
)

// TokenValidator resolves the user behind a bearer token. The production
// implementation asks the external identity service; tests substitute a fake.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*identity.User, error)
}

// AdminAuthMiddleware gates admin routes behind a validated bearer token.
// A missing or malformed header, an unknown token, and a failed validation
// call all collapse into the same 401 response.
func AdminAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.LogError("Missing or malformed Authorization header")
			utils.Unauthorized(c, "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := validator.Validate(c.Request.Context(), token)
		if err != nil {
			utils.LogError("Admin auth failed: %v", err)
			if appErr := utils.GetAppError(err); appErr != nil {
				utils.Unauthorized(c, appErr.Message)
			} else {
				utils.Unauthorized(c, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set("admin", user)
		utils.LogDebug("Admin %s authenticated successfully", user.ID)
		c.Next()
	}
}
