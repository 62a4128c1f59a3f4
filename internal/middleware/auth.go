package middleware

import (
	"strings" // String manipulation

	"goaltracker/internal/apperr"     // Typed HTTP failures
	"goaltracker/internal/domain"     // Domain models
	"goaltracker/internal/repository" // Credential store lookup
	"goaltracker/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context key under which the guard stores the resolved caller
const currentUserKey = "currentUser"

// JWTAuthMiddleware validates bearer tokens and resolves the caller identity
func JWTAuthMiddleware(secret string, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			apperr.Abort(c, apperr.Unauthorized("No token, not authorized"))
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// Invalid, malformed or expired token
			apperr.Abort(c, apperr.Unauthorized("Not Authorized").WithCause(err))
			return
		}
		// Resolve the encoded user ID to a current credential record.
		// A still-valid token for a since-deleted user fails closed here.
		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			apperr.Abort(c, apperr.Unauthorized("Not Authorized").WithCause(err))
			return
		}
		user.Password = ""           // Strip the hash before anything downstream sees it
		c.Set(currentUserKey, user)  // Store the caller in context
		c.Next()                     // Proceed to the next handler
	}
}

// CurrentUser returns the caller the guard attached to the request context
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(currentUserKey) // Get caller from context
	if !ok {
		return nil, false // Guard did not run or did not resolve a caller
	}
	user, ok := v.(*domain.User) // Type-assert the stored value
	return user, ok
}
