package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"goaltracker/internal/apperr" // Typed HTTP failures

	"github.com/gin-gonic/gin" // Gin web framework
)

// ErrorResponder renders any failure recorded on the context as a uniform
// JSON body {message, stack?}. It is the single place failures become
// responses; stack (underlying error detail) is echoed only outside
// production.
func ErrorResponder(isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Run the rest of the chain first

		last := c.Errors.Last() // Most recent recorded error wins
		// Nothing to do when no error was recorded or a response was already written
		if last == nil || c.Writer.Written() {
			return
		}
		status := http.StatusInternalServerError // Default when no status was set
		message := "Internal Server Error"       // Default client-facing message
		var appErr *apperr.Error
		// Typed failures carry their own status and message
		if errors.As(last.Err, &appErr) {
			status = appErr.Status
			message = appErr.Message
		}
		body := gin.H{"message": message} // Uniform error body
		if !isProd {
			body["stack"] = last.Err.Error() // Diagnostic detail outside production
		}
		c.JSON(status, body) // Serialize the failure
	}
}
