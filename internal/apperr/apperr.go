package apperr

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Error is a failure carrying the HTTP status it should be rendered with.
// Services raise these; the error responder middleware is the only place
// that turns them into a response.
type Error struct {
	Status  int    // HTTP status code
	Message string // Client-facing message
	Err     error  // Underlying cause, optional
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error() // Include the cause when present
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// WithCause returns a copy of the error carrying an underlying cause
func (e *Error) WithCause(err error) *Error {
	return &Error{Status: e.Status, Message: e.Message, Err: err}
}

// New creates an Error with an explicit status
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest marks malformed/missing input or a business-rule violation
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized marks a missing, invalid or expired token
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden marks an ownership mismatch
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound marks an absent referenced entity
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Internal wraps an unexpected failure as a 500
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
}

// Abort attaches the error to the gin context and stops the handler chain;
// the error responder middleware renders it on the way out
func Abort(c *gin.Context, err error) {
	_ = c.Error(err) // Record the error on the context
	c.Abort()        // Stop downstream handlers
}
