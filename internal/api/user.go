package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"goaltracker/internal/apperr"     // Typed HTTP failures
	"goaltracker/internal/domain"     // Domain models
	"goaltracker/internal/middleware" // Access guard context helpers
	"goaltracker/internal/repository" // Credential store
	"goaltracker/internal/utils"      // JWT, bcrypt and cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for register/login: public fields plus a bearer token
type AuthResponse struct {
	ID    uint   `json:"id"`    // User ID
	Name  string `json:"name"`  // Display name
	Email string `json:"email"` // Email address
	Token string `json:"token"` // JWT token
}

// Response struct for the public user projection
type UserResponse struct {
	ID    uint   `json:"id"`    // User ID
	Name  string `json:"name"`  // Display name
	Email string `json:"email"` // Email address
}

// RegisterHandler creates a credential record and returns it with a token
func RegisterHandler(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Any missing field fails the whole request
			apperr.Abort(c, apperr.BadRequest("Please add all fields").WithCause(err))
			return
		}
		// Best-effort duplicate check before insert. Two concurrent
		// registrations with the same email can both pass it; the unique
		// index on email is the backstop.
		if _, err := users.FindByEmail(c.Request.Context(), req.Email); err == nil {
			apperr.Abort(c, apperr.BadRequest("User already exists"))
			return
		} else if !errors.Is(err, repository.ErrNotFound) {
			// Lookup itself failed
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Hash the password; only the hash is ever stored
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		user := domain.User{Name: req.Name, Email: req.Email, Password: hash}
		// Attempt to create the user in the store
		if err := users.Create(c.Request.Context(), &user); err != nil {
			// Covers the duplicate-email race losing side as well
			apperr.Abort(c, apperr.BadRequest("Invalid User Data").WithCause(err))
			return
		}
		// Issue the bearer token encoding the new user ID
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Registered email
		}).Info("User registered") // Log registration
		// Return public fields plus the token
		c.JSON(http.StatusCreated, AuthResponse{
			ID:    user.ID,    // User ID
			Name:  user.Name,  // Display name
			Email: user.Email, // Email address
			Token: token,      // JWT token
		})
	}
}

// LoginHandler authenticates a user and returns public fields with a token
func LoginHandler(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Missing fields cannot match any credential record
			apperr.Abort(c, apperr.BadRequest("Invalid Credentials").WithCause(err))
			return
		}
		// Look up the credential record by email
		user, err := users.FindByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Unknown email and bad password are indistinguishable to the caller
				apperr.Abort(c, apperr.BadRequest("Invalid Credentials"))
				return
			}
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(req.Password, user.Password) {
			apperr.Abort(c, apperr.BadRequest("Invalid Credentials"))
			return
		}
		// Issue a fresh bearer token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Return public fields plus the token
		c.JSON(http.StatusOK, AuthResponse{
			ID:    user.ID,    // User ID
			Name:  user.Name,  // Display name
			Email: user.Email, // Email address
			Token: token,      // JWT token
		})
	}
}

// MeHandler returns the public projection of the authenticated caller
func MeHandler(users repository.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := currentUser(c) // Caller attached by the guard
		if !ok {
			return // currentUser already aborted
		}
		ctx := context.Background()         // Context for Redis operations
		cacheKey := utils.UserKey(caller.ID) // Cache key for the profile
		var cached UserResponse
		// Try the cache first
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, cached) // Return cached projection
				return
			}
		}
		// Re-fetch the caller by ID; the guard already validated the token
		user, err := users.FindByID(c.Request.Context(), caller.ID)
		if err != nil {
			// Caller vanished between guard and handler
			apperr.Abort(c, apperr.Unauthorized("Not Authorized").WithCause(err))
			return
		}
		resp := UserResponse{
			ID:    user.ID,    // User ID
			Name:  user.Name,  // Display name
			Email: user.Email, // Email address
		}
		// Cache the projection for 60 seconds
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		}
		c.JSON(http.StatusOK, resp) // Return the public projection
	}
}

// currentUser pulls the guard-resolved caller from context, aborting when absent
func currentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c) // Get caller from context
	if !ok || user == nil {
		// Protected handler reached without a resolved caller
		apperr.Abort(c, apperr.Unauthorized("Not Authorized"))
		return nil, false
	}
	return user, true
}
