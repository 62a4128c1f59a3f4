package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Cache TTL

	"goaltracker/internal/apperr"     // Typed HTTP failures
	"goaltracker/internal/domain"     // Domain models
	"goaltracker/internal/repository" // Goal and credential stores
	"goaltracker/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Request struct for goal creation
type CreateGoalRequest struct {
	Text string `json:"text"` // Goal text; emptiness is checked explicitly
}

// Request struct for goal update: a partial patch, text replacement only
type UpdateGoalRequest struct {
	Text *string `json:"text"` // Replacement text, nil when not part of the patch
}

// ListGoalsHandler returns all goals owned by the authenticated caller
func ListGoalsHandler(goals repository.GoalRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := currentUser(c) // Caller attached by the guard
		if !ok {
			return // currentUser already aborted
		}
		ctx := context.Background()              // Context for Redis operations
		cacheKey := utils.GoalListKey(caller.ID) // Cache key for the goal list
		var cached []domain.Goal
		// Try the cache first
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, cached) // Return cached list
				return
			}
		}
		// Fetch the caller's goals from the store
		list, err := goals.ListByUser(c.Request.Context(), caller.ID)
		if err != nil {
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Cache the list for 60 seconds; mutations invalidate it
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, list, 60*time.Second)
		}
		c.JSON(http.StatusOK, list) // Return the goal list
	}
}

// CreateGoalHandler inserts a new goal owned by the authenticated caller
func CreateGoalHandler(goals repository.GoalRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := currentUser(c) // Caller attached by the guard
		if !ok {
			return // currentUser already aborted
		}
		var req CreateGoalRequest // Bind JSON request to struct
		// Missing body, malformed JSON and empty text all fail the same way
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			apperr.Abort(c, apperr.BadRequest("Please add a text field"))
			return
		}
		// New goal owned by the caller
		goal := domain.Goal{UserID: caller.ID, Text: req.Text}
		// Insert into the store
		if err := goals.Create(c.Request.Context(), &goal); err != nil {
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Log goal creation
		logrus.WithFields(logrus.Fields{
			"user_id": caller.ID, // Owning user ID
			"goal_id": goal.ID,   // New goal ID
		}).Info("Goal created") // Log creation
		invalidateGoalCache(rdb, caller.ID) // Drop the stale cached list
		c.JSON(http.StatusOK, goal)         // Return the created record
	}
}

// UpdateGoalHandler replaces a goal's text after ownership checks
func UpdateGoalHandler(goals repository.GoalRepository, users repository.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := currentUser(c) // Caller attached by the guard
		if !ok {
			return // currentUser already aborted
		}
		// Parse the goal ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apperr.Abort(c, apperr.BadRequest("Invalid goal id"))
			return
		}
		// Check order matters: (1) goal exists, (2) caller resolves, (3) caller owns it
		goal, err := goals.FindByID(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				apperr.Abort(c, apperr.NotFound("goal not found"))
				return
			}
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Defensive re-check that the caller still resolves to a current user
		user, err := users.FindByID(c.Request.Context(), caller.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				apperr.Abort(c, apperr.NotFound("User not found"))
				return
			}
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Nobody updates another user's goals
		if goal.UserID != user.ID {
			apperr.Abort(c, apperr.Forbidden("User not authorized"))
			return
		}
		var req UpdateGoalRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Abort(c, apperr.BadRequest("Invalid request").WithCause(err))
			return
		}
		// Apply the patch: text replacement only
		if req.Text != nil {
			if strings.TrimSpace(*req.Text) == "" {
				// A goal never holds empty text
				apperr.Abort(c, apperr.BadRequest("Please add a text field"))
				return
			}
			goal.Text = *req.Text
		}
		// Persist the updated record
		if err := goals.Save(c.Request.Context(), goal); err != nil {
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Log goal update
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // Owning user ID
			"goal_id": goal.ID, // Updated goal ID
		}).Info("Goal updated") // Log update
		invalidateGoalCache(rdb, user.ID) // Drop the stale cached list
		c.JSON(http.StatusOK, goal)       // Return the updated record
	}
}

// DeleteGoalHandler removes a goal after the same ownership checks as update
func DeleteGoalHandler(goals repository.GoalRepository, users repository.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := currentUser(c) // Caller attached by the guard
		if !ok {
			return // currentUser already aborted
		}
		// Parse the goal ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apperr.Abort(c, apperr.BadRequest("Invalid goal id"))
			return
		}
		// Same check order as update: existence, caller, ownership
		goal, err := goals.FindByID(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				apperr.Abort(c, apperr.NotFound("goal not found"))
				return
			}
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Defensive re-check that the caller still resolves to a current user
		user, err := users.FindByID(c.Request.Context(), caller.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				apperr.Abort(c, apperr.NotFound("User not found"))
				return
			}
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Nobody deletes another user's goals
		if goal.UserID != user.ID {
			apperr.Abort(c, apperr.Forbidden("User not authorized"))
			return
		}
		// Remove the record from the store
		if err := goals.Delete(c.Request.Context(), goal.ID); err != nil {
			apperr.Abort(c, apperr.Internal(err))
			return
		}
		// Log goal deletion
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // Owning user ID
			"goal_id": goal.ID, // Deleted goal ID
		}).Info("Goal deleted") // Log deletion
		invalidateGoalCache(rdb, user.ID) // Drop the stale cached list
		// Return a confirmation payload
		c.JSON(http.StatusOK, gin.H{
			"message": "Goal deleted", // Confirmation message
			"id":      goal.ID,        // Removed goal ID
		})
	}
}

// invalidateGoalCache drops a user's cached goal list after any mutation
func invalidateGoalCache(rdb *redis.Client, userID uint) {
	if rdb == nil {
		return // Cache disabled
	}
	ctx := context.Background()                              // Context for Redis operations
	_ = utils.DeleteCache(ctx, rdb, utils.GoalListKey(userID)) // Best effort, list is also TTL-bound
}
