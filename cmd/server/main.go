package main

import (
	"context"                         // context package is needed for Redis operations
	"log"                             // log package is needed for logging
	"goaltracker/internal/api"        // Custom package for API handlers
	"goaltracker/internal/config"     // Custom package for configuration
	"goaltracker/internal/middleware" // Custom package for middleware
	"goaltracker/internal/repository" // Custom package for store access

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Store access for users and goals
	users := repository.NewGormUserRepository(db)
	goals := repository.NewGormGoalRepository(db)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Every failure is serialized in one place
	r.Use(middleware.ErrorResponder(cfg.IsProd))

	// Access guard for protected routes
	guard := middleware.JWTAuthMiddleware(cfg.JWTSecret, users)

	// User routes
	userGroup := r.Group("/api/users")
	userGroup.POST("", api.RegisterHandler(users, cfg.JWTSecret))        // Registration endpoint
	userGroup.POST("/login", api.LoginHandler(users, cfg.JWTSecret))     // Login endpoint
	userGroup.GET("/me", guard, api.MeHandler(users, redisClient))       // Current user endpoint

	// Goal routes (protected by the guard)
	goalGroup := r.Group("/api/goals")
	goalGroup.Use(guard)
	goalGroup.GET("", api.ListGoalsHandler(goals, redisClient))                 // List goals endpoint
	goalGroup.POST("", api.CreateGoalHandler(goals, redisClient))               // Create goal endpoint
	goalGroup.PUT("/:id", api.UpdateGoalHandler(goals, users, redisClient))     // Update goal endpoint
	goalGroup.DELETE("/:id", api.DeleteGoalHandler(goals, users, redisClient))  // Delete goal endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
