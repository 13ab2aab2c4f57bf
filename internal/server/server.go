package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/pollboard/backend/internal/database"
	"github.com/emilythestrangee/pollboard/backend/internal/handlers"
	"github.com/emilythestrangee/pollboard/backend/internal/middleware"
	"github.com/emilythestrangee/pollboard/backend/internal/storage"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Initialize database
	db := database.New()

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	files, err := storage.NewLocalFileStore(uploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	// Create unified handler
	handler := handlers.NewHandler(db.GetDB(), files)

	// Create server instance
	newServer := &Server{
		db:      db,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads and guest-capable writes. Optional auth: a valid
		// token identifies the user, otherwise the request is a guest.
		open := api.Group("")
		open.Use(middleware.OptionalAuthMiddleware())
		{
			open.GET("/polls", s.handler.Poll.GetPolls)
			open.GET("/polls/:id", s.handler.Poll.GetPoll)
			open.GET("/polls/:id/reactions", s.handler.Poll.GetReactions)
			open.GET("/polls/:id/comments", s.handler.Comment.GetComments)
			open.GET("/polls/:id/export", s.handler.Poll.ExportResults)
			open.GET("/comments/:id/replies", s.handler.Comment.GetReplies)
			open.GET("/leaderboard", s.handler.Leaderboard.GetLeaderboard)
			open.GET("/users/:id/badges", s.handler.Leaderboard.GetUserBadges)

			// Guests vote and react with an email in the body
			open.POST("/polls/:id/vote", s.handler.Poll.CastVote)
			open.POST("/polls/:id/react", s.handler.Poll.React)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/polls", s.handler.Poll.CreatePoll)
			protected.POST("/polls/:id/comments", s.handler.Comment.CreateComment)
			protected.POST("/comments/:id/report", s.handler.Comment.ReportComment)

			protected.GET("/profile", s.handler.Profile.GetProfile)
			protected.PUT("/profile", s.handler.Profile.UpdateProfile)
			protected.POST("/profile/picture", s.handler.Profile.UploadProfilePicture)

			// Admin operations check the role explicitly in the handler
			protected.GET("/admin/dashboard", s.handler.Admin.Dashboard)
			protected.DELETE("/polls/:id", s.handler.Admin.DeletePoll)
			protected.DELETE("/comments/:id", s.handler.Admin.DeleteComment)
		}
	}

	return r
}
