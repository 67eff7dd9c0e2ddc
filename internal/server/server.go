// Package server contains the HTTP handlers for the forum API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chika/internal/cache"
	"chika/internal/config"
	"chika/internal/database"
	"chika/internal/feed"
	"chika/internal/middleware"
	"chika/internal/models"
	"chika/internal/repository"
	"chika/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	limiter        *middleware.RateLimiter

	feedService        *service.FeedService
	postService        *service.PostService
	commentService     *service.CommentService
	voteService        *service.VoteService
	preferencesService *service.PreferencesService
	reportService      *service.ReportService
	favoriteService    *service.FavoriteService
	followService      *service.FollowService
	profileService     *service.ProfileService
}

// NewServer connects to the database and Redis and builds a server on them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	redisClient := cache.Connect(ctx, cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, which disables caching and rate limiting.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("server requires a database")
	}

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)
	reportRepo := repository.NewReportRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	followRepo := repository.NewFollowRepository(db)

	pipeline := feed.Pipeline{
		EditWindow: cfg.EditWindow(),
		Tree:       feed.TreeOptions{PromoteOrphans: cfg.PromoteOrphanComments},
	}
	store := cache.NewStore(redisClient)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("chika-api"),
		limiter:        middleware.NewRateLimiter(redisClient, cfg.RateLimitEnabled, middleware.FailOpen),
	}
	s.preferencesService = service.NewPreferencesService(prefsRepo, store, cfg.PreferencesCacheTTL())
	s.feedService = service.NewFeedService(postRepo, commentRepo, voteRepo, s.preferencesService, pipeline)
	s.postService = service.NewPostService(postRepo, cfg.EditWindow())
	s.commentService = service.NewCommentService(commentRepo, postRepo, cfg.EditWindow())
	s.voteService = service.NewVoteService(voteRepo)
	s.reportService = service.NewReportService(reportRepo, postRepo, commentRepo)
	s.favoriteService = service.NewFavoriteService(favoriteRepo, postRepo, s.preferencesService, pipeline)
	s.followService = service.NewFollowService(followRepo)
	s.profileService = service.NewProfileService(postRepo, commentRepo, voteRepo, s.preferencesService, s.followService, pipeline)

	return s, nil
}

// NewApp returns a Fiber app with the server's middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Chika API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Viewer identity. Authenticate also puts the user id on the request context.
	app.Use(middleware.Authenticate(s.config.JWTSecret))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/categories", s.GetCategories)

	// Public reads; a token only personalises them
	api.Get("/posts", s.GetFeed)
	api.Get("/posts/:id", s.GetThread)
	api.Get("/posts/:id/gallery", s.GetGallery)
	api.Get("/users/:name", s.GetProfile)
	api.Get("/users/:name/posts", s.GetAuthorPosts)
	api.Get("/users/:name/comments", s.GetAuthorComments)

	// Writes and /me need an identity. The check is attached per route so
	// unknown paths still 404.
	auth := middleware.ViewerRequired()

	posts := api.Group("/posts")
	posts.Post("/", auth, s.limiter.Limit("create_post", 5, 5*time.Minute), s.CreatePost)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:id/vote", auth, s.limiter.Limit("vote", 60, time.Minute), s.VotePost)
	posts.Post("/:id/comments", auth, s.limiter.Limit("create_comment", 10, time.Minute), s.CreateComment)
	posts.Post("/:id/favorite", auth, s.AddFavorite)
	posts.Delete("/:id/favorite", auth, s.RemoveFavorite)
	posts.Put("/:id", auth, s.UpdatePost)
	posts.Delete("/:id", auth, s.DeletePost)

	comments := api.Group("/comments")
	comments.Post("/:id/vote", auth, s.limiter.Limit("vote", 60, time.Minute), s.VoteComment)
	comments.Put("/:id", auth, s.UpdateComment)
	comments.Delete("/:id", auth, s.DeleteComment)

	me := api.Group("/me")
	me.Get("/favorites", auth, s.GetFavorites)
	me.Get("/preferences", auth, s.GetPreferences)
	me.Post("/blocked/:name", auth, s.BlockAuthor)
	me.Delete("/blocked/:name", auth, s.UnblockAuthor)
	me.Post("/keywords", auth, s.AddKeyword)
	me.Delete("/keywords/:keyword", auth, s.RemoveKeyword)
	me.Get("/following", auth, s.GetFollowing)
	me.Post("/following/:name", auth, s.FollowAuthor)
	me.Delete("/following/:name", auth, s.UnfollowAuthor)

	api.Post("/reports", auth, s.limiter.Limit("report", 10, 10*time.Minute), s.CreateReport)
}

// LivenessCheck handles liveness checks
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness checks. Redis is optional, so
// only the database decides readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus == "unhealthy" {
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases the database and Redis connections.
func (s *Server) Shutdown(_ context.Context) error {
	var errs []error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	return errors.Join(errs...)
}

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": models.Categories,
		"default":    models.DefaultCategory,
		"all":        models.AllCategories,
	})
}
