// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"bioainexus/internal/cache"
	"bioainexus/internal/captcha"
	"bioainexus/internal/config"
	"bioainexus/internal/database"
	"bioainexus/internal/featureflags"
	"bioainexus/internal/middleware"
	"bioainexus/internal/observability"
	"bioainexus/internal/repository"
	"bioainexus/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config            *config.Config
	db                *gorm.DB
	redis             *redis.Client
	promMiddleware    *fiberprometheus.FiberPrometheus
	authorRepo        repository.AuthorRepository
	postRepo          repository.PostRepository
	commentRepo       repository.CommentRepository
	engagementRepo    repository.EngagementRepository
	settingRepo       repository.SettingRepository
	subscriberRepo    repository.SubscriberRepository
	categoryRepo      repository.CategoryRepository
	featureFlags      *featureflags.Manager
	captchaService    *captcha.Service
	postService       *service.PostService
	commentService    *service.CommentService
	engagementService *service.EngagementService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	authorRepo := repository.NewAuthorRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	middleware.InitMiddleware(cfg)
	prom := observability.InitMetrics("bioainexus-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		authorRepo:     authorRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		engagementRepo: engagementRepo,
		settingRepo:    settingRepo,
		subscriberRepo: subscriberRepo,
		categoryRepo:   categoryRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		captchaService: captcha.NewService(captcha.NewStore(redisClient)),
	}
	server.postService = service.NewPostService(server.postRepo, server.featureFlags)
	server.commentService = service.NewCommentService(
		server.commentRepo, server.postRepo, server.captchaService, server.featureFlags)
	server.engagementService = service.NewEngagementService(server.engagementRepo, server.postRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Anonymous visitor identity cookie, before the context middleware so
	// the ID reaches the structured logger.
	app.Use(middleware.VisitorIdentity())

	// Context middleware to propagate request ID and identity
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// OpenTelemetry tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware runs before middlewares that can short-circuit (e.g.
	// limiter) so browser clients still receive CORS headers on errors.
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

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "BioAi Nexus Metrics Dashboard",
	}))

	// Crawler surfaces
	app.Get("/sitemap.xml", s.Sitemap)
	app.Get("/rss.xml", s.RSSFeed)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Captcha issuance for the comment form
	api.Get("/captcha", middleware.RateLimit(
		s.redis, 20, time.Minute, "captcha"), s.GetCaptcha)

	// Site chrome
	api.Get("/categories", s.GetCategories)
	api.Post("/subscribers", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "subscribe"), s.CreateSubscriber)
	api.Get("/settings/:key", s.GetSetting)

	// Public post routes. Specific paths before the generic /:slug.
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchPosts)
	posts.Get("/:slug/comments", s.GetComments)
	posts.Post("/:slug/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment)
	posts.Post("/:slug/like", middleware.RateLimit(
		s.redis, 30, time.Minute, "toggle_like"), s.ToggleLike)
	posts.Post("/:slug/bookmark", middleware.RateLimit(
		s.redis, 30, time.Minute, "toggle_bookmark"), s.ToggleBookmark)
	posts.Get("/:slug/share-links", s.GetShareLinks)
	posts.Get("/:slug", s.GetPost)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthRequired, middleware.AdminRequired)
	admin.Get("/posts", s.AdminGetPosts)
	admin.Post("/posts", s.AdminCreatePost)
	admin.Get("/posts/:id", s.AdminGetPost)
	admin.Put("/posts/:id/flag", s.AdminSetPostFlag)
	admin.Get("/settings/:key", s.GetSetting)
	admin.Put("/settings/:key", s.AdminPutSetting)
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// Shutdown releases server-held resources. The Fiber app itself is shut
// down by the caller.
func (s *Server) Shutdown(_ context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}
	return nil
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional; the cache layer degrades without it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "BioAi Nexus",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
