package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/sweetshop/inventory-system/internal/api/handler"
	"github.com/sweetshop/inventory-system/internal/api/middleware"
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
	"github.com/sweetshop/inventory-system/internal/core/service"
	mongodb "github.com/sweetshop/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sweetshop/inventory-system/internal/infrastructure/db/redis"
)

// Options carries the runtime dependencies and settings the router needs.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the catalog then runs without a read cache.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sweetRepo := mongodb.NewSweetRepository(db)

	var cache ports.SweetCache
	if rdb != nil {
		cache = redisdb.NewSweetCache(rdb, 0)
	}

	authService := service.NewAuthService(userRepo, opts.JWTSecret, opts.TokenTTL)
	sweetService := service.NewSweetService(sweetRepo, cache, opts.Logger)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(sweetService)

	authMW := middleware.Auth(authService)
	adminMW := middleware.RBAC(domain.RoleAdmin)

	// 5 req/s with a burst of 10 per client on the credential endpoints.
	credentialLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register, credentialLimiter.Middleware())
	auth.POST("/login", authHandler.Login, credentialLimiter.Middleware())
	auth.GET("/me", authHandler.Me, authMW)

	// --- Catalog routes (bearer-authenticated) ---
	sweets := e.Group("/api/sweets", authMW)
	sweets.POST("", sweetHandler.Create)
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.GET("/:id", sweetHandler.Get)
	sweets.PUT("/:id", sweetHandler.Update)
	sweets.POST("/:id/purchase", sweetHandler.Purchase)

	// Admin-only mutations.
	sweets.DELETE("/:id", sweetHandler.Delete, adminMW)
	sweets.POST("/:id/restock", sweetHandler.Restock, adminMW)

	// --- Ops surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
