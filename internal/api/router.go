package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openjournal/diary-system/internal/api/handler"
	"github.com/openjournal/diary-system/internal/api/middleware"
	"github.com/openjournal/diary-system/internal/core/ports"
)

// Deps are the constructed services the router wires into handlers. They are
// built once at process start and passed in explicitly; no package-level
// state.
type Deps struct {
	Auth    ports.AuthService
	Tokens  ports.TokenService
	Entries ports.EntryService
	Users   ports.UserRepository
	Mongo   *mongo.Database
	Redis   *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("diary"))

	authed := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Tokens, deps.Users)
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/profile", authHandler.Profile, authed)
	e.PUT("/api/auth/profile", authHandler.UpdateProfile, authed)
	e.POST("/api/auth/logout", authHandler.Logout) // handles its own token checks

	// --- Diary routes ---
	diaryHandler := handler.NewDiaryHandler(deps.Entries, deps.Users)
	e.GET("/api/diary", diaryHandler.List, authed)
	e.GET("/api/diary/:id", diaryHandler.Get, authed)
	e.POST("/api/diary", diaryHandler.Create, authed)
	e.GET("/api/stats", diaryHandler.Stats, authed)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
