package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/campusops/user-service/docs"
	"github.com/campusops/user-service/internal/api/handler"
	"github.com/campusops/user-service/internal/api/middleware"
	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, accounts ports.AccountService, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("useradmin"))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Account routes ---
	accountHandler := handler.NewAccountHandler(accounts)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	users := e.Group("/user", middleware.Auth(jwtSecret))
	users.POST("/create", accountHandler.Create)
	users.PUT("/edit/:id", accountHandler.Edit)
	users.DELETE("/delete/:id", accountHandler.Delete, adminOnly)
	users.DELETE("/force-delete/:id", accountHandler.ForceDelete, adminOnly)

	return e
}
