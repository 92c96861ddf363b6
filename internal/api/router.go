package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/supatodo/todolist-api/internal/api/handler"
	"github.com/supatodo/todolist-api/internal/api/middleware"
	"github.com/supatodo/todolist-api/internal/core/ports"
	"github.com/supatodo/todolist-api/internal/core/service"
	mongodb "github.com/supatodo/todolist-api/internal/infrastructure/db/mongo"
	redisdb "github.com/supatodo/todolist-api/internal/infrastructure/db/redis"
	httphandlers "github.com/supatodo/todolist-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. rdb may be nil; the rank mutex and the Redis readiness check
// are then skipped.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todolist"))

	// --- Dependencies ---
	seq := mongodb.NewSequenceAllocator(db)
	userRepo := mongodb.NewUserRepository(db, seq)
	todoRepo := mongodb.NewTodoRepository(db, seq)

	var orderMutex ports.OrderMutex
	if rdb != nil {
		orderMutex = redisdb.NewOrderMutex(rdb)
	}

	hasher := service.NewBcryptHasher()
	tokenService := service.NewTokenService(jwtSecret, 24*time.Hour)
	authService := service.NewAuthService(userRepo, tokenService, hasher, log)
	userService := service.NewUserService(userRepo, todoRepo, hasher, log)
	todoService := service.NewTodoService(todoRepo, orderMutex, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	todoHandler := handler.NewTodoHandler(todoService)
	authMiddleware := middleware.Auth(tokenService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Todo routes (bearer token required) ---
	todos := e.Group("/todos", authMiddleware)
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.Get)
	todos.PATCH("/:id", todoHandler.Update)
	todos.PATCH("/:id/order", todoHandler.SetOrder)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Profile routes (bearer token required) ---
	users := e.Group("/users", authMiddleware)
	users.GET("/me", userHandler.Me)
	users.PATCH("/me", userHandler.UpdateMe)
	users.DELETE("/me", userHandler.DeleteMe)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := httphandlers.NewHealthHandler()
	readinessHandler := httphandlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
