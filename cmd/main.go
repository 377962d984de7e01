package main

import (
	"context"
	"time"

	"github.com/Ivoox45/habitora-gateway/internal/cache"
	"github.com/Ivoox45/habitora-gateway/internal/handler"
	"github.com/Ivoox45/habitora-gateway/internal/middleware"
	"github.com/Ivoox45/habitora-gateway/internal/upstream"
	"github.com/Ivoox45/habitora-gateway/pkg/config"
	"github.com/Ivoox45/habitora-gateway/pkg/jwtutil"
	"github.com/Ivoox45/habitora-gateway/pkg/logger"
	"github.com/Ivoox45/habitora-gateway/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting Habitora gateway...", zap.String("environment", cfg.Server.Env))

	// Initialize JWT utilities
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utilities initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Build the response cache
	store := buildCacheStore(cfg, log)

	// Build the system-of-record client and wire the handlers
	backend := upstream.NewClient(&cfg.Upstream)
	handler.Init(backend, store)
	log.Info("Upstream client initialized", zap.String("base_url", cfg.Upstream.BaseURL))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(prometheus.MetricsMiddleware())

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			)

			return err
		}
	})

	// Public routes
	e.GET("/", handler.Hello)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes that require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	properties := api.Group("/properties/:propertyId")

	// Floors and room code allocation
	properties.GET("/floors", handler.ListFloors)
	properties.GET("/floors/:floorId/room-codes", handler.AvailableRoomCodes)

	// Rooms
	properties.GET("/rooms", handler.ListRooms)
	properties.POST("/rooms", handler.CreateRoom)
	properties.PUT("/rooms/:id", handler.UpdateRoom)
	properties.DELETE("/rooms/:id", handler.DeleteRoom)

	// Tenants
	properties.GET("/tenants", handler.ListTenants)
	properties.POST("/tenants", handler.CreateTenant)
	properties.PUT("/tenants/:id", handler.UpdateTenant)
	properties.DELETE("/tenants/:id", handler.DeleteTenant)

	// Contracts
	properties.GET("/contracts", handler.ListContracts)
	properties.GET("/contracts/:id", handler.GetContract)
	properties.POST("/contracts", handler.CreateContract)
	properties.POST("/contracts/:id/finalize", handler.FinalizeContract)
	properties.POST("/contracts/:id/sign", handler.SignContract)

	// Invoices
	properties.GET("/invoices", handler.ListInvoices)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// buildCacheStore selects the response cache backend from configuration.
func buildCacheStore(cfg *config.Config, log *zap.Logger) cache.Store {
	if cfg.Cache.Backend == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := cache.NewRedisStore(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis cache", zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
		}
		log.Info("Redis response cache initialized", zap.String("addr", cfg.Cache.RedisAddr))
		return store
	}

	log.Info("In-memory response cache initialized", zap.Duration("ttl", cfg.Cache.TTL))
	return cache.NewMemoryStore(cfg.Cache.TTL)
}
