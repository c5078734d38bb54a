package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/twende-app/twende/internal/pkg/config"
	"github.com/twende-app/twende/internal/pkg/database"
	"github.com/twende-app/twende/internal/pkg/logger"
	"github.com/twende-app/twende/internal/pkg/middleware"
	"github.com/twende-app/twende/internal/pkg/nats"
	nrpkg "github.com/twende-app/twende/internal/pkg/newrelic"
	driversHandler "github.com/twende-app/twende/services/drivers/handler"
	driversRepository "github.com/twende-app/twende/services/drivers/repository"
	driversUsecase "github.com/twende-app/twende/services/drivers/usecase"
	matchGateway "github.com/twende-app/twende/services/match/gateway"
	matchHandler "github.com/twende-app/twende/services/match/handler"
	matchRepository "github.com/twende-app/twende/services/match/repository"
	matchUsecase "github.com/twende-app/twende/services/match/usecase"
	ridesGateway "github.com/twende-app/twende/services/rides/gateway"
	ridesHandler "github.com/twende-app/twende/services/rides/handler"
	ridesRepository "github.com/twende-app/twende/services/rides/repository"
	ridesUsecase "github.com/twende-app/twende/services/rides/usecase"
)

func main() {
	appName := "dispatch-service"
	configPath := "config/dispatch.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	db := postgresClient.GetDB()

	// Rides: lifecycle, fare estimate, ratings
	rideRepo := ridesRepository.NewRideRepository(configs, db)
	rideGW := ridesGateway.NewRideGW(natsClient)
	rideUC := ridesUsecase.NewRideUsecase(configs, rideRepo, rideGW)

	// Match: claimable pool, claims arbitrated through the ride lifecycle
	matchRepo := matchRepository.NewMatchRepository(configs, db, redisClient)
	matchGW := matchGateway.NewMatchGW(natsClient)
	matchUC := matchUsecase.NewMatchUsecase(configs, matchRepo, matchGW, rideUC)

	// Drivers: earnings, stats, presence
	driverRepo := driversRepository.NewDriverRepository(configs, db, redisClient)
	driverUC := driversUsecase.NewDriverUsecase(configs, driverRepo)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Panic recovery goes first so it wraps everything else
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	e.GET("/health", func(c echo.Context) error {
		checks := map[string]string{
			"postgres": "ok",
			"redis":    "ok",
			"nats":     "ok",
		}
		status := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := postgresClient.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := redisClient.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if !natsClient.IsConnected() {
			checks["nats"] = "disconnected"
			status = http.StatusServiceUnavailable
		}

		return c.JSON(status, map[string]interface{}{
			"service": appName,
			"version": configs.App.Version,
			"checks":  checks,
		})
	})

	// Register service routes
	ridesHandler.NewHandler(rideUC, configs).RegisterRoutes(e)
	matchHandler.NewHandler(matchUC, configs).RegisterRoutes(e)
	driversHandler.NewHandler(driverUC, configs).RegisterRoutes(e)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%d", configs.Server.Port)
		zapLogger.Info("Starting HTTP server",
			logger.String("address", addr),
			logger.String("app", appName))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	logger.Info("Server exited")
}
