// File: slotbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotbook/config"
	"slotbook/cron"
	"slotbook/database/sheets"
	"slotbook/handlers"
	"slotbook/routes"
	"slotbook/services/booking"
	"slotbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	zone := config.Location()

	utils.InitSessionCache()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := sheets.NewGoogleSheetsStore(ctx, config.AppConfig.CredentialsFile, config.AppConfig.SpreadsheetID)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize sheets store: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Engine and services.
	caches := booking.NewCaches(
		config.AppConfig.MetadataTTL,
		config.AppConfig.AvailabilityTTL,
		config.AppConfig.AvailabilityCacheSize,
	)
	reminderScheduler := cron.NewAsynqReminderScheduler(zone)
	engine := &booking.DefaultBookingService{
		Store:          store,
		Cache:          caches,
		Reminders:      reminderScheduler,
		DirectorySheet: config.AppConfig.DirectorySheet,
		Reserved:       config.AppConfig.ReservedSheets,
		Columns: booking.ColumnNames{
			Location: config.AppConfig.LocationColumn,
			Provider: config.AppConfig.ProviderColumn,
			Time:     config.AppConfig.TimeColumn,
			Client:   config.AppConfig.ClientColumn,
		},
		Zone:        zone,
		HorizonDays: config.AppConfig.HorizonDays,
		Workers:     config.AppConfig.ScanWorkers,
	}

	sessionStore := booking.NewRedisSessionStore(utils.GetSessionCacheClient(), config.AppConfig.SessionTTL)
	sessionService := &booking.DefaultSessionService{
		Engine:   engine,
		Sessions: sessionStore,
	}

	bookingHandler := handlers.NewBookingHandler(sessionService, logger)
	directoryHandler := handlers.NewDirectoryHandler(engine)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, directoryHandler)

	// Background workers.
	cron.StartCacheWarmup(ctx, engine)
	cron.InitReminderWorker(cron.LogNotifier{})
	utils.StartHealthMonitor(utils.GetSessionCacheClient(), store)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
