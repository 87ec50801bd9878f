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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"edeon_enerji/internal/api"
	"edeon_enerji/internal/config"
	"edeon_enerji/internal/notify"
	"edeon_enerji/internal/repository"
	"edeon_enerji/internal/service"
	"edeon_enerji/internal/storage"
	"edeon_enerji/pkg/auth"
	"edeon_enerji/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize logger
	if err := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Directory: cfg.LogDir,
		MaxAge:    cfg.LogFileMaxAge,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	logger.WriteLog("INFO", "", "STARTUP", "Starting EDEON ENERJİ dashboard API")

	// Initialize databases
	mongoDB, err := config.InitMongo(cfg)
	if err != nil {
		log.Fatal("Failed to initialize MongoDB:", err)
	}
	defer mongoDB.Close()

	repos := service.Repositories{
		Plants:        repository.NewMongoPlantRepo(mongoDB.Database),
		Production:    repository.NewMongoProductionRepo(mongoDB.Database),
		Faults:        repository.NewMongoFaultRepo(mongoDB.Database),
		Maintenance:   repository.NewMongoMaintenanceRepo(mongoDB.Database),
		Sites:         repository.NewMongoSiteRepo(mongoDB.Database),
		Users:         repository.NewMongoUserRepo(mongoDB.Database),
		Stock:         repository.NewMongoStockRepo(mongoDB.Database),
		WorkReports:   repository.NewMongoWorkReportRepo(mongoDB.Database),
		Notifications: repository.NewMongoNotificationRepo(mongoDB.Database),
	}

	if cfg.InfluxEnabled {
		influxDB, err := config.InitInflux(cfg)
		if err != nil {
			logger.Error(fmt.Sprintf("❌ InfluxDB unavailable, production mirror disabled: %v", err))
		} else {
			defer influxDB.Close()
			repos.Mirror = repository.NewInfluxMirror(influxDB)
		}
	}

	var mailer service.Mailer
	if m := notify.NewMailer(cfg); m != nil {
		mailer = m
	}

	// Initialize services
	svc := service.New(repos, service.OptionsFromConfig(cfg), mailer)

	authn, err := newAuthenticator(cfg, repos.Users)
	if err != nil {
		log.Fatal("Failed to initialize authentication:", err)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicFileBase)
	if err != nil {
		log.Fatal("Failed to initialize upload store:", err)
	}

	// Setup HTTP server
	gin.SetMode(gin.ReleaseMode)
	h := api.NewHandler(svc, storage.NewUploader(store))
	router := api.NewRouter(h, authn, api.RouterOptions{
		FilesDir:  store.Dir(),
		FilesPath: cfg.PublicFileBase,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info(fmt.Sprintf("✓ Server starting on port %d (auth=%s)", cfg.ServerPort, cfg.AuthMode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.WriteLog("INFO", "", "SHUTDOWN", "Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("❌ Server forced shutdown: %v", err))
	}

	// Flush the production mirror before the clients close
	svc.Close()

	logger.WriteLog("INFO", "", "SHUTDOWN", "Server exited gracefully")
}

func newAuthenticator(cfg *config.Config, users repository.UserRepository) (service.Authenticator, error) {
	if cfg.AuthMode == "firebase" {
		verifier, err := auth.NewFirebaseVerifier(context.Background(), cfg.FirebaseProjectID, cfg.FirebaseCredentials)
		if err != nil {
			return nil, err
		}
		return service.NewFirebaseAuthenticator(verifier, users), nil
	}
	return service.NewJWTAuthenticator(cfg.JWTSecret, users), nil
}
