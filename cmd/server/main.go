package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appledger "github.com/rentmanager/backend/internal/application/ledger"
	"github.com/rentmanager/backend/internal/infrastructure/auth"
	"github.com/rentmanager/backend/internal/infrastructure/config"
	"github.com/rentmanager/backend/internal/infrastructure/logger"
	"github.com/rentmanager/backend/internal/infrastructure/persistence"
	"github.com/rentmanager/backend/internal/interfaces/http/handler"
	"github.com/rentmanager/backend/internal/interfaces/http/middleware"
	"github.com/rentmanager/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting rent manager backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	entryRepo := persistence.NewGormPaymentEntryRepository(db.DB)
	rentInvoiceRepo := persistence.NewGormRentInvoiceRepository(db.DB)
	financialRecordRepo := persistence.NewGormFinancialRecordRepository(db.DB)
	maintenanceInvoiceRepo := persistence.NewGormMaintenanceInvoiceRepository(db.DB)
	tenantUnitRepo := persistence.NewGormTenantUnitRepository(db.DB)

	// Application services
	normalizer := appledger.NewEntryNormalizer(tenantUnitRepo, rentInvoiceRepo, cfg.Payments.Methods, time.Now)
	linker := appledger.NewDescriptionLinker(rentInvoiceRepo, log)
	recon := appledger.NewReconciliationService(rentInvoiceRepo, financialRecordRepo, maintenanceInvoiceRepo, time.Now)
	entryService := appledger.NewPaymentEntryService(entryRepo, normalizer, linker, recon, log, time.Now)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.JWTAuthMiddleware(jwtService, "/health", "/api/v1/health"))

	healthHandler := handler.NewHealthHandler(db)
	engine.GET("/health", healthHandler.Health)

	paymentHandler := handler.NewPaymentEntryHandler(entryService)
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.NewPaymentRoutes(paymentHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
