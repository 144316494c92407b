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

	"flower-backend/internal/auth"
	"flower-backend/internal/cache"
	"flower-backend/internal/config"
	"flower-backend/internal/database"
	"flower-backend/internal/db"
	"flower-backend/internal/handlers"
	"flower-backend/internal/health"
	h "flower-backend/internal/http"
	"flower-backend/internal/middleware"
	"flower-backend/internal/monitoring"
	"flower-backend/internal/repositories"
	"flower-backend/internal/services"
	"flower-backend/internal/storage"
	"flower-backend/internal/whatsapp"
	"flower-backend/migrations"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

func main() {
	// Money fields serialize as JSON numbers, matching the UI contract.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	redisCache := cache.New(os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"), os.Getenv("REDIS_PASSWORD"))
	defer redisCache.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	farmerRepo := repositories.NewFarmerRepository(pool)
	flowerTypeRepo := repositories.NewFlowerTypeRepository(pool)
	timeSlotRepo := repositories.NewTimeSlotRepository(pool)
	rateRepo := repositories.NewMarketRateRepository(pool)
	entryRepo := repositories.NewDailyEntryRepository(pool)
	advanceRepo := repositories.NewCashAdvanceRepository(pool)
	settlementRepo := repositories.NewSettlementRepository(pool)
	auditRepo := repositories.NewAuditLogRepository(pool)
	notificationLogRepo := repositories.NewNotificationLogRepository(pool)
	onlineTxRepo := repositories.NewOnlineTransactionRepository(pool)
	dashboardRepo := repositories.NewDashboardRepository(pool)

	// Outbound providers
	var whatsappProvider whatsapp.Provider = whatsapp.NewMockService()
	if cfg.WhatsApp.Provider == "aisensy" && cfg.WhatsApp.APIKey != "" {
		whatsappProvider = whatsapp.NewAiSensyService(cfg.WhatsApp.APIKey)
	}
	log.Printf("[WhatsApp] Using %s provider", whatsappProvider.GetName())

	var razorpayClient *razorpay.Client
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		razorpayClient = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	}

	archiver := storage.NewArchiver(cfg.Archive.Endpoint, cfg.Archive.Bucket,
		cfg.Archive.AccessKey, cfg.Archive.SecretKey)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpirationHours)*time.Hour)

	// Services
	auditService := services.NewAuditService(auditRepo)
	notificationService := services.NewNotificationService(whatsappProvider, notificationLogRepo, farmerRepo)
	rateService := services.NewRateService(rateRepo, timeSlotRepo, redisCache)
	userService := services.NewUserService(userRepo, totpRepo, jwtManager)
	totpService := services.NewTOTPService(totpRepo, userRepo)
	farmerService := services.NewFarmerService(farmerRepo, auditService)
	entryService := services.NewEntryService(entryRepo, farmerRepo, flowerTypeRepo, rateService, auditService)
	advanceService := services.NewAdvanceService(advanceRepo, farmerRepo, auditService, notificationService)
	settlementService := services.NewSettlementService(settlementRepo, farmerRepo, auditService, notificationService)
	reportService := services.NewReportService(settlementService, farmerService, archiver)
	paymentService := services.NewPaymentService(razorpayClient, cfg.Razorpay.WebhookSecret,
		onlineTxRepo, settlementRepo, farmerRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	farmerHandler := handlers.NewFarmerHandler(farmerService, notificationService)
	masterDataHandler := handlers.NewMasterDataHandler(flowerTypeRepo, timeSlotRepo, rateService)
	entryHandler := handlers.NewEntryHandler(entryService)
	advanceHandler := handlers.NewAdvanceHandler(advanceService)
	settlementHandler := handlers.NewSettlementHandler(settlementService, reportService, totpService)
	reportHandler := handlers.NewReportHandler(reportService)
	auditHandler := handlers.NewAuditHandler(auditService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	totpHandler := handlers.NewTOTPHandler(totpService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	dashboardHub := monitoring.NewDashboardHub(dashboardRepo, redisCache)
	go dashboardHub.Run()
	defer dashboardHub.Stop()

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		farmerHandler,
		masterDataHandler,
		entryHandler,
		advanceHandler,
		settlementHandler,
		reportHandler,
		auditHandler,
		paymentHandler,
		totpHandler,
		healthHandler,
		dashboardHub,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.NewCORS(cfg)(
			middleware.MetricsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
