package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"smartpantry/internal/config"
	"smartpantry/internal/email/noop"
	"smartpantry/internal/email/ses"
	"smartpantry/internal/handler"
	"smartpantry/internal/nutritionapi"
	"smartpantry/internal/ocr"
	"smartpantry/internal/port"
	"smartpantry/internal/pricing"
	"smartpantry/internal/repository/postgres"
	"smartpantry/internal/riskapi"
	"smartpantry/internal/router"
	"smartpantry/internal/service"
	s3storage "smartpantry/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	receiptRepo := postgres.NewReceiptRepo(db)
	nutritionRepo := postgres.NewNutritionRepo(db)
	foodRefRepo := postgres.NewFoodReferenceRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(cfg.Email.FrontendURL)
	}

	// External API clients; both are optional collaborators
	var lookup port.NutritionLookup
	if cfg.Nutrition.APIKey != "" {
		lookup = nutritionapi.NewClient(cfg.Nutrition)
	}
	var riskScorer port.RiskScorer
	if cfg.Risk.BaseURL != "" {
		riskScorer = riskapi.NewClient(cfg.Risk)
	}

	var storeClients []port.StoreClient
	for name, url := range cfg.Pricing.Stores {
		storeClients = append(storeClients, pricing.NewStoreClient(name, url, cfg.Pricing))
	}
	comparer := pricing.NewComparer(storeClients)

	extractor := ocr.NewExtractor(cfg.OCR)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	resetSvc := service.NewPasswordResetService(userRepo, emailSender, cfg.JWT)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	receiptSvc := service.NewReceiptService(receiptRepo, fileRepo, s3Client, extractor)
	nutritionSvc := service.NewNutritionService(nutritionRepo, foodRefRepo, lookup)
	insightsSvc := service.NewInsightsService(nutritionRepo, riskScorer)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, resetSvc, userRepo)
	fileH := handler.NewFileHandler(fileSvc)
	receiptH := handler.NewReceiptHandler(receiptSvc, fileSvc)
	nutritionH := handler.NewNutritionHandler(nutritionSvc)
	insightsH := handler.NewInsightsHandler(insightsSvc)
	riskH := handler.NewRiskHandler(riskScorer)
	pricingH := handler.NewPricingHandler(comparer)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, fileH, receiptH, nutritionH, insightsH, riskH, pricingH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Scan queue worker runs alongside the HTTP server
	worker := service.NewScanQueueWorker(receiptRepo, receiptSvc, service.ScanQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	<-workerDone

	return nil
}
