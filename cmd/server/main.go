package main

import (
	"context"
	"fmt"
	"log"

	"github.com/examgen/examgen_go_server/config"
	"github.com/examgen/examgen_go_server/internal/api"
	"github.com/examgen/examgen_go_server/internal/api/handler"
	"github.com/examgen/examgen_go_server/internal/database"
	"github.com/examgen/examgen_go_server/internal/pkg/cron"
	"github.com/examgen/examgen_go_server/internal/pkg/email"
	"github.com/examgen/examgen_go_server/internal/pkg/llm"
	"github.com/examgen/examgen_go_server/internal/pkg/oauth"
	"github.com/examgen/examgen_go_server/internal/pkg/oss"
	"github.com/examgen/examgen_go_server/internal/pkg/userlock"
	"github.com/examgen/examgen_go_server/internal/repository"
	"github.com/examgen/examgen_go_server/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	if err := database.SeedPlans(db); err != nil {
		log.Fatalf("Failed to seed plans: %v", err)
	}

	locker := userlock.NewLocker(rdb)
	stateStore := oauth.NewStateStore(rdb)

	var ossClient *oss.Client
	if cfg.OSS.BucketName != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS client: %v", err)
		}
		log.Println("OSS client ready")
	} else {
		log.Println("OSS not configured, export disabled")
	}

	var emailSvc *email.Service
	if cfg.Email.SMTPHost != "" {
		emailSvc = email.NewService(&cfg.Email)
	} else {
		log.Println("SMTP not configured, payment emails disabled")
	}

	llmClient, err := llm.NewGeminiClient(context.Background(), &cfg.Gemini)
	if err != nil {
		log.Fatalf("Failed to init Gemini client: %v", err)
	}
	log.Println("Gemini client ready")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	quotaService := service.NewQuotaService(subRepo, planRepo, cfg)
	generationService := service.NewGenerationService(llmClient, quotaService)
	exportService := service.NewExportService(ossClient, quotaService)
	subscriptionService := service.NewSubscriptionService(subRepo, planRepo, locker)
	paymentService := service.NewPaymentService(db, paymentRepo, subRepo, planRepo, userRepo, locker, emailSvc)
	complaintService := service.NewComplaintService(complaintRepo, userRepo)
	adminService := service.NewAdminService(userRepo, planRepo, subRepo, paymentRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, stateStore)
	planHandler := handler.NewPlanHandler(planRepo)
	generateHandler := handler.NewGenerateHandler(generationService, exportService, cfg)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	adminHandler := handler.NewAdminHandler(adminService)

	router := api.NewRouter(
		authHandler,
		planHandler,
		generateHandler,
		subscriptionHandler,
		paymentHandler,
		complaintHandler,
		adminHandler,
		authService,
		cfg,
	)
	engine := router.Setup()

	cronSvc := cron.NewService(cfg.Upload.TempDir, cfg.Upload.ExpireHours)
	cronSvc.Start()
	defer cronSvc.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
