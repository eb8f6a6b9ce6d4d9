package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/webdev26/facture-api/internal/application/document"
	"github.com/webdev26/facture-api/internal/application/service"
	"github.com/webdev26/facture-api/internal/config"
	"github.com/webdev26/facture-api/internal/infrastructure/database"
	"github.com/webdev26/facture-api/internal/infrastructure/repository"
	"github.com/webdev26/facture-api/internal/presentation/http/handler"
	"github.com/webdev26/facture-api/internal/presentation/http/routes"
	"github.com/webdev26/facture-api/pkg/email"
	"github.com/webdev26/facture-api/pkg/oauth"
	"github.com/webdev26/facture-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Document rendering defaults, overridable per user via settings
	documentOpts := document.Options{
		Language:    cfg.Invoice.Language,
		Currency:    cfg.Invoice.Currency,
		UnitWord:    cfg.Invoice.UnitWord,
		SubunitWord: cfg.Invoice.SubunitWord,
		DateFormat:  cfg.Invoice.DateFormat,
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	businessService := service.NewBusinessService(businessRepo, cfg.Invoice.SequenceStart)
	clientService := service.NewClientService(clientRepo, businessRepo)
	productService := service.NewProductService(productRepo, businessRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, invoiceItemRepo, businessRepo, clientRepo, productRepo, settingsRepo, documentOpts)
	dashboardService := service.NewDashboardService(businessRepo, clientRepo, invoiceRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Business:  handler.NewBusinessHandler(businessService),
		Client:    handler.NewClientHandler(clientService),
		Product:   handler.NewProductHandler(productService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
