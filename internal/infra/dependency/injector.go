// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/invoice-tracker/invoicetrack/config"
	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/application/usecase/auth"
	"github.com/invoice-tracker/invoicetrack/internal/application/usecase/invoice"
	"github.com/invoice-tracker/invoicetrack/internal/infra/server/router"
	"github.com/invoice-tracker/invoicetrack/internal/integration/adapters"
	"github.com/invoice-tracker/invoicetrack/internal/integration/email"
	"github.com/invoice-tracker/invoicetrack/internal/integration/email/templates"
	"github.com/invoice-tracker/invoicetrack/internal/integration/entrypoint/controller"
	"github.com/invoice-tracker/invoicetrack/internal/integration/entrypoint/middleware"
	"github.com/invoice-tracker/invoicetrack/internal/integration/persistence"
	"github.com/invoice-tracker/invoicetrack/internal/integration/storage"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	extractionLogRepo := persistence.NewExtractionLogRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	fileStore, err := storage.NewLocalStore(cfg.Upload.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	var extractor adapter.ExtractionService
	if cfg.Gemini.APIKey != "" {
		extractor = adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	} else {
		slog.Info("Gemini extraction disabled, no API key configured")
	}

	emailService := email.NewService(emailQueueRepo)

	// Create email worker when a provider key is configured
	var emailWorker *email.Worker
	if cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize email templates: %w", err)
		}
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		emailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	}

	// Create use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, emailService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	createInvoiceUseCase := invoice.NewCreateInvoiceUseCase(invoiceRepo, extractionLogRepo, fileStore, extractor)
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo)
	updateInvoiceUseCase := invoice.NewUpdateInvoiceUseCase(invoiceRepo)
	deleteInvoiceUseCase := invoice.NewDeleteInvoiceUseCase(invoiceRepo, fileStore)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, emailWorker != nil)

	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	invoiceController := controller.NewInvoiceController(
		createInvoiceUseCase,
		listInvoicesUseCase,
		updateInvoiceUseCase,
		deleteInvoiceUseCase,
		cfg.Upload.MaxFileSize,
	)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter(redisClient)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	appRouter := router.NewRouter(
		healthController,
		authController,
		invoiceController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      appRouter,
		EmailWorker: emailWorker,
	}, nil
}
