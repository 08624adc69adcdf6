package app

import (
	"context"
	"fmt"
	"time"

	"bookstore_backend/internal/config"
	"bookstore_backend/internal/email"
	"bookstore_backend/internal/handlers"
	"bookstore_backend/internal/logger"
	"bookstore_backend/internal/middleware"
	"bookstore_backend/internal/repositories"
	"bookstore_backend/internal/routes"
	"bookstore_backend/internal/services"
	"bookstore_backend/internal/validator"
	"bookstore_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Dependencies are the injectable collaborators of the HTTP layer. Tests
// substitute in-memory fakes here.
type Dependencies struct {
	Users  repositories.UserRepository
	Books  repositories.BookRepository
	Mailer email.Provider
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := connectMongo(cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "name", cfg.Database.Name)

	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to ensure user indexes", "error", err)
	}

	ginRouter := NewRouter(cfg, Dependencies{
		Users:  userRepo,
		Books:  bookRepo,
		Mailer: newMailer(cfg),
	})

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// NewRouter builds the gin engine with all middleware, handlers and routes.
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	errs := apperrors.NewGinErrorHandler(cfg.IsDevelopment(), logger.GetLogger())

	authService := services.NewAuthService(cfg, deps.Users, deps.Mailer)
	bookService := services.NewBookService(deps.Books)

	base := handlers.NewBaseHandler(validator.New(), errs)
	appHandlers := &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(base, authService),
		BookHandler: handlers.NewBookHandler(base, bookService),
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	guards := routes.NewGuards(middleware.AuthMiddleware(cfg, deps.Users, errs), errs)
	routes.RegisterRoutes(ginRouter, appHandlers, guards, errs)

	return ginRouter
}

func connectMongo(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI()))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client.Database(cfg.Database.Name), nil
}

// newMailer builds the SMTP provider, falling back to the mock when no SMTP
// host is configured (local development).
func newMailer(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, using mock email provider")
		return &MockEmailProvider{}
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		Timeout:   cfg.Email.SendTimeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	return provider
}
