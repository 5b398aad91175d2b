package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/templui/fileshare/internal/config"
	"github.com/templui/fileshare/internal/db"
	"github.com/templui/fileshare/internal/repository"
	"github.com/templui/fileshare/internal/service"
	"github.com/templui/fileshare/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	Storage        storage.Storage
	AuthService    *service.AuthService
	SessionService *service.SessionService
	FileService    *service.FileService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	sessionRepository := repository.NewSessionRepository(database)

	// Storage
	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	authService := service.NewAuthService(userRepository)
	sessionService := service.NewSessionService(
		sessionRepository,
		cfg.SessionSecret,
		cfg.SessionExpiry,
		cfg.CookieSecure,
	)
	fileService := service.NewFileService(fileStorage, cfg.MaxUploadSize)

	return &App{
		Cfg:            cfg,
		DB:             database,
		Storage:        fileStorage,
		AuthService:    authService,
		SessionService: sessionService,
		FileService:    fileService,
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if closer, ok := a.Storage.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
