package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/accounthub/accounts-api/internal/config"
	"github.com/accounthub/accounts-api/internal/platform/logger"
	"github.com/accounthub/accounts-api/internal/platform/postgres"
	"github.com/accounthub/accounts-api/internal/service"
	"github.com/accounthub/accounts-api/internal/service/auth"
)

// application bundles the long-lived dependencies of the running server.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	accounts service.AccountService
}

// initializeApp loads configuration, sets up logging, connects to the
// database, applies pending migrations and wires the service layer.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeDatabase(db, log)
		return nil, err
	}

	userStore := postgres.NewUserStore(db, log)
	accounts := service.NewAccountService(
		userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		log,
	)

	return &application{
		config:   cfg,
		logger:   log,
		db:       db,
		accounts: accounts,
	}, nil
}

// cleanup releases the application's resources.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("failed to close database connection", "error", err)
	}
}
