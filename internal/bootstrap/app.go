package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrenfall/StarstreamBot_Go/internal/concurrency"
	"github.com/wrenfall/StarstreamBot_Go/internal/config"
	"github.com/wrenfall/StarstreamBot_Go/internal/database"
	"github.com/wrenfall/StarstreamBot_Go/internal/database/postgres"
	"github.com/wrenfall/StarstreamBot_Go/internal/ledger"
	"github.com/wrenfall/StarstreamBot_Go/internal/logger"
	"github.com/wrenfall/StarstreamBot_Go/internal/repository"
	"github.com/wrenfall/StarstreamBot_Go/internal/shop"
)

// Repositories holds the storage implementations shared by both binaries.
type Repositories struct {
	Ledger repository.Ledger
	Shop   repository.Shop
}

// Services holds the application services shared by both binaries.
type Services struct {
	Ledger ledger.Service
	Shop   shop.Service
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Ledger: postgres.NewLedgerRepository(dbPool),
		Shop:   postgres.NewShopRepository(dbPool),
	}
}

// InitializeServices wires services on top of the repositories.
func InitializeServices(repos *Repositories) *Services {
	locks := concurrency.NewLockManager()
	return &Services{
		Ledger: ledger.NewService(repos.Ledger),
		Shop:   shop.NewService(repos.Shop, repos.Ledger, locks),
	}
}

// InitLogger initializes the process-wide logger from app configuration.
func InitLogger(cfg *config.Config, serviceName string) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: serviceName,
		Environment: cfg.Environment,
		AddSource:   addSource,
	})
}

// Setup connects to the database, applies migrations and builds the
// service graph. The caller owns the returned pool.
func Setup(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, *Services, error) {
	connString := cfg.GetDBConnString()

	dbPool, err := database.NewPool(ctx, connString)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := database.Migrate(connString); err != nil {
		dbPool.Close()
		return nil, nil, fmt.Errorf("migrations failed: %w", err)
	}

	services := InitializeServices(InitializeRepositories(dbPool))
	return dbPool, services, nil
}
