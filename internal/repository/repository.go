package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/config"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/repository/postgres"
)

// ErrUnknownDriver is returned by Open for an unsupported STORE_DRIVER
var ErrUnknownDriver = errors.New("unknown store driver")

// CompanyRepository persists the whole company list. Partial updates are not
// supported: every write swaps the full list.
type CompanyRepository interface {
	LoadAll(ctx context.Context) ([]domain.Company, error)
	ReplaceAll(ctx context.Context, companies []domain.Company) error
}

// Open builds the store selected by cfg.Store.Driver
func Open(ctx context.Context, cfg *config.Config) (CompanyRepository, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreFile:
		return NewFileStore(cfg.Store.FilePath), nil
	case config.StorePostgres:
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("error connecting to database: %w", err)
		}
		repo := postgres.NewCompanyRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Store.Driver)
}
