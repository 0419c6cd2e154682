package repository

import (
	"context"
	"fmt"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// Seeder wraps a store so the first load of an empty store returns the seed
// companies. Seed data goes through recalc before it is persisted, so stored
// derived fields always match their raw inputs.
type Seeder struct {
	CompanyRepository
	recalc func(domain.ScenarioData) domain.ScenarioData
	seed   func() []domain.Company
}

// NewSeeder wraps repo. recalc is the derivation function applied to each
// seed company.
func NewSeeder(repo CompanyRepository, recalc func(domain.ScenarioData) domain.ScenarioData) *Seeder {
	return &Seeder{CompanyRepository: repo, recalc: recalc, seed: domain.SeedCompanies}
}

// WithSeed replaces the seed list, mostly for tests
func (s *Seeder) WithSeed(seed func() []domain.Company) *Seeder {
	s.seed = seed
	return s
}

// LoadAll returns the stored list, seeding the store first when it is empty
func (s *Seeder) LoadAll(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.CompanyRepository.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(companies) > 0 {
		return companies, nil
	}

	seeded := s.Seed()
	if err := s.CompanyRepository.ReplaceAll(ctx, seeded); err != nil {
		return nil, fmt.Errorf("error persisting seed companies: %w", err)
	}
	log.Info().Int("count", len(seeded)).Msg("seeded empty company store")
	return seeded, nil
}

// Seed returns the seed companies with derived metrics computed and the
// baseline mirroring the live data
func (s *Seeder) Seed() []domain.Company {
	companies := s.seed()
	for i := range companies {
		companies[i].Data = s.recalc(companies[i].Data)
		companies[i].BaseData = companies[i].Data.Clone()
	}
	return companies
}
