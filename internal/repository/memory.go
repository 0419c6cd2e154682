package repository

import (
	"context"
	"sync"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

// MemoryStore keeps the company list in process memory
type MemoryStore struct {
	mu        sync.RWMutex
	companies []domain.Company
}

func NewMemoryStore(initial ...domain.Company) *MemoryStore {
	return &MemoryStore{companies: domain.CloneCompanies(initial)}
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneCompanies(s.companies), nil
}

func (s *MemoryStore) ReplaceAll(ctx context.Context, companies []domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = domain.CloneCompanies(companies)
	return nil
}
