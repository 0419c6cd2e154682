package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

// FileStore persists the company list as one JSON document. Writes go to a
// temp file first and are renamed into place.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadAll returns an empty list when the file does not exist yet
func (s *FileStore) LoadAll(ctx context.Context) ([]domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []domain.Company{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading company file: %w", err)
	}

	var companies []domain.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("error decoding company file: %w", err)
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return companies, nil
}

func (s *FileStore) ReplaceAll(ctx context.Context, companies []domain.Company) error {
	if companies == nil {
		companies = []domain.Company{}
	}
	data, err := json.MarshalIndent(companies, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding companies: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("error writing company file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error replacing company file: %w", err)
	}
	return nil
}
