package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/config"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) LoadAll(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	companies, _ := args.Get(0).([]domain.Company)
	return companies, args.Error(1)
}

func (m *mockRepository) ReplaceAll(ctx context.Context, companies []domain.Company) error {
	args := m.Called(ctx, companies)
	return args.Error(0)
}

// markRecalc stamps the network score so tests can see the derivation ran
func markRecalc(d domain.ScenarioData) domain.ScenarioData {
	out := d.Clone()
	out.ResilienceScore = 42
	return out
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	seed := domain.SeedCompanies()
	require.NoError(t, store.ReplaceAll(ctx, seed))
	seed[0].Name = "mutated"

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Innovate Inc.", loaded[0].Name)

	loaded[0].Data.Suppliers[0].Name = "mutated"
	again, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Data.Suppliers[0].Name)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope", "companies.json"))

	companies, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "data", "companies.json"))

	seed := domain.SeedCompanies()
	require.NoError(t, store.ReplaceAll(ctx, seed))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, loaded)

	require.NoError(t, store.ReplaceAll(ctx, nil))
	loaded, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSeederSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seeder := NewSeeder(store, markRecalc)

	companies, err := seeder.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	for _, c := range companies {
		assert.Equal(t, 42.0, c.Data.ResilienceScore)
		assert.Equal(t, c.Data, c.BaseData)
	}

	stored, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, companies, stored)
}

func TestSeederLeavesExistingDataAlone(t *testing.T) {
	ctx := context.Background()
	existing := domain.Company{ID: "only", Name: "Only"}
	seeder := NewSeeder(NewMemoryStore(existing), markRecalc)

	companies, err := seeder.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "only", companies[0].ID)
	assert.Zero(t, companies[0].Data.ResilienceScore)
}

func TestSeederPropagatesErrors(t *testing.T) {
	ctx := context.Background()

	failingLoad := new(mockRepository)
	failingLoad.On("LoadAll", ctx).Return(nil, errors.New("boom"))
	_, err := NewSeeder(failingLoad, markRecalc).LoadAll(ctx)
	assert.EqualError(t, err, "boom")
	failingLoad.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)

	failingWrite := new(mockRepository)
	failingWrite.On("LoadAll", ctx).Return([]domain.Company{}, nil)
	failingWrite.On("ReplaceAll", ctx, mock.Anything).Return(errors.New("disk full"))
	_, err = NewSeeder(failingWrite, markRecalc).LoadAll(ctx)
	assert.ErrorContains(t, err, "disk full")
	failingWrite.AssertExpectations(t)
}

func TestSeederCustomSeed(t *testing.T) {
	seeder := NewSeeder(NewMemoryStore(), markRecalc).WithSeed(func() []domain.Company {
		return []domain.Company{{ID: "x"}}
	})
	companies := seeder.Seed()
	require.Len(t, companies, 1)
	assert.Equal(t, 42.0, companies[0].BaseData.ResilienceScore)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, repo)

	repo, err = Open(ctx, &config.Config{Store: config.StoreConfig{Driver: config.StoreFile, FilePath: filepath.Join(t.TempDir(), "c.json")}})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, repo)

	_, err = Open(ctx, &config.Config{Store: config.StoreConfig{Driver: "mongo"}})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
