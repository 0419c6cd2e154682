package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/repository"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/storage"
)

type bucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *bucket) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []storage.ObjectInfo
	for k, v := range b.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(v))})
		}
	}
	return out, nil
}

func (b *bucket) GetObject(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (b *bucket) PutObject(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = append([]byte(nil), data...)
	return nil
}

func newSnapshotServer(t *testing.T) *testServer {
	t.Helper()
	network := service.NewNetworkService(
		repository.NewSeeder(repository.NewMemoryStore(), analytics.RecalculateAllMetrics),
		service.Options{Admin: auth.Admin{Username: "admin", Password: "admin123"}},
	)
	require.NoError(t, network.Load(context.Background()))

	router := NewRouter(&Services{
		Network:   network,
		Tokens:    auth.NewTokenManager("test-secret", time.Hour),
		Snapshots: storage.NewSnapshotStore(&bucket{objects: map[string][]byte{}}, "snapshots"),
	}, []string{"http://localhost:5173"})
	return &testServer{router: router, network: network}
}

func TestSnapshotExportAndRestore(t *testing.T) {
	srv := newSnapshotServer(t)
	admin := srv.login(t, "admin", "admin123")

	w := srv.do(http.MethodPost, "/api/v1/snapshots", admin, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	exported := decode[map[string]string](t, w)
	assert.True(t, strings.HasPrefix(exported["key"], "snapshots/companies-"))

	listed := decode[map[string][]string](t, srv.do(http.MethodGet, "/api/v1/snapshots", admin, nil))
	assert.Equal(t, []string{exported["key"]}, listed["snapshots"])

	require.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, "/api/v1/companies/"+domain.SeedLegacyID, admin, nil).Code)
	require.Len(t, srv.network.Companies(), 1)

	w = srv.do(http.MethodPost, "/api/v1/snapshots/restore", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, srv.network.Companies(), 2)

	w = srv.do(http.MethodPost, "/api/v1/snapshots/restore", admin, map[string]string{"key": "snapshots/missing.json"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSnapshotsRequireAdmin(t *testing.T) {
	srv := newSnapshotServer(t)
	w := srv.do(http.MethodPost, "/api/v1/snapshots", srv.login(t, "chicago", "chicago123"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
