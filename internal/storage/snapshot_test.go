package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/config"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	listErr error
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: map[string][]byte{}}
}

func (m *memoryObjects) ListObjects(_ context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []ObjectInfo
	for k, v := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, ObjectInfo{Key: k, Size: int64(len(v))})
		}
	}
	return out, nil
}

func (m *memoryObjects) GetObject(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return data, nil
}

func (m *memoryObjects) PutObject(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestSnapshotExportKey(t *testing.T) {
	objects := newMemoryObjects()
	store := NewSnapshotStore(objects, "/snapshots/")
	store.now = fixedClock(time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))

	key, err := store.Export(context.Background(), domain.SeedCompanies())
	require.NoError(t, err)
	assert.Equal(t, "snapshots/companies-20260304T050607Z.json", key)
	assert.Contains(t, objects.objects, key)
}

func TestSnapshotRestoreNewest(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(newMemoryObjects(), "snapshots")
	store.now = fixedClock(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	)

	seed := domain.SeedCompanies()
	first, err := store.Export(ctx, seed)
	require.NoError(t, err)
	second, err := store.Export(ctx, seed[:1])
	require.NoError(t, err)

	companies, key, err := store.Restore(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, second, key)
	assert.Len(t, companies, 1)

	companies, key, err = store.Restore(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first, key)
	assert.Len(t, companies, 2)
	assert.Equal(t, seed[1].Data.Connections, companies[1].Data.Connections)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{second, first}, keys)
}

func TestSnapshotRestoreMissing(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(newMemoryObjects(), "")

	_, _, err := store.Restore(ctx, "")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, _, err = store.Restore(ctx, "companies-nope.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestSnapshotRestoreBadPayload(t *testing.T) {
	objects := newMemoryObjects()
	objects.objects["companies-bad.json"] = []byte("not json")
	store := NewSnapshotStore(objects, "")

	_, _, err := store.Restore(context.Background(), "")
	assert.ErrorContains(t, err, "companies-bad.json")
}

func TestSnapshotListError(t *testing.T) {
	objects := newMemoryObjects()
	objects.listErr = errors.New("denied")
	store := NewSnapshotStore(objects, "x")

	_, err := store.List(context.Background())
	assert.EqualError(t, err, "denied")
}

func TestNewS3ClientValidation(t *testing.T) {
	_, err := NewS3Client(config.ObjectStorageConfig{})
	assert.ErrorContains(t, err, "endpoint")

	_, err = NewS3Client(config.ObjectStorageConfig{Endpoint: "s3.local"})
	assert.ErrorContains(t, err, "credentials")

	_, err = NewS3Client(config.ObjectStorageConfig{Endpoint: "s3.local", AccessKey: "a", SecretKey: "b"})
	assert.ErrorContains(t, err, "bucket")

	client, err := NewS3Client(config.ObjectStorageConfig{Endpoint: "http://s3.local:9000", AccessKey: "a", SecretKey: "b", Bucket: "snaps"})
	require.NoError(t, err)
	assert.Equal(t, "snaps", client.bucket)
}

func TestSplitEndpoint(t *testing.T) {
	host, secure := splitEndpoint("https://s3.example.com", false)
	assert.Equal(t, "s3.example.com", host)
	assert.True(t, secure)

	host, secure = splitEndpoint("http://minio:9000", true)
	assert.Equal(t, "minio:9000", host)
	assert.False(t, secure)

	host, secure = splitEndpoint("minio:9000", true)
	assert.Equal(t, "minio:9000", host)
	assert.True(t, secure)
}
