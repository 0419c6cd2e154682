package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

const (
	snapshotBaseName   = "companies-"
	snapshotTimeLayout = "20060102T150405Z"
)

// SnapshotStore exports and restores the whole company list as JSON objects
// named <prefix>/companies-<timestamp>.json
type SnapshotStore struct {
	objects ObjectStorage
	prefix  string
	now     func() time.Time
}

func NewSnapshotStore(objects ObjectStorage, prefix string) *SnapshotStore {
	return &SnapshotStore{
		objects: objects,
		prefix:  strings.Trim(prefix, "/"),
		now:     time.Now,
	}
}

func (s *SnapshotStore) keyFor(t time.Time) string {
	name := snapshotBaseName + t.UTC().Format(snapshotTimeLayout) + ".json"
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *SnapshotStore) listPrefix() string {
	if s.prefix == "" {
		return snapshotBaseName
	}
	return s.prefix + "/" + snapshotBaseName
}

// Export uploads companies and returns the object key
func (s *SnapshotStore) Export(ctx context.Context, companies []domain.Company) (string, error) {
	if companies == nil {
		companies = []domain.Company{}
	}
	payload, err := json.Marshal(companies)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := s.keyFor(s.now())
	if err := s.objects.PutObject(ctx, key, payload); err != nil {
		return "", err
	}
	return key, nil
}

// List returns snapshot keys, newest first. Timestamps sort lexically.
func (s *SnapshotStore) List(ctx context.Context) ([]string, error) {
	objects, err := s.objects.ListObjects(ctx, s.listPrefix())
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	slices.Sort(keys)
	slices.Reverse(keys)
	return keys, nil
}

// Restore downloads the named snapshot, or the newest one when key is empty
func (s *SnapshotStore) Restore(ctx context.Context, key string) ([]domain.Company, string, error) {
	if key == "" {
		keys, err := s.List(ctx)
		if err != nil {
			return nil, "", err
		}
		if len(keys) == 0 {
			return nil, "", fmt.Errorf("%w: no snapshots under %q", ErrObjectNotFound, s.listPrefix())
		}
		key = keys[0]
	}

	payload, err := s.objects.GetObject(ctx, key)
	if err != nil {
		return nil, "", err
	}

	var companies []domain.Company
	if err := json.Unmarshal(payload, &companies); err != nil {
		return nil, "", fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return companies, key, nil
}
