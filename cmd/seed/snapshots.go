package main

import (
	"fmt"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/config"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/storage"
	"github.com/andresuchdata/supplychain-whatif/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

func openSnapshots() (*storage.SnapshotStore, error) {
	cfg := config.Load()
	if !cfg.ObjectStorage.Enabled() {
		return nil, fmt.Errorf("object storage is not configured (OBJECT_STORAGE_ENDPOINT, OBJECT_STORAGE_BUCKET)")
	}
	client, err := storage.NewS3Client(cfg.ObjectStorage)
	if err != nil {
		return nil, err
	}
	return storage.NewSnapshotStore(client, cfg.ObjectStorage.Prefix), nil
}

func runExport(c *cli.Context) error {
	snapshots, err := openSnapshots()
	if err != nil {
		return err
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}

	companies, err := store.LoadAll(c.Context)
	if err != nil {
		return fmt.Errorf("error loading companies: %w", err)
	}
	key, err := snapshots.Export(c.Context, companies)
	if err != nil {
		return err
	}
	logger.Log.Info().Str("key", key).Int("companies", len(companies)).Msg("snapshot exported")
	return nil
}

func runRestore(c *cli.Context) error {
	snapshots, err := openSnapshots()
	if err != nil {
		return err
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}

	companies, key, err := snapshots.Restore(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	if err := store.ReplaceAll(c.Context, companies); err != nil {
		return fmt.Errorf("error saving companies: %w", err)
	}
	logger.Log.Info().Str("key", key).Int("companies", len(companies)).Msg("snapshot restored")
	return nil
}
