package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, importer.WriteTemplate(f))
}

func TestCollectWorkbooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.xlsx", "a.XLSX", "notes.csv", "~$a.xlsx", "nested/c.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := collectWorkbooks(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.XLSX"),
		filepath.Join(dir, "b.xlsx"),
		filepath.Join(dir, "nested", "c.xlsx"),
	}, files)

	single, err := collectWorkbooks(filepath.Join(dir, "notes.csv"))
	require.NoError(t, err)
	assert.Len(t, single, 1)

	_, err = collectWorkbooks(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestParseWorkbooks(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "one.xlsx"), filepath.Join(dir, "two.xlsx")}
	for _, p := range paths {
		writeTemplate(t, p)
	}

	companies, err := parseWorkbooks(context.Background(), importer.New(), paths, 2)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	for _, c := range companies {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Data.Warehouses)
		assert.Equal(t, c.Data, c.BaseData)
	}
	assert.NotEqual(t, companies[0].ID, companies[1].ID)
}

func TestParseWorkbooksStopsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.xlsx")
	bad := filepath.Join(dir, "bad.xlsx")
	writeTemplate(t, good)
	require.NoError(t, os.WriteFile(bad, []byte("not a workbook"), 0o644))

	_, err := parseWorkbooks(context.Background(), importer.New(), []string{good, bad}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.xlsx")
}
