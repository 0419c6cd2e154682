package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/importer"
	"github.com/andresuchdata/supplychain-whatif/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func runImport(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one workbook or directory is required")
	}

	var files []string
	for _, arg := range c.Args().Slice() {
		found, err := collectWorkbooks(arg)
		if err != nil {
			return fmt.Errorf("error scanning %s: %w", arg, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .xlsx files found")
	}

	imported, err := parseWorkbooks(c.Context, importer.New(), files, c.Int("workers"))
	if err != nil {
		return err
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	existing, err := store.LoadAll(c.Context)
	if err != nil {
		return fmt.Errorf("error loading companies: %w", err)
	}
	if err := store.ReplaceAll(c.Context, append(existing, imported...)); err != nil {
		return fmt.Errorf("error saving companies: %w", err)
	}

	logger.Log.Info().Int("imported", len(imported)).Int("total", len(existing)+len(imported)).Msg("workbooks imported")
	return nil
}

// collectWorkbooks returns root itself when it is a file, otherwise every
// .xlsx below it in lexical order
func collectWorkbooks(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	files := make([]string, 0)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// parseWorkbooks parses files with a bounded number of workers. Results keep
// the order of files; the first failure cancels the rest.
func parseWorkbooks(ctx context.Context, im *importer.Importer, files []string, workers int) ([]domain.Company, error) {
	if workers < 1 {
		workers = 1
	}

	companies := make([]domain.Company, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			company, err := im.ParseFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			company.Data = analytics.RecalculateAllMetrics(company.Data)
			company.BaseData = company.Data.Clone()
			companies[i] = company
			logger.Log.Debug().Str("file", path).Str("company", company.Name).Msg("workbook parsed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return companies, nil
}
