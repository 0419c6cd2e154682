package main

import (
	"fmt"
	"log"
	"os"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/config"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/importer"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/repository"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/supplychain-whatif/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "driver",
			Usage:   "Company store driver (file, postgres)",
			Value:   config.StoreFile,
			EnvVars: []string{"STORE_DRIVER"},
		},
		&cli.StringFlag{
			Name:    "file",
			Usage:   "Path of the JSON company store",
			Value:   "./data/companies.json",
			EnvVars: []string{"STORE_FILE_PATH"},
		},
		&cli.StringFlag{
			Name:    "db-url",
			Usage:   "Database connection string",
			EnvVars: []string{"DATABASE_URL"},
		},
	}
}

// openStore opens the company store selected by the command flags
func openStore(c *cli.Context) (repository.CompanyRepository, error) {
	switch c.String("driver") {
	case config.StoreFile:
		return repository.NewFileStore(c.String("file")), nil
	case config.StorePostgres:
		dsn := c.String("db-url")
		if dsn == "" {
			return nil, fmt.Errorf("--db-url is required for the postgres driver")
		}
		db, err := postgres.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo := postgres.NewCompanyRepository(db)
		if err := repo.EnsureSchema(c.Context); err != nil {
			return nil, fmt.Errorf("failed to prepare schema: %w", err)
		}
		return repo, nil
	}
	return nil, fmt.Errorf("%w: %q", repository.ErrUnknownDriver, c.String("driver"))
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Manage the stored company list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "Write the demo companies to the store",
				Flags: append(storeFlags(), &cli.BoolFlag{
					Name:  "force",
					Usage: "Overwrite a non-empty store",
				}),
				Action: runSeed,
			},
			{
				Name:      "import",
				Usage:     "Import company workbooks (.xlsx) from files or directories",
				ArgsUsage: "<path>...",
				Flags: append(storeFlags(), &cli.IntFlag{
					Name:  "workers",
					Usage: "Number of workbooks parsed concurrently",
					Value: 4,
				}),
				Action: runImport,
			},
			{
				Name:  "template",
				Usage: "Write the example import workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output path",
						Value: importer.TemplateFileName,
					},
				},
				Action: runTemplate,
			},
			{
				Name:   "export",
				Usage:  "Upload the stored company list as a snapshot",
				Flags:  storeFlags(),
				Action: runExport,
			},
			{
				Name:      "restore",
				Usage:     "Replace the stored company list with a snapshot (newest by default)",
				ArgsUsage: "[key]",
				Flags:     storeFlags(),
				Action:    runRestore,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSeed(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	seeder := repository.NewSeeder(store, analytics.RecalculateAllMetrics)

	if !c.Bool("force") {
		companies, err := seeder.LoadAll(c.Context)
		if err != nil {
			return err
		}
		logger.Log.Info().Int("companies", len(companies)).Msg("store ready")
		return nil
	}

	companies := seeder.Seed()
	if err := store.ReplaceAll(c.Context, companies); err != nil {
		return fmt.Errorf("error writing seed companies: %w", err)
	}
	logger.Log.Info().Int("companies", len(companies)).Msg("store reseeded")
	return nil
}

func runTemplate(c *cli.Context) error {
	out := c.String("out")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	if err := importer.WriteTemplate(f); err != nil {
		return err
	}
	logger.Log.Info().Str("path", out).Msg("template written")
	return nil
}
