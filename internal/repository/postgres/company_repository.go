package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

const companySchema = `
	CREATE TABLE IF NOT EXISTS companies (
		id         TEXT PRIMARY KEY,
		position   INTEGER NOT NULL,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type companyRow struct {
	ID       string `db:"id"`
	Position int    `db:"position"`
	Payload  []byte `db:"payload"`
}

// CompanyRepository stores one JSONB row per company. Row order is kept in
// the position column so LoadAll returns the list as it was written.
type CompanyRepository struct {
	db *DB
}

func NewCompanyRepository(db *DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// EnsureSchema creates the companies table when missing
func (r *CompanyRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, companySchema); err != nil {
		return fmt.Errorf("error creating companies table: %w", err)
	}
	return nil
}

func (r *CompanyRepository) LoadAll(ctx context.Context) ([]domain.Company, error) {
	var rows []companyRow
	query := `SELECT id, position, payload FROM companies ORDER BY position`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error loading companies: %w", err)
	}
	return decodeRows(rows)
}

// ReplaceAll swaps the whole table contents inside one transaction
func (r *CompanyRepository) ReplaceAll(ctx context.Context, companies []domain.Company) error {
	rows, err := encodeRows(companies)
	if err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM companies`); err != nil {
			return fmt.Errorf("error clearing companies: %w", err)
		}
		for _, row := range rows {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO companies (id, position, payload, updated_at) VALUES ($1, $2, $3, NOW())`,
				row.ID, row.Position, row.Payload,
			)
			if err != nil {
				return fmt.Errorf("error inserting company %s: %w", row.ID, err)
			}
		}
		return nil
	})
}

func encodeRows(companies []domain.Company) ([]companyRow, error) {
	rows := make([]companyRow, 0, len(companies))
	for i, c := range companies {
		payload, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("error encoding company %s: %w", c.ID, err)
		}
		rows = append(rows, companyRow{ID: c.ID, Position: i, Payload: payload})
	}
	return rows, nil
}

func decodeRows(rows []companyRow) ([]domain.Company, error) {
	companies := make([]domain.Company, 0, len(rows))
	for _, row := range rows {
		var c domain.Company
		if err := json.Unmarshal(row.Payload, &c); err != nil {
			return nil, fmt.Errorf("error decoding company %s: %w", row.ID, err)
		}
		companies = append(companies, c)
	}
	return companies, nil
}
