package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/suweldo/payroll-backend-go/internal/domain/statutory"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type statutoryRepository struct {
	db *database.DB
}

const benefitConfigColumns = `id, benefit_type, year, is_active, config_table, notes, created_at, updated_at`

func scanBenefitConfig(row pgx.Row) (statutory.BenefitConfig, error) {
	var cfg statutory.BenefitConfig
	err := row.Scan(
		&cfg.ID, &cfg.BenefitType, &cfg.Year, &cfg.IsActive,
		&cfg.Table, &cfg.Notes, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	return cfg, err
}

// CreateBenefitConfig implements statutory.StatutoryRepository.
func (s *statutoryRepository) CreateBenefitConfig(ctx context.Context, cfg statutory.BenefitConfig) (statutory.BenefitConfig, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO benefit_configs (id, benefit_type, year, is_active, config_table, notes)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, cfg.BenefitType, cfg.Year, cfg.IsActive, cfg.Table, cfg.Notes).
		Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return statutory.BenefitConfig{}, statutory.ErrConfigExists
		}
		return statutory.BenefitConfig{}, fmt.Errorf("failed to create benefit config: %w", err)
	}

	return cfg, nil
}

// GetActiveBenefitConfig implements statutory.StatutoryRepository.
func (s *statutoryRepository) GetActiveBenefitConfig(ctx context.Context, benefitType string, year int) (statutory.BenefitConfig, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + benefitConfigColumns + `
		FROM benefit_configs
		WHERE benefit_type = $1 AND year = $2 AND is_active = true
		ORDER BY created_at DESC
		LIMIT 1
	`

	cfg, err := scanBenefitConfig(q.QueryRow(ctx, query, benefitType, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return statutory.BenefitConfig{}, statutory.ErrConfigNotFound
		}
		return statutory.BenefitConfig{}, fmt.Errorf("failed to get active benefit config: %w", err)
	}

	return cfg, nil
}

// ListBenefitConfigs implements statutory.StatutoryRepository.
func (s *statutoryRepository) ListBenefitConfigs(ctx context.Context, benefitType string) ([]statutory.BenefitConfig, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + benefitConfigColumns + ` FROM benefit_configs WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if benefitType != "" {
		query += fmt.Sprintf(" AND benefit_type = $%d", argPos)
		args = append(args, benefitType)
		argPos++
	}
	query += " ORDER BY year DESC, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefit configs: %w", err)
	}
	defer rows.Close()

	var configs []statutory.BenefitConfig
	for rows.Next() {
		cfg, err := scanBenefitConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benefit config: %w", err)
		}
		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

// SetBenefitConfigActive implements statutory.StatutoryRepository.
func (s *statutoryRepository) SetBenefitConfigActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, s.db)

	result, err := q.Exec(ctx, `UPDATE benefit_configs SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update benefit config: %w", err)
	}
	if result.RowsAffected() == 0 {
		return statutory.ErrConfigNotFound
	}

	return nil
}

const taxConfigColumns = `id, tax_type, year, is_active, brackets, notes, created_at, updated_at`

func scanTaxConfig(row pgx.Row) (statutory.TaxConfig, error) {
	var cfg statutory.TaxConfig
	err := row.Scan(
		&cfg.ID, &cfg.TaxType, &cfg.Year, &cfg.IsActive,
		&cfg.Brackets, &cfg.Notes, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	return cfg, err
}

// CreateTaxConfig implements statutory.StatutoryRepository.
func (s *statutoryRepository) CreateTaxConfig(ctx context.Context, cfg statutory.TaxConfig) (statutory.TaxConfig, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO tax_configs (id, tax_type, year, is_active, brackets, notes)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, cfg.TaxType, cfg.Year, cfg.IsActive, cfg.Brackets, cfg.Notes).
		Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return statutory.TaxConfig{}, statutory.ErrConfigExists
		}
		return statutory.TaxConfig{}, fmt.Errorf("failed to create tax config: %w", err)
	}

	return cfg, nil
}

// GetActiveTaxConfig implements statutory.StatutoryRepository.
func (s *statutoryRepository) GetActiveTaxConfig(ctx context.Context, taxType string, year int) (statutory.TaxConfig, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + taxConfigColumns + `
		FROM tax_configs
		WHERE tax_type = $1 AND year = $2 AND is_active = true
		ORDER BY created_at DESC
		LIMIT 1
	`

	cfg, err := scanTaxConfig(q.QueryRow(ctx, query, taxType, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return statutory.TaxConfig{}, statutory.ErrConfigNotFound
		}
		return statutory.TaxConfig{}, fmt.Errorf("failed to get active tax config: %w", err)
	}

	return cfg, nil
}

// ListTaxConfigs implements statutory.StatutoryRepository.
func (s *statutoryRepository) ListTaxConfigs(ctx context.Context, taxType string) ([]statutory.TaxConfig, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + taxConfigColumns + ` FROM tax_configs WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if taxType != "" {
		query += fmt.Sprintf(" AND tax_type = $%d", argPos)
		args = append(args, taxType)
		argPos++
	}
	query += " ORDER BY year DESC, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax configs: %w", err)
	}
	defer rows.Close()

	var configs []statutory.TaxConfig
	for rows.Next() {
		cfg, err := scanTaxConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax config: %w", err)
		}
		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

// SetTaxConfigActive implements statutory.StatutoryRepository.
func (s *statutoryRepository) SetTaxConfigActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, s.db)

	result, err := q.Exec(ctx, `UPDATE tax_configs SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update tax config: %w", err)
	}
	if result.RowsAffected() == 0 {
		return statutory.ErrConfigNotFound
	}

	return nil
}

func NewStatutoryRepository(db *database.DB) statutory.StatutoryRepository {
	return &statutoryRepository{db: db}
}
