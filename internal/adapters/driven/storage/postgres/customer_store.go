package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// customerStore implements driven.CustomerStore.
type customerStore struct {
	pool *pgxpool.Pool
}

var _ driven.CustomerStore = (*customerStore)(nil)

const customerColumns = `id, external_code, name, email, phone, city, country, active, updated_at`

// IDs are generated by the database on insert and never overwritten.
const upsertCustomerSQL = `
	INSERT INTO customers (external_code, name, email, phone, city, country, active, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (external_code) DO UPDATE SET
		name = EXCLUDED.name,
		email = EXCLUDED.email,
		phone = EXCLUDED.phone,
		city = EXCLUDED.city,
		country = EXCLUDED.country,
		active = EXCLUDED.active,
		updated_at = EXCLUDED.updated_at
`

// UpsertBatch writes all customers in one transaction using a single round trip.
func (s *customerStore) UpsertBatch(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	for i := range customers {
		if customers[i].ExternalCode == "" {
			return fmt.Errorf("upserting customer %d: %w: empty external code", i, domain.ErrInvalidInput)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning customer batch: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for i := range customers {
		c := &customers[i]
		batch.Queue(upsertCustomerSQL,
			c.ExternalCode, c.Name, c.Email, c.Phone,
			c.City, c.Country, c.Active, c.UpdatedAt.UTC())
	}

	results := tx.SendBatch(ctx, batch)
	for i := range customers {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("upserting customer %s: %w", customers[i].ExternalCode, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("closing customer batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing customer batch: %w", err)
	}
	return nil
}

// List returns all customers ordered by name, then external code.
func (s *customerStore) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		ORDER BY name, external_code
	`)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer //nolint:prealloc // size unknown from query
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}

	return customers, nil
}

// GetByExternalCode retrieves one customer.
func (s *customerStore) GetByExternalCode(ctx context.Context, code string) (*domain.Customer, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers WHERE external_code = $1
	`, code)

	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

// Count returns the number of stored customers.
func (s *customerStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return n, nil
}

// scanCustomer scans a single customer row. pgx.Row is satisfied by pgx.Rows.
func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.ExternalCode, &c.Name, &c.Email, &c.Phone,
		&c.City, &c.Country, &c.Active, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning customer: %w", err)
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
