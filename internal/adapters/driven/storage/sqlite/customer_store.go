package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// customerStore implements driven.CustomerStore.
type customerStore struct {
	store *Store
}

var _ driven.CustomerStore = (*customerStore)(nil)

const customerColumns = `id, external_code, name, email, phone, city, country, active, updated_at`

// UpsertBatch writes all customers in one transaction.
// The generated ID is only used on insert; an existing row keeps its ID.
func (s *customerStore) UpsertBatch(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning customer batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_code) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			city = excluded.city,
			country = excluded.country,
			active = excluded.active,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing customer upsert: %w", err)
	}
	defer stmt.Close()

	for i := range customers {
		c := &customers[i]
		if c.ExternalCode == "" {
			return fmt.Errorf("upserting customer %d: %w: empty external code", i, domain.ErrInvalidInput)
		}
		_, err := stmt.ExecContext(ctx,
			uuid.New().String(), c.ExternalCode, c.Name, c.Email, c.Phone,
			c.City, c.Country, boolToInt(c.Active), formatTime(c.UpdatedAt))
		if err != nil {
			return fmt.Errorf("upserting customer %s: %w", c.ExternalCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing customer batch: %w", err)
	}
	return nil
}

// List returns all customers ordered by name, then external code.
func (s *customerStore) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.store.db.QueryContext(ctx, `
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
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers WHERE external_code = ?
	`, code)

	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

// Count returns the number of stored customers.
func (s *customerStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCustomer scans a single customer row.
func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var active int
	var updatedAt string

	if err := row.Scan(&c.ID, &c.ExternalCode, &c.Name, &c.Email, &c.Phone,
		&c.City, &c.Country, &active, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning customer: %w", err)
	}

	c.Active = active == 1
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}
