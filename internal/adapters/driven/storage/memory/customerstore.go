package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// Ensure CustomerStore implements the interface.
var _ driven.CustomerStore = (*CustomerStore)(nil)

// CustomerStore is an in-memory implementation of driven.CustomerStore.
// Customers are keyed by external code.
type CustomerStore struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

// NewCustomerStore creates a new in-memory customer store.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{
		customers: make(map[string]domain.Customer),
	}
}

// UpsertBatch inserts or updates all customers under one lock, so readers
// see either none or all of the batch.
func (s *CustomerStore) UpsertBatch(_ context.Context, customers []domain.Customer) error {
	for i := range customers {
		if customers[i].ExternalCode == "" {
			return domain.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range customers {
		if existing, ok := s.customers[c.ExternalCode]; ok {
			c.ID = existing.ID
		} else {
			c.ID = uuid.New().String()
		}
		s.customers[c.ExternalCode] = c
	}
	return nil
}

// List returns all customers ordered by name, then external code.
func (s *CustomerStore) List(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ExternalCode < out[j].ExternalCode
	})
	return out, nil
}

// GetByExternalCode retrieves one customer.
func (s *CustomerStore) GetByExternalCode(_ context.Context, code string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// Count returns the number of stored customers.
func (s *CustomerStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), nil
}
