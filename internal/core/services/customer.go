package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
)

// Ensure CustomerService implements the interface.
var _ driving.CustomerService = (*CustomerService)(nil)

// CustomerService provides read access to synchronised customers.
// It never writes; only the sync orchestrator does.
type CustomerService struct {
	store driven.CustomerStore
}

// NewCustomerService creates a new customer service.
func NewCustomerService(store driven.CustomerStore) *CustomerService {
	return &CustomerService{store: store}
}

// List returns all customers ordered by name.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Search returns customers whose name, external code or email contains term,
// ignoring case. A blank term returns everything.
func (s *CustomerService) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return customers, nil
	}

	matches := make([]domain.Customer, 0, len(customers))
	for i := range customers {
		if customers[i].Matches(term) {
			matches = append(matches, customers[i])
		}
	}
	return matches, nil
}

// Get returns one customer by external code.
func (s *CustomerService) Get(ctx context.Context, code string) (*domain.Customer, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: customer code is required", domain.ErrInvalidInput)
	}
	return s.store.GetByExternalCode(ctx, code)
}

// Count returns the number of stored customers.
func (s *CustomerService) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
