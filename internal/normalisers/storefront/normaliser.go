// Package storefront maps raw e-commerce customers into local customers.
package storefront

import (
	"strings"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.CustomerNormaliser = (*Normaliser)(nil)

// Normaliser handles storefront customer records. It has no state.
type Normaliser struct{}

// New creates a new storefront normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts a raw customer into the local write shape.
// ID and UpdatedAt are left for the store and the orchestrator.
func (n *Normaliser) Normalise(raw *domain.RawCustomer) domain.Customer {
	if raw == nil {
		return domain.Customer{Active: true}
	}

	c := domain.Customer{
		ExternalCode: raw.ID.String(),
		Name:         displayName(raw),
		Email:        strings.TrimSpace(raw.Email),
		Phone:        strings.TrimSpace(raw.Phone),
		// The source exposes no deletion flag; absence from a page is not a deletion.
		Active: true,
	}
	if addr := raw.DefaultAddress; addr != nil {
		c.City = strings.TrimSpace(addr.City)
		c.Country = strings.TrimSpace(addr.Country)
	}

	return c
}

// NormaliseAll converts a page of raw customers.
func (n *Normaliser) NormaliseAll(raws []domain.RawCustomer) []domain.Customer {
	out := make([]domain.Customer, len(raws))
	for i := range raws {
		out[i] = n.Normalise(&raws[i])
	}
	return out
}

func displayName(raw *domain.RawCustomer) string {
	name := strings.TrimSpace(raw.FirstName + " " + raw.LastName)
	if name == "" {
		return strings.TrimSpace(raw.Email)
	}
	return name
}
