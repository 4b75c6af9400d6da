package domain

import (
	"strings"
	"time"
)

// EntityCustomers is the watermark key for customer synchronisation.
const EntityCustomers = "customers"

// Customer is a customer record held in the local store.
type Customer struct {
	// ID is the internal identifier, assigned by the store on first insert.
	ID string

	// ExternalCode is the platform's customer identifier.
	// It is unique across all customers and is the only upsert conflict key.
	ExternalCode string

	Name    string
	Email   string
	Phone   string
	City    string
	Country string

	// Active is the status flag. Synchronised customers are always active;
	// absence from a sync page is never treated as a deletion.
	Active bool

	// UpdatedAt is the time of the last write.
	UpdatedAt time.Time
}

// Location returns "City, Country" omitting empty parts.
func (c *Customer) Location() string {
	switch {
	case c.City != "" && c.Country != "":
		return c.City + ", " + c.Country
	case c.City != "":
		return c.City
	default:
		return c.Country
	}
}

// Matches reports whether the customer matches a free-text search term.
// The term is compared case-insensitively against name, external code and email.
// An empty term matches everything.
func (c *Customer) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.ExternalCode), term) ||
		strings.Contains(strings.ToLower(c.Email), term)
}
