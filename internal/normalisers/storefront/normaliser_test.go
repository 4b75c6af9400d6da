package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawCustomer
		want domain.Customer
	}{
		{
			name: "full record",
			raw: domain.RawCustomer{
				ID: "207119551", FirstName: "Ana", LastName: "Silva",
				Email: "ana@example.com", Phone: "+351 912 345 678",
				DefaultAddress: &domain.RawAddress{City: "Lisboa", Country: "Portugal"},
			},
			want: domain.Customer{
				ExternalCode: "207119551", Name: "Ana Silva", Email: "ana@example.com",
				Phone: "+351 912 345 678", City: "Lisboa", Country: "Portugal", Active: true,
			},
		},
		{
			name: "first name only",
			raw:  domain.RawCustomer{ID: "1", FirstName: "Ana"},
			want: domain.Customer{ExternalCode: "1", Name: "Ana", Active: true},
		},
		{
			name: "last name only",
			raw:  domain.RawCustomer{ID: "2", LastName: "Costa"},
			want: domain.Customer{ExternalCode: "2", Name: "Costa", Active: true},
		},
		{
			name: "no name falls back to email",
			raw:  domain.RawCustomer{ID: "3", Email: "nobody@example.com"},
			want: domain.Customer{ExternalCode: "3", Name: "nobody@example.com", Email: "nobody@example.com", Active: true},
		},
		{
			name: "blank names fall back to email",
			raw:  domain.RawCustomer{ID: "4", FirstName: "  ", LastName: " ", Email: "x@example.com"},
			want: domain.Customer{ExternalCode: "4", Name: "x@example.com", Email: "x@example.com", Active: true},
		},
		{
			name: "missing address",
			raw:  domain.RawCustomer{ID: "5", FirstName: "Rui"},
			want: domain.Customer{ExternalCode: "5", Name: "Rui", Active: true},
		},
	}

	n := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalise(&tt.raw))
		})
	}
}

func TestNormalise_NilRecord(t *testing.T) {
	c := New().Normalise(nil)
	assert.True(t, c.Active)
	assert.Empty(t, c.ExternalCode)
}

func TestNormalise_IsPure(t *testing.T) {
	raw := domain.RawCustomer{ID: "9", FirstName: "Ana", DefaultAddress: &domain.RawAddress{City: "Faro"}}
	n := New()

	first := n.Normalise(&raw)
	second := n.Normalise(&raw)

	assert.Equal(t, first, second)
	assert.Equal(t, "Faro", raw.DefaultAddress.City)
	assert.Empty(t, first.ID)
	assert.True(t, first.UpdatedAt.IsZero())
}

func TestNormaliseAll(t *testing.T) {
	raws := []domain.RawCustomer{{ID: "1", FirstName: "A"}, {ID: "2", FirstName: "B"}}

	out := New().NormaliseAll(raws)

	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ExternalCode)
	assert.Equal(t, "B", out[1].Name)
	assert.Empty(t, New().NormaliseAll(nil))
}
