package domain

import (
	"encoding/json"
	"strings"
)

// RawCustomer is a customer record as the e-commerce source returns it.
// It is the connector's output before normalisation.
type RawCustomer struct {
	// ID is the source's identifier. It arrives as a JSON number or a string.
	ID ExternalID `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	// DefaultAddress carries city and country. May be absent.
	DefaultAddress *RawAddress `json:"default_address"`
}

// RawAddress is the address block nested in a RawCustomer.
type RawAddress struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// CustomerPage is one page of raw customers plus the cursor for the next page.
type CustomerPage struct {
	// Records are the customers on this page, possibly empty.
	Records []RawCustomer

	// NextURL is the next page's URL, or "" on the last page.
	NextURL string
}

// HasNext returns true if another page follows.
func (p *CustomerPage) HasNext() bool {
	return p.NextURL != ""
}

// ExternalID is a source identifier coerced to its string form.
type ExternalID string

// UnmarshalJSON accepts a JSON number or a JSON string. Numbers keep their
// literal text so large identifiers are not rounded.
func (id *ExternalID) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch {
	case text == "null":
		*id = ""
		return nil
	case strings.HasPrefix(text, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ExternalID(n.String())
	return nil
}

func (id ExternalID) String() string {
	return string(id)
}
