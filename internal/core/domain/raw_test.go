package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawCustomer_DecodesNumericAndStringIDs(t *testing.T) {
	var body struct {
		Customers []RawCustomer `json:"customers"`
	}
	data := `{"customers":[
		{"id": 207119551, "first_name": "Ana", "default_address": {"city": "Lisboa", "country": "Portugal"}},
		{"id": "42", "email": "b@example.com"}
	]}`

	require.NoError(t, json.Unmarshal([]byte(data), &body))
	require.Len(t, body.Customers, 2)

	assert.Equal(t, "207119551", body.Customers[0].ID.String())
	require.NotNil(t, body.Customers[0].DefaultAddress)
	assert.Equal(t, "Lisboa", body.Customers[0].DefaultAddress.City)

	assert.Equal(t, "42", body.Customers[1].ID.String())
	assert.Nil(t, body.Customers[1].DefaultAddress)
}

func TestRawCustomer_DecodesTextIDs(t *testing.T) {
	var body struct {
		Customers []RawCustomer `json:"customers"`
	}
	data := `{"customers":[{"id": 123}, {"id": "C-001"}, {"id": " B-7 "}, {"id": null}, {"id": 9007199254740993}]}`

	require.NoError(t, json.Unmarshal([]byte(data), &body))
	require.Len(t, body.Customers, 5)

	assert.Equal(t, "123", body.Customers[0].ID.String())
	assert.Equal(t, "C-001", body.Customers[1].ID.String())
	assert.Equal(t, "B-7", body.Customers[2].ID.String())
	assert.Empty(t, body.Customers[3].ID.String())
	assert.Equal(t, "9007199254740993", body.Customers[4].ID.String())
}

func TestExternalID_RejectsOtherTypes(t *testing.T) {
	tests := []string{`true`, `{"v": 1}`, `[1]`}

	for _, data := range tests {
		t.Run(data, func(t *testing.T) {
			var id ExternalID
			assert.Error(t, json.Unmarshal([]byte(data), &id))
		})
	}
}

func TestCustomerPage_HasNext(t *testing.T) {
	assert.False(t, (&CustomerPage{}).HasNext())
	assert.True(t, (&CustomerPage{NextURL: "https://shop.example.com/customers?page_info=x"}).HasNext())
}
