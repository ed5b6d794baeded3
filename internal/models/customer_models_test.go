package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomer_ToResponse(t *testing.T) {
	phone := "+123456"
	c := Customer{ID: 7, Created: 100, Updated: 200, FullName: "Jane Doe", Email: "jane@x.com", Phone: &phone, IsActive: true}

	assert.Equal(t, CustomerResponse{ID: 7, FullName: "Jane Doe", Email: "jane@x.com", Phone: &phone}, c.ToResponse())
}

func TestActiveResponses(t *testing.T) {
	customers := []Customer{
		{ID: 1, FullName: "Ann", Email: "a@x", IsActive: true},
		{ID: 2, FullName: "Bob", Email: "b@x", IsActive: false},
		{ID: 3, FullName: "Cid", Email: "c@x", IsActive: true},
	}

	got := ActiveResponses(customers)
	assert.Equal(t, []CustomerResponse{
		{ID: 1, FullName: "Ann", Email: "a@x"},
		{ID: 3, FullName: "Cid", Email: "c@x"},
	}, got)

	assert.Empty(t, ActiveResponses(nil))
	assert.NotNil(t, ActiveResponses(nil))
}
