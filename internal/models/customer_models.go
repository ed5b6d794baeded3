package models

import "github.com/samber/lo"

// Customer is the stored customer record.
// Created and Updated are epoch milliseconds; Updated stays 0 until the first update.
type Customer struct {
	ID       int64   `db:"id"`
	Created  int64   `db:"created"`
	Updated  int64   `db:"updated"`
	FullName string  `db:"full_name"`
	Email    string  `db:"email"`
	Phone    *string `db:"phone"`
	IsActive bool    `db:"is_active"`
}

// CustomerResponse is the public projection of a Customer returned by the API.
type CustomerResponse struct {
	ID       int64   `json:"id"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
}

// ToResponse maps a record to its public projection.
func (c Customer) ToResponse() CustomerResponse {
	return CustomerResponse{
		ID:       c.ID,
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
	}
}

// ActiveResponses projects the active records, preserving their order.
func ActiveResponses(customers []Customer) []CustomerResponse {
	active := lo.Filter(customers, func(c Customer, _ int) bool {
		return c.IsActive
	})
	return lo.Map(active, func(c Customer, _ int) CustomerResponse {
		return c.ToResponse()
	})
}
