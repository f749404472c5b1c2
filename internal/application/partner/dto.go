package partner

import (
	"time"

	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Email        string `json:"email" binding:"required,email,max=200"`
	Contact      string `json:"contact" binding:"max=50"`
	CNIC         string `json:"cnic" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	BranchNumber int    `json:"branch_number" binding:"min=0"`
	Ref          string `json:"ref" binding:"max=100"`
	Page         int    `json:"page"`
	UserType     int    `json:"user_type"`
}

// UpdateCustomerRequest represents a request to update a customer's profile.
// Nil fields keep their current value. Balances are not editable here.
type UpdateCustomerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email        *string `json:"email" binding:"omitempty,email,max=200"`
	Contact      *string `json:"contact" binding:"omitempty,max=50"`
	CNIC         *string `json:"cnic" binding:"omitempty,max=50"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	BranchNumber *int    `json:"branch_number" binding:"omitempty,min=0"`
	Ref          *string `json:"ref" binding:"omitempty,max=100"`
	Page         *int    `json:"page"`
	UserType     *int    `json:"user_type"`
}

// CustomerListFilter selects customers by branch number. A negative branch
// number lists every customer.
type CustomerListFilter struct {
	BranchNumber int `form:"branch_number,default=-1"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Contact      string          `json:"contact"`
	CNIC         string          `json:"cnic"`
	Address      string          `json:"address"`
	BranchNumber int             `json:"branch_number"`
	Ref          string          `json:"ref"`
	Page         int             `json:"page"`
	UserType     int             `json:"user_type"`
	ReturnAmount decimal.Decimal `json:"return_amount"`
	Remaining    decimal.Decimal `json:"remaining"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (r CreateCustomerRequest) profile() partner.CustomerProfile {
	return partner.CustomerProfile{
		Name:         r.Name,
		Email:        r.Email,
		Contact:      r.Contact,
		CNIC:         r.CNIC,
		Address:      r.Address,
		BranchNumber: r.BranchNumber,
		Ref:          r.Ref,
		Page:         r.Page,
		UserType:     r.UserType,
	}
}

// applyTo overlays the set fields on p
func (r UpdateCustomerRequest) applyTo(p partner.CustomerProfile) partner.CustomerProfile {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
	if r.Contact != nil {
		p.Contact = *r.Contact
	}
	if r.CNIC != nil {
		p.CNIC = *r.CNIC
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.BranchNumber != nil {
		p.BranchNumber = *r.BranchNumber
	}
	if r.Ref != nil {
		p.Ref = *r.Ref
	}
	if r.Page != nil {
		p.Page = *r.Page
	}
	if r.UserType != nil {
		p.UserType = *r.UserType
	}
	return p
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Contact:      c.Contact,
		CNIC:         c.CNIC,
		Address:      c.Address,
		BranchNumber: c.BranchNumber,
		Ref:          c.Ref,
		Page:         c.Page,
		UserType:     c.UserType,
		ReturnAmount: c.ReturnAmount,
		Remaining:    c.Remaining,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
