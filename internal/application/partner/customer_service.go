// Package partner manages customer accounts. Balances are maintained by the
// movement processor and are read-only here.
package partner

import (
	"context"
	"strings"

	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// Create creates a new customer with zero balances
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.profile())
	if err != nil {
		return nil, err
	}

	exists, err := s.customerRepo.ExistsByEmail(ctx, customer.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Customer with this email already exists")
	}

	// the unique index still guards against a concurrent insert
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List returns the customers of one branch, or all customers when the
// filter's branch number is negative
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, error) {
	var (
		customers []partner.Customer
		err       error
	)
	if filter.BranchNumber < 0 {
		customers, err = s.customerRepo.FindAll(ctx)
	} else {
		customers, err = s.customerRepo.FindByBranchNumber(ctx, filter.BranchNumber)
	}
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// Update changes a customer's profile fields
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	profile := req.applyTo(customer.Profile())
	if req.Email != nil && !strings.EqualFold(strings.TrimSpace(*req.Email), customer.Email) {
		exists, err := s.customerRepo.ExistsByEmailExcludingID(ctx, strings.ToLower(strings.TrimSpace(*req.Email)), customerID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("Customer with this email already exists")
		}
	}

	if err := customer.UpdateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.customerRepo.UpdateProfile(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer. Returns recorded for the customer are kept.
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return err
	}
	return s.customerRepo.DeleteByID(ctx, customerID)
}
