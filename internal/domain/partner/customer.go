package partner

import (
	"regexp"
	"strings"

	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is a retail account. ReturnAmount and Remaining are running totals
// maintained by the movement processor; profile updates never touch them.
type Customer struct {
	shared.BaseEntity
	Name         string          `gorm:"type:varchar(200);not null"`
	Email        string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Contact      string          `gorm:"type:varchar(50)"`
	CNIC         string          `gorm:"column:cnic;type:varchar(50)"` // national identity card number
	Address      string          `gorm:"type:text"`
	BranchNumber int             `gorm:"not null;default:0;index"`
	Ref          string          `gorm:"type:varchar(100)"`
	Page         int             `gorm:"not null;default:0"`
	UserType     int             `gorm:"not null;default:0"`
	ReturnAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Remaining    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// CustomerProfile holds the caller-editable fields of a customer
type CustomerProfile struct {
	Name         string
	Email        string
	Contact      string
	CNIC         string
	Address      string
	BranchNumber int
	Ref          string
	Page         int
	UserType     int
}

// NewCustomer creates a customer with zero balances
func NewCustomer(p CustomerProfile) (*Customer, error) {
	c := &Customer{
		BaseEntity:   shared.NewBaseEntity(),
		ReturnAmount: decimal.Zero,
		Remaining:    decimal.Zero,
	}
	if err := c.UpdateProfile(p); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateProfile replaces the editable fields after validating them
func (c *Customer) UpdateProfile(p CustomerProfile) error {
	name := strings.TrimSpace(p.Name)
	if err := validateCustomerName(name); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if err := validateEmail(email); err != nil {
		return err
	}
	if p.BranchNumber < 0 {
		return shared.NewValidationError("Branch number cannot be negative")
	}

	c.Name = name
	c.Email = email
	c.Contact = strings.TrimSpace(p.Contact)
	c.CNIC = strings.TrimSpace(p.CNIC)
	c.Address = strings.TrimSpace(p.Address)
	c.BranchNumber = p.BranchNumber
	c.Ref = strings.TrimSpace(p.Ref)
	c.Page = p.Page
	c.UserType = p.UserType
	return nil
}

// Profile returns the editable fields
func (c *Customer) Profile() CustomerProfile {
	return CustomerProfile{
		Name:         c.Name,
		Email:        c.Email,
		Contact:      c.Contact,
		CNIC:         c.CNIC,
		Address:      c.Address,
		BranchNumber: c.BranchNumber,
		Ref:          c.Ref,
		Page:         c.Page,
		UserType:     c.UserType,
	}
}

// Apply mirrors a persisted balance delta onto the in-memory copy
func (c *Customer) Apply(d BalanceDelta) {
	c.ReturnAmount = c.ReturnAmount.Add(d.ReturnAmount)
	c.Remaining = c.Remaining.Add(d.Remaining)
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewValidationError("Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewValidationError("Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewValidationError("Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}
