package persistence

import (
	"context"
	"strings"

	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errCustomerNotFound = shared.NewNotFoundError("Customer not found")

// profileColumns are the only columns UpdateProfile writes
var profileColumns = []string{
	"name", "email", "contact", "cnic", "address",
	"branch_number", "ref", "page", "user_type", "updated_at",
}

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var c partner.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translateError("find customer", err, errCustomerNotFound)
	}
	return &c, nil
}

// FindAll returns every customer ordered by name
func (r *GormCustomerRepository) FindAll(ctx context.Context) ([]partner.Customer, error) {
	var customers []partner.Customer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, translateError("list customers", err, nil)
	}
	return customers, nil
}

// FindByBranchNumber returns customers registered at one branch
func (r *GormCustomerRepository) FindByBranchNumber(ctx context.Context, branchNumber int) ([]partner.Customer, error) {
	var customers []partner.Customer
	err := r.db.WithContext(ctx).
		Where("branch_number = ?", branchNumber).
		Order("name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, translateError("list customers by branch", err, nil)
	}
	return customers, nil
}

// ExistsByEmail checks if a customer with the given email exists
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&partner.Customer{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, translateError("check customer email", err, nil)
	}
	return count > 0, nil
}

// ExistsByEmailExcludingID checks the email against every customer but excludeID
func (r *GormCustomerRepository) ExistsByEmailExcludingID(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&partner.Customer{}).
		Where("email = ? AND id <> ?", strings.ToLower(email), excludeID).
		Count(&count).Error
	if err != nil {
		return false, translateError("check customer email", err, nil)
	}
	return count > 0, nil
}

// Create inserts a customer
func (r *GormCustomerRepository) Create(ctx context.Context, c *partner.Customer) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if err != nil {
		err = translateError("create customer", err, nil)
		if shared.IsConflict(err) {
			return shared.NewConflictError("Customer with this email already exists")
		}
	}
	return err
}

// UpdateProfile writes the editable columns only; balance totals are never overwritten
func (r *GormCustomerRepository) UpdateProfile(ctx context.Context, c *partner.Customer) error {
	result := r.db.WithContext(ctx).
		Model(c).
		Select(profileColumns).
		Updates(c)
	if result.Error != nil {
		err := translateError("update customer", result.Error, nil)
		if shared.IsConflict(err) {
			return shared.NewConflictError("Customer with this email already exists")
		}
		return err
	}
	if result.RowsAffected == 0 {
		return errCustomerNotFound
	}
	return nil
}

// DeleteByID deletes a customer by ID
func (r *GormCustomerRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Customer{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete customer", result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return errCustomerNotFound
	}
	return nil
}

// ApplyBalanceDelta adds d to the customer totals in a single UPDATE
func (r *GormCustomerRepository) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, d partner.BalanceDelta) error {
	result := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"return_amount": increment("return_amount", d.ReturnAmount),
			"remaining":     increment("remaining", d.Remaining),
		})
	if result.Error != nil {
		return translateError("apply balance delta", result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return errCustomerNotFound
	}
	return nil
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
