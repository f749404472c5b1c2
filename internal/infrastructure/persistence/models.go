package persistence

import (
	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// Models returns every persisted entity in dependency order
func Models() []any {
	return []any{
		&inventory.Article{},
		&inventory.Item{},
		&inventory.StockEntry{},
		&partner.Customer{},
		&trade.SalesReturn{},
		&trade.ProductLine{},
		&trade.SaleTransaction{},
		&trade.SaleLine{},
	}
}

// AutoMigrate creates or updates the schema for all models.
// Production schemas are managed by the SQL migrations; this is for sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
