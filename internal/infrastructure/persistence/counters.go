package persistence

import (
	"fmt"

	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// increment builds `col = ROUND(COALESCE(col, 0) + ?, scale)`. Sqlite keeps
// decimal columns as REAL, so the sum is rounded back to the stored scale on
// every write; on postgres the ROUND is a no-op over NUMERIC.
func increment(column string, by decimal.Decimal) clause.Expr {
	return gorm.Expr(fmt.Sprintf("ROUND(COALESCE(%s, 0) + ?, %d)", column, shared.AmountScale), by)
}
