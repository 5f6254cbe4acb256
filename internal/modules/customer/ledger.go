package customer

import (
	"github.com/georgemunganga/usedbooks-backend/internal/money"
	"github.com/shopspring/decimal"
)

// ApplyDelta returns the balance after a signed credit change. Increases are
// unbounded; decreases stop at zero.
func ApplyDelta(old, delta decimal.Decimal) decimal.Decimal {
	return money.FloorZero(old.Add(delta))
}
