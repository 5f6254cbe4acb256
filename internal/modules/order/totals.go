package order

import (
	"github.com/georgemunganga/usedbooks-backend/internal/modules/customer"
	"github.com/georgemunganga/usedbooks-backend/internal/money"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ComputeTotals prices items against balance. Applied credit is capped by the balance
// only; paid floors at zero when credit exceeds the total.
func ComputeTotals(items []LineItem, requested, balance decimal.Decimal) Totals {
	total := money.Sum(lo.Map(items, func(li LineItem, _ int) decimal.Decimal { return li.Price })...)
	applied := money.FloorZero(money.Min(requested, balance))
	return Totals{
		TotalAmount:     total,
		CreditAvailable: balance,
		CreditApplied:   applied,
		AmountPaid:      money.FloorZero(total.Sub(applied)),
		RemainingCredit: customer.ApplyDelta(balance, applied.Neg()),
	}
}

// inventoryIDs returns the book ids to flip to Sold, in cart order.
func inventoryIDs(items []LineItem) []int64 {
	return lo.FilterMap(items, func(li LineItem, _ int) (int64, bool) {
		return li.BookID, li.Kind == KindInventory
	})
}
