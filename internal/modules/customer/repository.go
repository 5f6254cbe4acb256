package customer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines customer data storage.
type Repository interface {
	// EmailExists reports whether any customer, active or not, holds email.
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, c *Customer) error
	// GetActiveByID returns sql.ErrNoRows for missing or inactive customers.
	GetActiveByID(ctx context.Context, id int64) (*Customer, error)
	// MarkInactive reports how many rows changed.
	MarkInactive(ctx context.Context, id int64) (int64, error)
	CreditByID(ctx context.Context, id int64) (decimal.Decimal, error)
	CreditByEmail(ctx context.Context, email string) (decimal.Decimal, error)
	// AdjustCredit locks the balance, applies fn to it and stores the result in one transaction.
	AdjustCredit(ctx context.Context, id int64, fn func(old decimal.Decimal) decimal.Decimal) (decimal.Decimal, error)
}
