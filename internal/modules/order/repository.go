package order

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines data access for orders.
type Repository interface {
	// WithinTx runs fn in one transaction. It commits only when fn returns nil and
	// rolls back on error or panic.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// CreditBalance reads an active customer's balance without locking it.
	CreditBalance(ctx context.Context, customerID int64) (decimal.Decimal, error)

	// GetOrderByID retrieves an order with its lines.
	GetOrderByID(ctx context.Context, id int64) (*Order, error)

	// ListOrdersByCustomer returns a customer's orders, newest first, without lines.
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]*Order, error)
}

// Tx is the set of writes an order makes, all bound to one transaction.
type Tx interface {
	// LockCredit reads the live balance and holds the row until the transaction ends.
	// Missing or inactive customers yield sql.ErrNoRows.
	LockCredit(ctx context.Context, customerID int64) (decimal.Decimal, error)
	InsertOrder(ctx context.Context, o *Order) (int64, error)
	InsertLine(ctx context.Context, l *OrderLine) error
	// MarkBookSold flips an Available copy to Sold. A missing copy is NotFound and
	// a sold one is AlreadySold.
	MarkBookSold(ctx context.Context, bookID int64) error
	StoreCredit(ctx context.Context, customerID int64, total decimal.Decimal) error
}
