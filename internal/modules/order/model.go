package order

import (
	"time"

	"github.com/georgemunganga/usedbooks-backend/internal/money"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/shopspring/decimal"
)

// ItemKind tells a shelved copy apart from a manually keyed item.
type ItemKind string

const (
	KindInventory ItemKind = "inventory"
	KindManual    ItemKind = "manual"
)

// LineItem is one cart entry. Inventory items reference a book; manual items carry only
// a title and price and touch no book row.
type LineItem struct {
	Kind   ItemKind        `json:"kind" validate:"required,oneof=inventory manual"`
	BookID int64           `json:"book_id,omitempty"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
}

func (li LineItem) Validate() error {
	switch li.Kind {
	case KindInventory:
		if li.BookID <= 0 {
			return apperr.Validation("inventory item needs a positive book_id")
		}
	case KindManual:
		if li.BookID != 0 {
			return apperr.Validation("manual item %q cannot reference a book", li.Title)
		}
		if li.Title == "" {
			return apperr.Validation("manual item needs a title")
		}
	default:
		return apperr.Validation("unknown item kind %q", li.Kind)
	}
	return money.Check(li.Price)
}

// bookRef is the value stored in order_detail.book_id.
func (li LineItem) bookRef() *int64 {
	if li.Kind != KindInventory {
		return nil
	}
	id := li.BookID
	return &id
}

// CompleteOrderRequest is everything needed to ring up a sale.
type CompleteOrderRequest struct {
	CustomerID    int64           `json:"customer_id" validate:"required,gt=0"`
	EmployeeID    int64           `json:"employee_id"`
	Items         []LineItem      `json:"items" validate:"dive"`
	CreditToApply decimal.Decimal `json:"credit_to_apply"`
	// CreditSnapshot is the balance the operator saw; the live balance always wins.
	CreditSnapshot *decimal.Decimal `json:"credit_snapshot,omitempty"`
}

// Order is a completed sale header.
type Order struct {
	ID            int64           `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    int64           `json:"customer_id"`
	EmployeeID    int64           `json:"employee_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreditApplied decimal.Decimal `json:"credit_applied"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	CreatedAt     time.Time       `json:"created_at"`
	Lines         []*OrderLine    `json:"lines,omitempty"`
}

// OrderLine is one sold item. BookID is nil for manual items.
type OrderLine struct {
	ID      int64           `json:"order_detail_id"`
	OrderID int64           `json:"order_id"`
	BookID  *int64          `json:"book_id"`
	Title   string          `json:"title"`
	Price   decimal.Decimal `json:"price"`
}

// Totals is the money breakdown of a cart against a credit balance.
type Totals struct {
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CreditAvailable decimal.Decimal `json:"credit_available"`
	CreditApplied   decimal.Decimal `json:"credit_applied"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	RemainingCredit decimal.Decimal `json:"remaining_credit"`
}

// Confirmation is returned once an order has committed.
type Confirmation struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Totals
}
