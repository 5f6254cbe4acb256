package book

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines book data storage. Single-row reads return sql.ErrNoRows.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Book, error)
	// SearchByISBN matches isbn against both ISBN columns, ordered by id.
	SearchByISBN(ctx context.Context, isbn string, availableOnly bool) ([]*Book, error)
	ListAvailable(ctx context.Context, limit int) ([]*Book, error)
	// Purchase shelves b and credits the seller in one transaction, returning the new balance.
	Purchase(ctx context.Context, b *Book, customerID int64) (decimal.Decimal, error)
}
