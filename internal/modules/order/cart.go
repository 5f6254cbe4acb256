package order

import (
	"context"
	"strings"

	"github.com/georgemunganga/usedbooks-backend/internal/modules/book"
	"github.com/georgemunganga/usedbooks-backend/internal/money"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// BookLookup resolves a shelved copy for sale.
type BookLookup interface {
	ValidateForSale(ctx context.Context, id int64) (*book.SaleCheck, error)
}

// Cart collects line items in the order they are added. A copy can be added once.
type Cart struct {
	items []LineItem
}

func (c *Cart) AddBook(check *book.SaleCheck) error {
	if lo.ContainsBy(c.items, func(li LineItem) bool {
		return li.Kind == KindInventory && li.BookID == check.ID
	}) {
		return apperr.Validation("This book is already in the order.")
	}
	c.items = append(c.items, LineItem{
		Kind:   KindInventory,
		BookID: check.ID,
		Title:  check.Title,
		Price:  check.ResalePrice,
	})
	return nil
}

func (c *Cart) AddManual(title string, price decimal.Decimal) error {
	li := LineItem{Kind: KindManual, Title: strings.TrimSpace(title), Price: price}
	if err := li.Validate(); err != nil {
		return err
	}
	c.items = append(c.items, li)
	return nil
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return apperr.Validation("no item at position %d", index+1)
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the cart contents.
func (c *Cart) Items() []LineItem {
	return append([]LineItem(nil), c.items...)
}

func (c *Cart) Total() decimal.Decimal {
	return money.Sum(lo.Map(c.items, func(li LineItem, _ int) decimal.Decimal { return li.Price })...)
}

// Assemble builds a cart from submitted items. Inventory items take their title and
// price from the shelf; manual items are kept as entered.
func Assemble(ctx context.Context, books BookLookup, items []LineItem) (*Cart, error) {
	c := &Cart{}
	for i, li := range items {
		var err error
		switch li.Kind {
		case KindInventory:
			if li.BookID <= 0 {
				return nil, apperr.Validation("item %d: inventory item needs a positive book_id", i+1)
			}
			var check *book.SaleCheck
			if check, err = books.ValidateForSale(ctx, li.BookID); err == nil {
				err = c.AddBook(check)
			}
		case KindManual:
			err = c.AddManual(li.Title, li.Price)
		default:
			err = apperr.Validation("item %d: unknown item kind %q", i+1, li.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}
