package book

import (
	"github.com/shopspring/decimal"
)

// Status is a copy's sale state. Books move Available → Sold once and are never deleted.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusSold      Status = "Sold"
)

// Book is one physical copy on the shelf.
type Book struct {
	ID            int64           `json:"book_id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Condition     string          `json:"condition"`
	Rating        decimal.Decimal `json:"rating"`
	ISBN          string          `json:"isbn"`
	ISBN13        string          `json:"isbn_13"`
	Language      string          `json:"language"`
	Pages         int             `json:"num_pages"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ResalePrice   decimal.Decimal `json:"resale_price"`
	Status        Status          `json:"status"`
}

func (b *Book) Available() bool { return b.Status == StatusAvailable }

// SaleCheck is what the cart needs to add an inventory line.
type SaleCheck struct {
	ID          int64           `json:"book_id"`
	Title       string          `json:"title"`
	ResalePrice decimal.Decimal `json:"resale_price"`
}

// Match is an ISBN search hit.
type Match struct {
	Book
	IsAvailable bool `json:"available"`
}

// PurchaseRequest records a book bought from a customer for store credit.
type PurchaseRequest struct {
	CustomerID    int64           `json:"customer_id" validate:"required,gt=0"`
	Title         string          `json:"title" validate:"required,max=255"`
	Author        string          `json:"author" validate:"required,max=255"`
	Condition     string          `json:"condition" validate:"required,max=50"`
	Rating        decimal.Decimal `json:"rating"`
	ISBN          string          `json:"isbn" validate:"omitempty,max=10"`
	ISBN13        string          `json:"isbn_13" validate:"omitempty,max=13"`
	Language      string          `json:"language" validate:"max=50"`
	Pages         int             `json:"num_pages" validate:"gte=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ResalePrice   decimal.Decimal `json:"resale_price"`
}

// PurchaseReceipt reports the shelved copy and the seller's new balance.
type PurchaseReceipt struct {
	BookID      int64           `json:"book_id"`
	ResalePrice decimal.Decimal `json:"resale_price"`
	CreditTotal decimal.Decimal `json:"credit_total"`
}
