package customer

import (
	"github.com/shopspring/decimal"
)

// Status is a customer's account state. Inactive rows are retained.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer is a store-credit account holder.
type Customer struct {
	ID          int64           `json:"customer_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	Status      Status          `json:"status"`
}

// RegisterRequest is the payload for opening a customer account.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
}

// CreditAdjustment is a manager's signed correction to a balance.
type CreditAdjustment struct {
	Delta decimal.Decimal `json:"delta"`
}

// CreditBalance is the ledger read result.
type CreditBalance struct {
	CustomerID  int64           `json:"customer_id,omitempty"`
	Email       string          `json:"email,omitempty"`
	CreditTotal decimal.Decimal `json:"credit_total"`
}
