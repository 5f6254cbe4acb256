package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/usedbooks-backend/internal/config"
	"github.com/georgemunganga/usedbooks-backend/internal/money"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service defines the order business logic.
type Service interface {
	// CompleteOrder records the sale, flips every inventory item to Sold and deducts
	// the applied credit, all or nothing.
	CompleteOrder(ctx context.Context, req CompleteOrderRequest) (*Confirmation, error)

	// Preview computes totals against the live balance without writing.
	Preview(ctx context.Context, req CompleteOrderRequest) (*Totals, error)

	// GetOrder retrieves a full order with its lines.
	GetOrder(ctx context.Context, id int64) (*Order, error)

	// ListCustomerOrders returns all orders placed by a customer.
	ListCustomerOrders(ctx context.Context, customerID int64) ([]*Order, error)
}

type service struct {
	repo   Repository
	logger logrus.FieldLogger
}

// NewService creates a new order service.
func NewService(repo Repository, logger logrus.FieldLogger) Service {
	return &service{repo: repo, logger: logger}
}

// validateCart checks everything Preview and CompleteOrder share.
func validateCart(req CompleteOrderRequest) error {
	if req.CustomerID <= 0 {
		return apperr.Validation("Please select a customer.")
	}
	if err := money.Check(req.CreditToApply); err != nil {
		return apperr.Validation("credit_to_apply: %v", err)
	}
	for i, li := range req.Items {
		if err := li.Validate(); err != nil {
			return apperr.Validation("item %d: %v", i+1, err)
		}
	}
	return nil
}

func (s *service) CompleteOrder(ctx context.Context, req CompleteOrderRequest) (*Confirmation, error) {
	if err := validateCart(req); err != nil {
		return nil, err
	}
	if req.EmployeeID <= 0 {
		return nil, apperr.Validation("Order has no signed-in employee.")
	}

	o := &Order{
		OrderNumber: generateOrderNumber(),
		CustomerID:  req.CustomerID,
		EmployeeID:  req.EmployeeID,
	}
	var totals Totals

	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		live, err := tx.LockCredit(ctx, req.CustomerID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("No active customer found with ID: %d", req.CustomerID)
		}
		if err != nil {
			return fmt.Errorf("lock customer credit: %w", err)
		}
		if req.CreditSnapshot != nil && !req.CreditSnapshot.Equal(live) {
			s.logger.WithFields(logrus.Fields{
				"customer_id": req.CustomerID,
				"snapshot":    money.Amount(*req.CreditSnapshot),
				"live":        money.Amount(live),
			}).Warn("credit changed since the cart was opened; using live balance")
		}

		totals = ComputeTotals(req.Items, req.CreditToApply, live)
		o.TotalAmount = totals.TotalAmount
		o.CreditApplied = totals.CreditApplied
		o.AmountPaid = totals.AmountPaid

		o.ID, err = tx.InsertOrder(ctx, o)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, li := range req.Items {
			line := &OrderLine{OrderID: o.ID, BookID: li.bookRef(), Title: li.Title, Price: li.Price}
			if err := tx.InsertLine(ctx, line); err != nil {
				return fmt.Errorf("insert order line %q: %w", li.Title, err)
			}
			o.Lines = append(o.Lines, line)
		}

		for _, id := range inventoryIDs(req.Items) {
			if err := tx.MarkBookSold(ctx, id); err != nil {
				return err
			}
		}

		if totals.CreditApplied.IsPositive() {
			if err := tx.StoreCredit(ctx, req.CustomerID, totals.RemainingCredit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.LogError(s.logger, "order", "CompleteOrder", "order transaction", req, err)
		return nil, apperr.Transaction(err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":       o.ID,
		"order_number":   o.OrderNumber,
		"customer_id":    o.CustomerID,
		"employee_id":    o.EmployeeID,
		"items":          len(req.Items),
		"total_amount":   money.Amount(o.TotalAmount),
		"credit_applied": money.Amount(o.CreditApplied),
		"amount_paid":    money.Amount(o.AmountPaid),
	}).Info("order completed")

	return &Confirmation{OrderID: o.ID, OrderNumber: o.OrderNumber, Totals: totals}, nil
}

func (s *service) Preview(ctx context.Context, req CompleteOrderRequest) (*Totals, error) {
	if err := validateCart(req); err != nil {
		return nil, err
	}
	live, err := s.repo.CreditBalance(ctx, req.CustomerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No active customer found with ID: %d", req.CustomerID)
	}
	if err != nil {
		return nil, err
	}
	t := ComputeTotals(req.Items, req.CreditToApply, live)
	return &t, nil
}

func (s *service) GetOrder(ctx context.Context, id int64) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No order found with ID: %d", id)
	}
	return o, err
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID int64) ([]*Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// generateOrderNumber creates a human-readable order number: ORD-YYYYMMDD-XXXXXXXXXXXX.
// The suffix is the first 48 bits of a random uuid.
func generateOrderNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
	return fmt.Sprintf("ORD-%s-%s", date, suffix)
}
