package customer

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/georgemunganga/usedbooks-backend/internal/config"
	"github.com/georgemunganga/usedbooks-backend/internal/money"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/database"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service defines customer accounts and the store-credit ledger.
type Service interface {
	// Register opens an account; the email is stored lowercased and must be unused.
	Register(ctx context.Context, req RegisterRequest) (*Customer, error)

	// Get returns an active customer.
	Get(ctx context.Context, id int64) (*Customer, error)

	// Deactivate soft-deletes a customer.
	Deactivate(ctx context.Context, id int64) error

	// Credit reads a customer's balance by id.
	Credit(ctx context.Context, id int64) (*CreditBalance, error)

	// CreditByEmail reads a customer's balance by email.
	CreditByEmail(ctx context.Context, email string) (*CreditBalance, error)

	// AdjustCredit applies a signed delta; the result never drops below zero.
	AdjustCredit(ctx context.Context, id int64, delta decimal.Decimal) (*CreditBalance, error)
}

type service struct {
	repo   Repository
	logger logrus.FieldLogger
}

// NewService creates a new customer service.
func NewService(repo Repository, logger logrus.FieldLogger) Service {
	return &service{repo: repo, logger: logger}
}

// NormalizeEmail is applied before every email comparison or write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Customer, error) {
	c := &Customer{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     NormalizeEmail(req.Email),
	}
	if c.FirstName == "" || c.LastName == "" || c.Email == "" {
		return nil, apperr.Validation("All fields are required.")
	}

	taken, err := s.repo.EmailExists(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.DuplicateKey("Email already in use.")
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperr.DuplicateKey("Email already in use.")
		}
		config.LogError(s.logger, "customer", "Register", "insert customer", c.Email, err)
		return nil, err
	}
	s.logger.WithField("customer_id", c.ID).Info("customer registered")
	return c, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Customer, error) {
	c, err := s.repo.GetActiveByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No active customer found with ID: %d", id)
	}
	return c, err
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	n, err := s.repo.MarkInactive(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("No active customer found with ID: %d", id)
	}
	s.logger.WithField("customer_id", id).Info("customer marked inactive")
	return nil
}

func (s *service) Credit(ctx context.Context, id int64) (*CreditBalance, error) {
	credit, err := s.repo.CreditByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No customer found with ID: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &CreditBalance{CustomerID: id, CreditTotal: credit}, nil
}

func (s *service) CreditByEmail(ctx context.Context, email string) (*CreditBalance, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("Please enter a customer email.")
	}
	credit, err := s.repo.CreditByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No customer found with email: %s", email)
	}
	if err != nil {
		return nil, err
	}
	return &CreditBalance{Email: email, CreditTotal: credit}, nil
}

func (s *service) AdjustCredit(ctx context.Context, id int64, delta decimal.Decimal) (*CreditBalance, error) {
	if delta.IsZero() {
		return nil, apperr.Validation("Please enter a non-zero credit adjustment.")
	}
	if err := money.Check(delta.Abs()); err != nil {
		return nil, err
	}
	var old decimal.Decimal
	updated, err := s.repo.AdjustCredit(ctx, id, func(balance decimal.Decimal) decimal.Decimal {
		old = balance
		return ApplyDelta(balance, delta)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No customer found with ID: %d", id)
	}
	if err != nil {
		config.LogError(s.logger, "customer", "AdjustCredit", "adjust credit", id, err)
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"customer_id": id,
		"old_credit":  money.Amount(old),
		"new_credit":  money.Amount(updated),
	}).Info("customer credit adjusted")
	return &CreditBalance{CustomerID: id, CreditTotal: updated}, nil
}
