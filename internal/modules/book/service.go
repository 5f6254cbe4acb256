package book

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/georgemunganga/usedbooks-backend/internal/config"
	"github.com/georgemunganga/usedbooks-backend/internal/money"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

var maxRating = decimal.NewFromInt(5)

// Service defines inventory lookup and intake.
type Service interface {
	// ValidateForSale confirms a copy exists and has not been sold.
	ValidateForSale(ctx context.Context, id int64) (*SaleCheck, error)

	// SearchByISBN returns every copy matching isbn on either ISBN column.
	SearchByISBN(ctx context.Context, isbn string) ([]*Match, error)

	// SearchAvailableByISBN returns only the unsold copies.
	SearchAvailableByISBN(ctx context.Context, isbn string) ([]*Book, error)

	ListAvailable(ctx context.Context, limit int) ([]*Book, error)

	// PurchaseFromCustomer shelves a bought book and credits the seller its purchase price.
	PurchaseFromCustomer(ctx context.Context, req PurchaseRequest) (*PurchaseReceipt, error)
}

type service struct {
	repo   Repository
	logger logrus.FieldLogger
}

// NewService creates a new book service.
func NewService(repo Repository, logger logrus.FieldLogger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) ValidateForSale(ctx context.Context, id int64) (*SaleCheck, error) {
	b, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No book found with ID: %d", id)
	}
	if err != nil {
		return nil, err
	}
	if !b.Available() {
		return nil, apperr.AlreadySold("Book '%s' is already sold.", b.Title)
	}
	return &SaleCheck{ID: b.ID, Title: b.Title, ResalePrice: b.ResalePrice}, nil
}

func normalizeISBN(isbn string) (string, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return "", apperr.Validation("Please enter an ISBN.")
	}
	return isbn, nil
}

func (s *service) SearchByISBN(ctx context.Context, isbn string) ([]*Match, error) {
	isbn, err := normalizeISBN(isbn)
	if err != nil {
		return nil, err
	}
	books, err := s.repo.SearchByISBN(ctx, isbn, false)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperr.NotFound("No book found with ISBN: %s", isbn)
	}
	return lo.Map(books, func(b *Book, _ int) *Match {
		return &Match{Book: *b, IsAvailable: b.Available()}
	}), nil
}

func (s *service) SearchAvailableByISBN(ctx context.Context, isbn string) ([]*Book, error) {
	isbn, err := normalizeISBN(isbn)
	if err != nil {
		return nil, err
	}
	books, err := s.repo.SearchByISBN(ctx, isbn, true)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperr.NotFound("No available copy found with ISBN: %s", isbn)
	}
	return books, nil
}

func (s *service) ListAvailable(ctx context.Context, limit int) ([]*Book, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	books, err := s.repo.ListAvailable(ctx, limit)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*Book{}
	}
	return books, nil
}

func (s *service) PurchaseFromCustomer(ctx context.Context, req PurchaseRequest) (*PurchaseReceipt, error) {
	for _, amt := range [...]struct {
		field string
		err   error
	}{
		{"purchase_price", money.Check(req.PurchasePrice)},
		{"resale_price", money.Check(req.ResalePrice)},
	} {
		if amt.err != nil {
			return nil, apperr.Validation("%s: %v", amt.field, amt.err)
		}
	}
	if req.Rating.IsNegative() || req.Rating.GreaterThan(maxRating) {
		return nil, apperr.Validation("rating must be between 0 and 5")
	}

	b := &Book{
		Title:         strings.TrimSpace(req.Title),
		Author:        strings.TrimSpace(req.Author),
		Condition:     strings.TrimSpace(req.Condition),
		Rating:        req.Rating,
		ISBN:          strings.TrimSpace(req.ISBN),
		ISBN13:        strings.TrimSpace(req.ISBN13),
		Language:      strings.TrimSpace(req.Language),
		Pages:         req.Pages,
		PurchasePrice: req.PurchasePrice,
		ResalePrice:   req.ResalePrice,
	}
	credit, err := s.repo.Purchase(ctx, b, req.CustomerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No active customer found with ID: %d", req.CustomerID)
	}
	if err != nil {
		config.LogError(s.logger, "book", "PurchaseFromCustomer", "purchase transaction", req, err)
		return nil, apperr.Transaction(err)
	}

	s.logger.WithFields(logrus.Fields{
		"book_id":        b.ID,
		"customer_id":    req.CustomerID,
		"purchase_price": money.Amount(b.PurchasePrice),
		"credit_total":   money.Amount(credit),
	}).Info("book purchased from customer")
	return &PurchaseReceipt{BookID: b.ID, ResalePrice: b.ResalePrice, CreditTotal: credit}, nil
}
