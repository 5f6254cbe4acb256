package employee

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/georgemunganga/usedbooks-backend/internal/config"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo   Repository
	logger logrus.FieldLogger
	cost   int
}

// NewService creates a new employee service.
func NewService(repo Repository, logger logrus.FieldLogger) Service {
	return &service{repo: repo, logger: logger, cost: bcrypt.DefaultCost}
}

func (s *service) Hire(ctx context.Context, req HireRequest) (*Employee, error) {
	e := &Employee{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Phone:       strings.TrimSpace(req.Phone),
		AccessLevel: req.AccessLevel,
	}
	if e.FirstName == "" || e.LastName == "" || e.Phone == "" || req.Passcode == "" {
		return nil, apperr.Validation("All fields are required.")
	}
	if !e.AccessLevel.Valid() {
		return nil, apperr.Validation("Access level must be %q or %q.", AccessManager, AccessClerk)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Passcode), s.cost)
	if err != nil {
		return nil, apperr.Validation("passcode: %v", err)
	}
	e.PasscodeHash = string(hash)

	if err := s.repo.Create(ctx, e); err != nil {
		config.LogError(s.logger, "employee", "Hire", "insert employee", e.Name(), err)
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"employee_id":  e.ID,
		"access_level": e.AccessLevel,
	}).Info("employee hired")
	return e, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No employee found with ID: %d", id)
	}
	return e, err
}

func (s *service) Terminate(ctx context.Context, id int64) error {
	n, err := s.repo.MarkTerminated(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("No employee found with ID: %d", id)
	}
	s.logger.WithField("employee_id", id).Info("employee terminated")
	return nil
}

func (s *service) Bootstrap(ctx context.Context, req HireRequest) (*Employee, error) {
	n, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, nil
	}
	req.AccessLevel = AccessManager
	e, err := s.Hire(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("employee_id", e.ID).Warn("no active employees; bootstrap manager hired")
	return e, nil
}
