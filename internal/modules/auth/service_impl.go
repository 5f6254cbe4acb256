package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/employee"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	badLogin   = "Invalid employee ID or passcode."
	badSession = "Session expired or invalid, please sign in again."
)

type service struct {
	employees employee.Repository
	key       []byte
	ttl       time.Duration
	logger    logrus.FieldLogger
}

// NewService creates a new auth service signing with secret.
func NewService(employees employee.Repository, secret string, ttl time.Duration, logger logrus.FieldLogger) Service {
	return &service{employees: employees, key: []byte(secret), ttl: ttl, logger: logger}
}

func (s *service) Login(ctx context.Context, employeeID int64, passcode string) (*Token, error) {
	e, err := s.employees.GetByID(ctx, employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Unauthorized(badLogin)
	}
	if err != nil {
		return nil, err
	}

	if !e.Active() {
		s.logger.WithField("employee_id", employeeID).Warn("sign-in attempt by terminated employee")
		return nil, apperr.Unauthorized(badLogin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasscodeHash), []byte(passcode)); err != nil {
		s.logger.WithField("employee_id", employeeID).Warn("sign-in rejected")
		return nil, apperr.Unauthorized(badLogin)
	}

	expirationTime := time.Now().Add(s.ttl)
	claims := &Claims{
		AccessLevel: e.AccessLevel,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(e.ID, 10),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.key)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("employee_id", e.ID).Info("employee signed in")
	return &Token{Token: tokenString, ExpiresAt: expirationTime, Employee: e}, nil
}

func (s *service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized(badSession)
	}
	if _, err := claims.EmployeeID(); err != nil {
		return nil, apperr.Unauthorized(badSession)
	}
	return claims, nil
}

func (s *service) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	id, _ := claims.EmployeeID()
	e, err := s.employees.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Unauthorized(badSession)
	}
	if err != nil {
		return nil, err
	}
	if !e.Active() {
		s.logger.WithField("employee_id", id).Warn("token presented by terminated employee")
		return nil, apperr.Unauthorized(badSession)
	}
	claims.AccessLevel = e.AccessLevel
	return claims, nil
}
