package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/employee"
)

// Service defines the interface for operator sign-in.
type Service interface {
	// Login checks an active employee's passcode and issues a signed token.
	Login(ctx context.Context, employeeID int64, passcode string) (*Token, error)
	// ParseToken verifies signature and expiry.
	ParseToken(token string) (*Claims, error)
	// Authenticate parses the token and confirms its employee is still active.
	// The returned claims carry the employee's current access level.
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

// Claims is the JWT payload. Subject holds the employee id.
type Claims struct {
	AccessLevel employee.AccessLevel `json:"access_level"`
	jwt.StandardClaims
}

func (c *Claims) EmployeeID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required,gt=0"`
	Passcode   string `json:"passcode" validate:"required"`
}

// Token is returned on successful sign-in.
type Token struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Employee  *employee.Employee `json:"employee"`
}
