package auth_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/auth"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/employee"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

type staff map[int64]*employee.Employee

func (s staff) Create(context.Context, *employee.Employee) error {
	return errors.New("read only")
}

func (s staff) CountActive(context.Context) (int, error) {
	return len(s), nil
}

func (s staff) MarkTerminated(context.Context, int64) (int64, error) {
	return 0, errors.New("read only")
}

func (s staff) GetByID(_ context.Context, id int64) (*employee.Employee, error) {
	e, ok := s[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return e, nil
}

func hash(t *testing.T, passcode string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newService(t *testing.T) (auth.Service, staff) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	people := staff{
		1: {ID: 1, FirstName: "Mia", AccessLevel: employee.AccessManager, Status: employee.StatusActive, PasscodeHash: hash(t, "1111")},
		2: {ID: 2, FirstName: "Sam", AccessLevel: employee.AccessClerk, Status: employee.StatusActive, PasscodeHash: hash(t, "2222")},
		3: {ID: 3, FirstName: "Ex", AccessLevel: employee.AccessClerk, Status: employee.StatusTerminated, PasscodeHash: hash(t, "3333")},
	}
	return auth.NewService(people, secret, time.Hour, logger), people
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newService(t)

	tok, err := svc.Login(context.Background(), 1, "1111")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, time.Minute)

	claims, err := svc.ParseToken(tok.Token)
	require.NoError(t, err)
	id, err := claims.EmployeeID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, employee.AccessManager, claims.AccessLevel)
}

func TestLoginRejections(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for name, tc := range map[string]struct {
		id       int64
		passcode string
	}{
		"wrong passcode":      {2, "9999"},
		"unknown employee":    {42, "1111"},
		"terminated employee": {3, "3333"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.id, tc.passcode)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
			assert.Equal(t, "Invalid employee ID or passcode.", err.Error())
		})
	}
}

func TestParseTokenRejectsForgedAndExpired(t *testing.T) {
	svc, _ := newService(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		AccessLevel:    employee.AccessManager,
		StandardClaims: jwt.StandardClaims{Subject: "1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(forged)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		AccessLevel:    employee.AccessClerk,
		StandardClaims: jwt.StandardClaims{Subject: "2", ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = svc.ParseToken(expired)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func protectedRouter(svc auth.Service) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(svc))
		r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			id, _ := auth.EmployeeID(r.Context())
			web.OK(w, http.StatusOK, strconv.FormatInt(id, 10))
		})
		r.With(auth.RequireAccess(employee.AccessManager)).Delete("/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
			web.OK(w, http.StatusOK, "ok")
		})
	})
	return r
}

func call(t *testing.T, h http.Handler, method, path, token string) (int, web.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env web.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestMiddlewareAndRequireAccess(t *testing.T) {
	svc, _ := newService(t)
	h := protectedRouter(svc)
	ctx := context.Background()

	manager, err := svc.Login(ctx, 1, "1111")
	require.NoError(t, err)
	clerk, err := svc.Login(ctx, 2, "2222")
	require.NoError(t, err)

	code, env := call(t, h, http.MethodGet, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	assert.Equal(t, "unauthorized", env.Kind)

	code, env = call(t, h, http.MethodGet, "/whoami", clerk.Token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2", env.Data)

	code, env = call(t, h, http.MethodDelete, "/customers/5", clerk.Token)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "This action requires manager access.", env.Error)

	code, _ = call(t, h, http.MethodDelete, "/customers/5", manager.Token)
	assert.Equal(t, http.StatusOK, code)
}

func TestMiddlewareRejectsTerminatedEmployee(t *testing.T) {
	svc, people := newService(t)
	h := protectedRouter(svc)

	clerk, err := svc.Login(context.Background(), 2, "2222")
	require.NoError(t, err)
	code, _ := call(t, h, http.MethodGet, "/whoami", clerk.Token)
	require.Equal(t, http.StatusOK, code)

	people[2].Status = employee.StatusTerminated

	code, env := call(t, h, http.MethodGet, "/whoami", clerk.Token)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Session expired or invalid, please sign in again.", env.Error)

	delete(people, 2)
	code, _ = call(t, h, http.MethodGet, "/whoami", clerk.Token)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthenticateUsesCurrentAccessLevel(t *testing.T) {
	svc, people := newService(t)
	ctx := context.Background()

	tok, err := svc.Login(ctx, 1, "1111")
	require.NoError(t, err)
	people[1].AccessLevel = employee.AccessClerk

	claims, err := svc.Authenticate(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, employee.AccessClerk, claims.AccessLevel)

	code, _ := call(t, protectedRouter(svc), http.MethodDelete, "/customers/5", tok.Token)
	assert.Equal(t, http.StatusForbidden, code)
}
