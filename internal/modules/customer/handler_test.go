package customer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/usedbooks-backend/internal/modules/auth"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/customer"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/employee"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedIn(level employee.AccessLevel) *auth.Claims {
	c := &auth.Claims{AccessLevel: level}
	c.Subject = "1"
	return c
}

func send(t *testing.T, h http.Handler, method, path, body string, claims *auth.Claims) (int, web.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(auth.WithClaims(context.Background(), claims))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env web.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestHandlerAdjustCredit(t *testing.T) {
	svc, repo := newService(t)
	c, err := svc.Register(context.Background(), customer.RegisterRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)
	repo.rows[c.ID].CreditTotal = decimal.RequireFromString("10.00")

	r := chi.NewRouter()
	customer.NewHandler(svc, auth.RequireAccess(employee.AccessManager)).RegisterRoutes(r)

	code, _ := send(t, r, http.MethodPost, "/customers/1/credit", `{"delta": "-2.50"}`, signedIn(employee.AccessClerk))
	assert.Equal(t, http.StatusForbidden, code)
	assert.True(t, repo.rows[c.ID].CreditTotal.Equal(decimal.RequireFromString("10")))

	code, env := send(t, r, http.MethodPost, "/customers/1/credit", `{"delta": "-2.50"}`, signedIn(employee.AccessManager))
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.True(t, repo.rows[c.ID].CreditTotal.Equal(decimal.RequireFromString("7.50")))

	code, _ = send(t, r, http.MethodPost, "/customers/1/credit", `{"delta": "0"}`, signedIn(employee.AccessManager))
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = send(t, r, http.MethodDelete, "/customers/1", "", signedIn(employee.AccessManager))
	require.Equal(t, http.StatusOK, code)
	code, env = send(t, r, http.MethodDelete, "/customers/1", "", signedIn(employee.AccessManager))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No active customer found with ID: 1", env.Error)
}
