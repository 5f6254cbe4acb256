package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestFailUsesMostSpecificKind(t *testing.T) {
	cause := apperr.AlreadySold("Book '%s' is already sold.", "Dune")
	rec := httptest.NewRecorder()
	Fail(rec, apperr.Transaction(fmt.Errorf("mark sold: %w", cause)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "already_sold", env.Kind)
	assert.Equal(t, "mark sold: Book 'Dune' is already sold.", env.Error)
}

func TestFailPlainErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, fmt.Errorf("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal", decodeEnvelope(t, rec).Kind)
}

type payload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestDecodeValidates(t *testing.T) {
	var p payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	err := Decode(req, &p)
	require.Error(t, err)
	assert.True(t, apperr.KindOf(err) == apperr.KindValidation)
	assert.Equal(t, "invalid request: payload.Email: email, payload.Name: required", err.Error())

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, Decode(req, &p))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
	require.NoError(t, Decode(req, &p))
	assert.Equal(t, "Ada", p.Name)
}

func TestIDParam(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := IDParam(r, "id")
		if err != nil {
			Fail(w, err)
			return
		}
		OK(w, http.StatusOK, id)
	})

	for path, code := range map[string]int{
		"/books/7":   http.StatusOK,
		"/books/0":   http.StatusBadRequest,
		"/books/-3":  http.StatusBadRequest,
		"/books/abc": http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, code, rec.Code, path)
	}
}
