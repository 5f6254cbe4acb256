// Package web holds the JSON envelope and request helpers shared by module handlers.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

var validate = validator.New()

func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// OK writes a success envelope.
func OK(w http.ResponseWriter, status int, data interface{}) {
	Respond(w, status, Envelope{Success: true, Data: data})
}

// Fail writes a failure envelope with the status the error kind calls for.
func Fail(w http.ResponseWriter, err error) {
	Respond(w, apperr.HTTPStatus(err), Envelope{
		Success: false,
		Error:   err.Error(),
		Kind:    failKind(err).String(),
	})
}

// failKind reports the most specific kind, matching HTTPStatus.
func failKind(err error) apperr.Kind {
	for _, k := range []*apperr.Error{
		apperr.ErrValidation, apperr.ErrUnauthorized, apperr.ErrForbidden, apperr.ErrNotFound,
		apperr.ErrAlreadySold, apperr.ErrDuplicateKey, apperr.ErrConnection, apperr.ErrTransaction,
	} {
		if errors.Is(err, k) {
			return k.Kind
		}
	}
	return apperr.KindInternal
}

// Decode reads a JSON body into dst and runs its validate tags.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return Validate(dst)
}

// Validate runs struct validation and reports failures as "field: tag" pairs.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	sort.Strings(msgs)
	return apperr.Validation("invalid request: %s", strings.Join(msgs, ", "))
}

// IDParam parses a positive integer URL parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}
