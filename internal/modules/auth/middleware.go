package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/usedbooks-backend/internal/modules/employee"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/web"
)

type ctxKey struct{}

// Middleware rejects requests without a valid bearer token for an active
// employee and stores its claims.
func Middleware(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw := strings.TrimPrefix(header, "Bearer ")
			if header == "" || raw == header {
				web.Fail(w, apperr.Unauthorized("Please sign in."))
				return
			}
			claims, err := svc.Authenticate(r.Context(), strings.TrimSpace(raw))
			if err != nil {
				web.Fail(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAccess allows only signed-in employees holding level.
func RequireAccess(level employee.AccessLevel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				web.Fail(w, apperr.Unauthorized("Please sign in."))
				return
			}
			if claims.AccessLevel != level {
				web.Fail(w, apperr.Forbidden("This action requires %s access.", level))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok
}

// EmployeeID returns the signed-in employee, if any.
func EmployeeID(ctx context.Context) (int64, bool) {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	id, err := c.EmployeeID()
	return id, err == nil
}
