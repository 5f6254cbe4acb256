package auth

import (
	"net/http"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := web.Decode(r, &req); err != nil {
		web.Fail(w, err)
		return
	}
	token, err := h.service.Login(r.Context(), req.EmployeeID, req.Passcode)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, token)
}
