package employee

import (
	"net/http"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	manager func(http.Handler) http.Handler
}

// NewHandler wires the handler; manager guards hiring and termination.
func NewHandler(service Service, manager func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, manager: manager}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/{id}", h.get)
		r.Group(func(r chi.Router) {
			r.Use(h.manager)
			r.Post("/", h.hire)
			r.Delete("/{id}", h.terminate)
		})
	})
}

func (h *Handler) hire(w http.ResponseWriter, r *http.Request) {
	var req HireRequest
	if err := web.Decode(r, &req); err != nil {
		web.Fail(w, err)
		return
	}
	e, err := h.service.Hire(r.Context(), req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusCreated, e)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, e)
}

func (h *Handler) terminate(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.service.Terminate(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, map[string]string{"status": "Employee terminated."})
}
