package customer

import (
	"net/http"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

// Handler exposes customer HTTP endpoints.
type Handler struct {
	service Service
	manager func(http.Handler) http.Handler
}

// NewHandler wires the handler; manager guards the routes reserved for managers.
func NewHandler(service Service, manager func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, manager: manager}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.register)           // POST   /api/v1/customers
		r.Get("/credit", h.creditByEmail) // GET    /api/v1/customers/credit?email=
		r.Get("/{id}", h.get)             // GET    /api/v1/customers/{id}
		r.Get("/{id}/credit", h.credit)   // GET    /api/v1/customers/{id}/credit
		r.With(h.manager).Post("/{id}/credit", h.adjustCredit)
		r.With(h.manager).Delete("/{id}", h.deactivate)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := web.Decode(r, &req); err != nil {
		web.Fail(w, err)
		return
	}
	c, err := h.service.Register(r.Context(), req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusCreated, c)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, c)
}

func (h *Handler) credit(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	bal, err := h.service.Credit(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, bal)
}

func (h *Handler) creditByEmail(w http.ResponseWriter, r *http.Request) {
	bal, err := h.service.CreditByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, bal)
}

func (h *Handler) adjustCredit(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	var req CreditAdjustment
	if err := web.Decode(r, &req); err != nil {
		web.Fail(w, err)
		return
	}
	bal, err := h.service.AdjustCredit(r.Context(), id, req.Delta)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, bal)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	if err := h.service.Deactivate(r.Context(), id); err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, map[string]string{"status": "Customer marked as inactive."})
}
