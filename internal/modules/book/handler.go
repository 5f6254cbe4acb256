package book

import (
	"net/http"
	"strconv"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

// Handler exposes book HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/books", func(r chi.Router) {
		r.Get("/available", h.listAvailable) // ?limit=
		r.Get("/isbn/{isbn}", h.searchByISBN)
		r.Get("/isbn/{isbn}/available", h.searchAvailableByISBN)
		r.Get("/{id}/sellable", h.validateForSale)
		r.Post("/purchases", h.purchase)
	})
}

func (h *Handler) validateForSale(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	check, err := h.service.ValidateForSale(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, check)
}

func (h *Handler) searchByISBN(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.SearchByISBN(r.Context(), chi.URLParam(r, "isbn"))
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, matches)
}

func (h *Handler) searchAvailableByISBN(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.SearchAvailableByISBN(r.Context(), chi.URLParam(r, "isbn"))
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, books)
}

func (h *Handler) listAvailable(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			web.Fail(w, apperr.Validation("limit must be an integer, got %q", raw))
			return
		}
		limit = n
	}
	books, err := h.service.ListAvailable(r.Context(), limit)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, books)
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := web.Decode(r, &req); err != nil {
		web.Fail(w, err)
		return
	}
	receipt, err := h.service.PurchaseFromCustomer(r.Context(), req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusCreated, receipt)
}
