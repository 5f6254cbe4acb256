package order

import (
	"net/http"

	"github.com/georgemunganga/usedbooks-backend/internal/modules/auth"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service Service
	books   BookLookup
}

func NewHandler(service Service, books BookLookup) *Handler {
	return &Handler{service: service, books: books}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.completeOrder)
		r.Post("/preview", h.preview)
		r.Get("/{id}", h.getOrder)
		r.Get("/customer/{customer_id}", h.listCustomerOrders)
	})
}

// orderRequest is the checkout payload; the employee comes from the session.
type orderRequest struct {
	CustomerID     int64            `json:"customer_id" validate:"required,gt=0"`
	Items          []LineItem       `json:"items" validate:"dive"`
	CreditToApply  decimal.Decimal  `json:"credit_to_apply"`
	CreditSnapshot *decimal.Decimal `json:"credit_snapshot,omitempty"`
}

func (h *Handler) decode(r *http.Request) (CompleteOrderRequest, error) {
	var body orderRequest
	if err := web.Decode(r, &body); err != nil {
		return CompleteOrderRequest{}, err
	}
	cart, err := Assemble(r.Context(), h.books, body.Items)
	if err != nil {
		return CompleteOrderRequest{}, err
	}
	employeeID, _ := auth.EmployeeID(r.Context())
	return CompleteOrderRequest{
		CustomerID:     body.CustomerID,
		EmployeeID:     employeeID,
		Items:          cart.Items(),
		CreditToApply:  body.CreditToApply,
		CreditSnapshot: body.CreditSnapshot,
	}, nil
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	if req.EmployeeID == 0 {
		web.Fail(w, apperr.Unauthorized("Please sign in."))
		return
	}
	conf, err := h.service.CompleteOrder(r.Context(), req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusCreated, conf)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		web.Fail(w, err)
		return
	}
	totals, err := h.service.Preview(r.Context(), req)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, totals)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, o)
}

func (h *Handler) listCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID, err := web.IDParam(r, "customer_id")
	if err != nil {
		web.Fail(w, err)
		return
	}
	orders, err := h.service.ListCustomerOrders(r.Context(), customerID)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.OK(w, http.StatusOK, orders)
}
