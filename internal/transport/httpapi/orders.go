package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/burger-oms/internal/usecase"
)

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "token not provided")
		return
	}

	var in usecase.CreateOrderInput
	if err := decodeJSON(w, r, usecase.SchemaOrderCreate, &in); err != nil {
		respondOutcome(w, err)
		return
	}
	in.UserID = claims.UserID

	started := time.Now()
	order, err := h.uc.CreateOrder.Execute(r.Context(), &in)
	h.observe("create_order", started, err)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toOrder(order))
}

// listOrders отдаёт заказы пользователя; администратор видит все.
func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "token not provided")
		return
	}

	orders, err := h.uc.ListOrders.Execute(r.Context(), claims.UserID, claims.Admin)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mapSlice(orders, toOrder))
}

func (h *handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var in usecase.UpdateOrderInput
	if err := decodeJSON(w, r, schemaOrderUpdate, &in); err != nil {
		respondOutcome(w, err)
		return
	}
	in.OrderID = chi.URLParam(r, "id")

	started := time.Now()
	order, err := h.uc.UpdateOrder.Execute(r.Context(), &in)
	h.observe("update_order", started, err)
	if err != nil {
		respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrder(order))
}
