package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/slicehaus/slicehaus-backend/api/middleware"
	"github.com/slicehaus/slicehaus-backend/api/responses"
	"github.com/slicehaus/slicehaus-backend/api/validators"
	cartsvc "github.com/slicehaus/slicehaus-backend/internal/cart"
	ordersvc "github.com/slicehaus/slicehaus-backend/internal/orders"
	pkgerrors "github.com/slicehaus/slicehaus-backend/pkg/errors"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
)

// OrderCreate is the checkout endpoint. Prices are recomputed from the
// catalog inside the service; on success the caller's cart is cleared.
func OrderCreate(svc *ordersvc.Service, carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ordersvc.CreateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
				return
			}
			userID = &parsed
		}

		order, err := svc.Create(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if carts != nil {
			if ownerID := middleware.CartOwnerFromContext(r.Context()); ownerID != "" {
				if _, err := carts.Clear(r.Context(), ownerID); err != nil && logg != nil {
					logg.Warn(logg.WithFields(r.Context(), map[string]any{
						"error": err.Error(),
					}), "checkout.cart_clear_failed")
				}
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderGet loads one order by id.
func OrderGet(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderHistory returns a user's orders. Callers may only read their
// own history.
func OrderHistory(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := middleware.UserIDFromContext(r.Context())
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
			return
		}

		requested, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}
		if requested != userID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cannot read another user's orders"))
			return
		}

		orders, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}
