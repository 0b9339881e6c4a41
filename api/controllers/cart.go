package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slicehaus/slicehaus-backend/api/middleware"
	"github.com/slicehaus/slicehaus-backend/api/responses"
	"github.com/slicehaus/slicehaus-backend/api/validators"
	cartsvc "github.com/slicehaus/slicehaus-backend/internal/cart"
	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/slicehaus/slicehaus-backend/pkg/errors"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

type addCartItemRequest struct {
	PizzaID          string                  `json:"pizza_id" validate:"required"`
	Size             enums.PizzaSize         `json:"size" validate:"required"`
	Quantity         int                     `json:"quantity" validate:"required,gt=0"`
	SelectedToppings []string                `json:"selected_toppings,omitempty"`
	IsCustom         bool                    `json:"is_custom,omitempty"`
	CustomToppings   types.ToppingPlacements `json:"custom_toppings,omitempty"`
	CustomCrust      string                  `json:"custom_crust,omitempty"`
	CustomSauce      string                  `json:"custom_sauce,omitempty"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func cartOwner(r *http.Request) (string, error) {
	ownerID := middleware.CartOwnerFromContext(r.Context())
	if ownerID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart session missing")
	}
	return ownerID, nil
}

// CartGet returns the owner's current cart.
func CartGet(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := cartOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Get(r.Context(), ownerID))
	}
}

// CartAddItem adds a menu pizza or a customized pie to the cart.
func CartAddItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := cartOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var result cartsvc.Cart
		if payload.IsCustom {
			result, err = svc.AddCustomItem(r.Context(), ownerID, cartsvc.AddCustomItemInput{
				PizzaID:  payload.PizzaID,
				Size:     payload.Size,
				Toppings: payload.CustomToppings,
				Crust:    payload.CustomCrust,
				Sauce:    payload.CustomSauce,
				Quantity: payload.Quantity,
			})
		} else {
			result, err = svc.AddItem(r.Context(), ownerID, cartsvc.AddItemInput{
				PizzaID:          payload.PizzaID,
				Size:             payload.Size,
				SelectedToppings: payload.SelectedToppings,
				Quantity:         payload.Quantity,
			})
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartUpdateItem sets a line's quantity; zero or below removes it.
func CartUpdateItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := cartOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateQuantity(r.Context(), ownerID, itemID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartRemoveItem deletes a line.
func CartRemoveItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := cartOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		result, err := svc.RemoveItem(r.Context(), ownerID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartClear empties the owner's cart.
func CartClear(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := cartOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Clear(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
