package controllers

import (
	"net/http"

	"github.com/slicehaus/slicehaus-backend/api/responses"
	"github.com/slicehaus/slicehaus-backend/internal/catalog"
	"github.com/slicehaus/slicehaus-backend/pkg/enums"
)

type menuResponse struct {
	Pizzas     []catalog.Pizza            `json:"pizzas"`
	Toppings   []catalog.Topping          `json:"toppings"`
	Crusts     []catalog.Crust            `json:"crusts"`
	SizeLabels map[enums.PizzaSize]string `json:"size_labels"`
}

// Menu serves the full catalog in one payload. The catalog is immutable
// after startup, so no per-request work happens here beyond encoding.
func Menu(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, menuResponse{
			Pizzas:     cat.Pizzas(),
			Toppings:   cat.Toppings(),
			Crusts:     cat.Crusts(),
			SizeLabels: enums.SizeLabels,
		})
	}
}
