package types

import "github.com/slicehaus/slicehaus-backend/pkg/enums"

// ToppingWithPlacement is one topping instance on a customized pie.
// Duplicates are meaningful: two full placements of the same topping
// bill as a double serving.
type ToppingWithPlacement struct {
	ToppingID string                 `json:"topping_id"`
	Placement enums.ToppingPlacement `json:"placement"`
}

// ToppingPlacements is the full customization list for one line item.
type ToppingPlacements []ToppingWithPlacement
