package pricing

import (
	"github.com/slicehaus/slicehaus-backend/internal/catalog"
	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

// Lookup is the slice of the menu catalog the engine prices against.
type Lookup interface {
	ToppingByID(id string) (catalog.Topping, bool)
	CrustByID(id string) (catalog.Crust, bool)
}

// Quote is a computed unit price plus diagnostics for references that
// did not resolve. Unknown ids contribute zero to the price but are
// surfaced here so callers can log them instead of masking catalog bugs.
type Quote struct {
	UnitPrice       float64
	MissingToppings []string
	MissingCrust    string
}

// Clean reports whether every reference resolved.
func (q Quote) Clean() bool {
	return len(q.MissingToppings) == 0 && q.MissingCrust == ""
}

// Engine computes unit prices for cart line items. All methods are
// pure: no side effects, no rounding (full float precision is kept
// until aggregation).
type Engine struct {
	menu Lookup
}

func NewEngine(menu Lookup) *Engine {
	return &Engine{menu: menu}
}

// ItemPrice prices a flat-topping-list item:
// basePrice*multiplier plus the price of every selected topping that is
// not already included with the pizza. Default toppings never add cost
// even when explicitly selected.
func (e *Engine) ItemPrice(basePrice, multiplier float64, selected, defaults []string) Quote {
	quote := Quote{UnitPrice: basePrice * multiplier}

	defaultSet := toSet(defaults)
	for _, toppingID := range selected {
		if _, isDefault := defaultSet[toppingID]; isDefault {
			continue
		}
		topping, ok := e.menu.ToppingByID(toppingID)
		if !ok {
			quote.MissingToppings = append(quote.MissingToppings, toppingID)
			continue
		}
		quote.UnitPrice += topping.Price
	}

	return quote
}

// CustomItemPrice prices a placement-aware customized item. Per
// non-default topping id: each full placement bills the full price, two
// half placements pair up into one full price, and an unpaired half
// bills half price. Default toppings are free regardless of placement.
// The crust surcharge applies when the crust id resolves.
func (e *Engine) CustomItemPrice(basePrice, multiplier float64, placements types.ToppingPlacements, defaults []string, crustID string) Quote {
	quote := Quote{UnitPrice: basePrice * multiplier}

	defaultSet := toSet(defaults)

	type counts struct {
		full int
		half int
	}
	byTopping := make(map[string]*counts)
	var order []string

	for _, placement := range placements {
		if _, isDefault := defaultSet[placement.ToppingID]; isDefault {
			continue
		}
		entry, ok := byTopping[placement.ToppingID]
		if !ok {
			entry = &counts{}
			byTopping[placement.ToppingID] = entry
			order = append(order, placement.ToppingID)
		}
		if placement.Placement == enums.ToppingPlacementFull {
			entry.full++
		} else {
			entry.half++
		}
	}

	for _, toppingID := range order {
		topping, ok := e.menu.ToppingByID(toppingID)
		if !ok {
			quote.MissingToppings = append(quote.MissingToppings, toppingID)
			continue
		}
		entry := byTopping[toppingID]
		quote.UnitPrice += float64(entry.full) * topping.Price
		quote.UnitPrice += float64(entry.half/2) * topping.Price
		quote.UnitPrice += float64(entry.half%2) * topping.Price / 2
	}

	if crustID != "" {
		if crust, ok := e.menu.CrustByID(crustID); ok {
			quote.UnitPrice += crust.Price
		} else {
			quote.MissingCrust = crustID
		}
	}

	return quote
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
