package cart

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/slicehaus/slicehaus-backend/internal/pricing"
	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

// Item is one cart line. Simple items carry the pizza's selected
// topping ids; customized items carry placement-aware toppings plus an
// optional crust and sauce choice and never merge with other lines.
type Item struct {
	ID               string                  `json:"id"`
	PizzaID          string                  `json:"pizza_id"`
	PizzaName        string                  `json:"pizza_name"`
	Size             enums.PizzaSize         `json:"size"`
	SelectedToppings []string                `json:"selected_toppings,omitempty"`
	Quantity         int                     `json:"quantity"`
	UnitPrice        float64                 `json:"unit_price"`
	IsCustom         bool                    `json:"is_custom"`
	CustomToppings   types.ToppingPlacements `json:"custom_toppings,omitempty"`
	CustomCrust      string                  `json:"custom_crust,omitempty"`
	CustomSauce      string                  `json:"custom_sauce,omitempty"`
}

// Cart is the aggregate root for one shopper. Totals are derived state:
// every mutation rebuilds them from the full item list so they can
// never drift from the lines they summarize.
type Cart struct {
	Items       []Item  `json:"items"`
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
	ItemCount   int     `json:"item_count"`
}

// Empty returns a zero cart with a non-nil item slice so it serializes
// as [] instead of null.
func Empty() Cart {
	return Cart{Items: []Item{}}
}

func newItemID() string {
	return uuid.NewString()
}

// mergeKey identifies lines that are the same purchasable thing.
// Topping order is irrelevant, so the key sorts a copy.
func mergeKey(pizzaID string, size enums.PizzaSize, toppings []string) string {
	sorted := make([]string, len(toppings))
	copy(sorted, toppings)
	sort.Strings(sorted)
	return pizzaID + "|" + string(size) + "|" + strings.Join(sorted, ",")
}

// add merges into an existing simple line when one matches, otherwise
// appends. Customized items always get their own line.
func (c *Cart) add(item Item) {
	if !item.IsCustom {
		key := mergeKey(item.PizzaID, item.Size, item.SelectedToppings)
		for i := range c.Items {
			existing := &c.Items[i]
			if existing.IsCustom {
				continue
			}
			if mergeKey(existing.PizzaID, existing.Size, existing.SelectedToppings) == key {
				existing.Quantity += item.Quantity
				existing.UnitPrice = item.UnitPrice
				return
			}
		}
	}
	c.Items = append(c.Items, item)
}

// updateQuantity sets a line's quantity, removing the line when the new
// quantity is zero or negative. Reports whether the line existed.
func (c *Cart) updateQuantity(itemID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		return true
	}
	return false
}

// remove deletes a line. Reports whether the line existed.
func (c *Cart) remove(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// recompute rebuilds every derived field from the item list.
func (c *Cart) recompute(rates pricing.Rates) {
	if c.Items == nil {
		c.Items = []Item{}
	}

	lines := make([]pricing.Line, 0, len(c.Items))
	count := 0
	for _, item := range c.Items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
		count += item.Quantity
	}

	totals := pricing.Aggregate(lines, rates)
	c.Subtotal = totals.Subtotal
	c.Tax = totals.Tax
	c.DeliveryFee = totals.DeliveryFee
	c.Total = totals.Total
	c.ItemCount = count
}
