package pricing

import (
	"testing"

	"github.com/slicehaus/slicehaus-backend/internal/catalog"
	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

type stubMenu struct {
	toppings map[string]float64
	crusts   map[string]float64
}

func (s *stubMenu) ToppingByID(id string) (catalog.Topping, bool) {
	price, ok := s.toppings[id]
	if !ok {
		return catalog.Topping{}, false
	}
	return catalog.Topping{ID: id, Name: id, Price: price, Category: enums.ToppingCategoryMeat}, true
}

func (s *stubMenu) CrustByID(id string) (catalog.Crust, bool) {
	price, ok := s.crusts[id]
	if !ok {
		return catalog.Crust{}, false
	}
	return catalog.Crust{ID: id, Name: id, Price: price}, true
}

func newTestEngine() *Engine {
	return NewEngine(&stubMenu{
		toppings: map[string]float64{
			"mozzarella":   2.0,
			"tomato-sauce": 0,
			"basil":        1.0,
			"pepperoni":    2.0,
			"mushrooms":    1.5,
			"bacon":        2.25,
		},
		crusts: map[string]float64{
			"regular":       0,
			"stuffed-crust": 3.5,
		},
	})
}

func TestItemPriceDefaultsAreFree(t *testing.T) {
	engine := newTestEngine()
	defaults := []string{"mozzarella", "tomato-sauce", "basil"}

	quote := engine.ItemPrice(10.99, 1.0, defaults, defaults)
	if quote.UnitPrice != 10.99 {
		t.Fatalf("selecting exactly the defaults must cost base price; got %v", quote.UnitPrice)
	}
	if !quote.Clean() {
		t.Fatalf("expected clean quote, got %+v", quote)
	}
}

func TestItemPriceExtraToppingAdditivity(t *testing.T) {
	engine := newTestEngine()
	defaults := []string{"mozzarella", "tomato-sauce"}

	base := engine.ItemPrice(10, 1.0, defaults, defaults)
	withPepperoni := engine.ItemPrice(10, 1.0, append([]string{"pepperoni"}, defaults...), defaults)
	if diff := withPepperoni.UnitPrice - base.UnitPrice; diff != 2.0 {
		t.Fatalf("adding pepperoni should cost exactly 2.0, got %v", diff)
	}

	withBoth := engine.ItemPrice(10, 1.0, append([]string{"pepperoni", "mushrooms"}, defaults...), defaults)
	if diff := withBoth.UnitPrice - withPepperoni.UnitPrice; diff != 1.5 {
		t.Fatalf("adding mushrooms should cost exactly 1.5 independent of pepperoni, got %v", diff)
	}
}

func TestItemPriceAppliesSizeMultiplier(t *testing.T) {
	engine := newTestEngine()
	quote := engine.ItemPrice(10, 1.3, nil, nil)
	if quote.UnitPrice != 13 {
		t.Fatalf("expected 13, got %v", quote.UnitPrice)
	}
}

func TestItemPriceUnknownToppingIsZeroButReported(t *testing.T) {
	engine := newTestEngine()
	quote := engine.ItemPrice(10, 1.0, []string{"ghost-pepper"}, nil)
	if quote.UnitPrice != 10 {
		t.Fatalf("unknown topping must contribute zero, got %v", quote.UnitPrice)
	}
	if len(quote.MissingToppings) != 1 || quote.MissingToppings[0] != "ghost-pepper" {
		t.Fatalf("expected ghost-pepper reported missing, got %v", quote.MissingToppings)
	}
}

func TestCustomItemPriceHalfPairingEqualsFull(t *testing.T) {
	engine := newTestEngine()

	halves := engine.CustomItemPrice(10, 1.0, types.ToppingPlacements{
		{ToppingID: "pepperoni", Placement: enums.ToppingPlacementLeft},
		{ToppingID: "pepperoni", Placement: enums.ToppingPlacementRight},
	}, nil, "")
	full := engine.CustomItemPrice(10, 1.0, types.ToppingPlacements{
		{ToppingID: "pepperoni", Placement: enums.ToppingPlacementFull},
	}, nil, "")

	if halves.UnitPrice != full.UnitPrice {
		t.Fatalf("left+right must price as one full: %v vs %v", halves.UnitPrice, full.UnitPrice)
	}
	if full.UnitPrice != 12 {
		t.Fatalf("expected 12, got %v", full.UnitPrice)
	}
}

func TestCustomItemPriceLoneHalfIsHalfPrice(t *testing.T) {
	engine := newTestEngine()
	quote := engine.CustomItemPrice(10, 1.0, types.ToppingPlacements{
		{ToppingID: "mushrooms", Placement: enums.ToppingPlacementLeft},
	}, nil, "")
	if quote.UnitPrice != 10.75 {
		t.Fatalf("lone half of 1.5 topping should add 0.75, got %v", quote.UnitPrice)
	}
}

func TestCustomItemPriceThreeHalvesIsOneAndAHalf(t *testing.T) {
	engine := newTestEngine()
	quote := engine.CustomItemPrice(10, 1.0, types.ToppingPlacements{
		{ToppingID: "pepperoni", Placement: enums.ToppingPlacementLeft},
		{ToppingID: "pepperoni", Placement: enums.ToppingPlacementRight},
		{ToppingID: "pepperoni", Placement: enums.ToppingPlacementLeft},
	}, nil, "")
	if quote.UnitPrice != 13 {
		t.Fatalf("two paired halves plus one lone half should add 3.0, got %v", quote.UnitPrice)
	}
}

func TestCustomItemPriceDoubleFullBillsTwice(t *testing.T) {
	engine := newTestEngine()
	quote := engine.CustomItemPrice(10, 1.0, types.ToppingPlacements{
		{ToppingID: "bacon", Placement: enums.ToppingPlacementFull},
		{ToppingID: "bacon", Placement: enums.ToppingPlacementFull},
	}, nil, "")
	if quote.UnitPrice != 14.5 {
		t.Fatalf("double full bacon should add 4.5, got %v", quote.UnitPrice)
	}
}

func TestCustomItemPriceDefaultToppingFreeRegardlessOfPlacement(t *testing.T) {
	engine := newTestEngine()
	quote := engine.CustomItemPrice(10, 1.0, types.ToppingPlacements{
		{ToppingID: "mozzarella", Placement: enums.ToppingPlacementLeft},
		{ToppingID: "mozzarella", Placement: enums.ToppingPlacementFull},
	}, []string{"mozzarella"}, "")
	if quote.UnitPrice != 10 {
		t.Fatalf("default topping must never bill, got %v", quote.UnitPrice)
	}
}

func TestCustomItemPriceCrustSurcharge(t *testing.T) {
	engine := newTestEngine()

	quote := engine.CustomItemPrice(10, 1.0, nil, nil, "stuffed-crust")
	if quote.UnitPrice != 13.5 {
		t.Fatalf("expected stuffed crust surcharge, got %v", quote.UnitPrice)
	}

	unknown := engine.CustomItemPrice(10, 1.0, nil, nil, "cloud-crust")
	if unknown.UnitPrice != 10 {
		t.Fatalf("unknown crust must contribute zero, got %v", unknown.UnitPrice)
	}
	if unknown.MissingCrust != "cloud-crust" {
		t.Fatalf("expected missing crust reported, got %q", unknown.MissingCrust)
	}
}

func TestEngineAgainstRealCatalog(t *testing.T) {
	cat, err := catalog.Parse(menuFixture)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	engine := NewEngine(cat)

	pizza, _ := cat.PizzaByID("margherita")
	quote := engine.ItemPrice(pizza.BasePrice, 1.0, pizza.DefaultToppings, pizza.DefaultToppings)
	if quote.UnitPrice != pizza.BasePrice {
		t.Fatalf("defaults-only selection should cost base price, got %v", quote.UnitPrice)
	}
}

var menuFixture = []byte(`{
	"pizzas": [{
		"id": "margherita", "name": "Margherita", "category": "classic", "base_price": 10.99,
		"sizes": [{"size": "medium", "price_multiplier": 1.0}],
		"default_toppings": ["tomato-sauce", "mozzarella", "basil"]
	}],
	"toppings": [
		{"id": "tomato-sauce", "name": "Tomato Sauce", "price": 0, "category": "sauce"},
		{"id": "mozzarella", "name": "Mozzarella", "price": 2.0, "category": "cheese"},
		{"id": "basil", "name": "Fresh Basil", "price": 1.0, "category": "vegetable"}
	],
	"crusts": [{"id": "regular", "name": "Regular", "price": 0}]
}`)
