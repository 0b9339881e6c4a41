package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/slicehaus/slicehaus-backend/pkg/enums"
)

func TestLoadEmbeddedMenu(t *testing.T) {
	cat, err := Load(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	pizza, ok := cat.PizzaByID("margherita")
	if !ok {
		t.Fatal("expected margherita in default menu")
	}
	if pizza.BasePrice <= 0 {
		t.Fatalf("expected positive base price, got %v", pizza.BasePrice)
	}
	if !pizza.HasDefaultTopping("mozzarella") {
		t.Fatal("expected mozzarella as margherita default")
	}

	option, ok := pizza.SizeOption(enums.PizzaSizeMedium)
	if !ok {
		t.Fatal("expected medium size for margherita")
	}
	if option.PriceMultiplier != 1.0 {
		t.Fatalf("expected medium multiplier 1.0, got %v", option.PriceMultiplier)
	}

	if _, ok := pizza.SizeOption("family"); ok {
		t.Fatal("unknown size should not resolve")
	}

	crust, ok := cat.CrustByID(DefaultCrustID)
	if !ok {
		t.Fatal("expected regular crust")
	}
	if crust.Price != 0 {
		t.Fatalf("regular crust must be free, got %v", crust.Price)
	}

	if got := len(cat.Pizzas()); got == 0 {
		t.Fatal("expected pizzas listed")
	}
	if got := len(cat.Toppings()); got == 0 {
		t.Fatal("expected toppings listed")
	}
	if got := len(cat.Crusts()); got == 0 {
		t.Fatal("expected crusts listed")
	}
}

func TestParseRejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "not json",
			doc:     "{",
			wantErr: "decoding menu document",
		},
		{
			name:    "no pizzas",
			doc:     `{"pizzas":[],"toppings":[],"crusts":[]}`,
			wantErr: "no pizzas",
		},
		{
			name: "negative topping price",
			doc: `{"pizzas":[{"id":"p","name":"P","category":"classic","base_price":10,"sizes":[{"size":"medium","price_multiplier":1}]}],
				"toppings":[{"id":"bad","name":"Bad","price":-1,"category":"meat"}],"crusts":[]}`,
			wantErr: "topping",
		},
		{
			name: "invalid topping category",
			doc: `{"pizzas":[{"id":"p","name":"P","category":"classic","base_price":10,"sizes":[{"size":"medium","price_multiplier":1}]}],
				"toppings":[{"id":"bad","name":"Bad","price":1,"category":"mystery"}],"crusts":[]}`,
			wantErr: "invalid category",
		},
		{
			name: "zero base price",
			doc: `{"pizzas":[{"id":"p","name":"P","category":"classic","base_price":0,"sizes":[{"size":"medium","price_multiplier":1}]}],
				"toppings":[],"crusts":[]}`,
			wantErr: "pizza",
		},
		{
			name: "invalid size",
			doc: `{"pizzas":[{"id":"p","name":"P","category":"classic","base_price":10,"sizes":[{"size":"giant","price_multiplier":1}]}],
				"toppings":[],"crusts":[]}`,
			wantErr: "invalid size",
		},
		{
			name: "unknown default topping",
			doc: `{"pizzas":[{"id":"p","name":"P","category":"classic","base_price":10,"sizes":[{"size":"medium","price_multiplier":1}],"default_toppings":["ghost"]}],
				"toppings":[],"crusts":[]}`,
			wantErr: "unknown default topping",
		},
		{
			name: "duplicate pizza id",
			doc: `{"pizzas":[
				{"id":"p","name":"P","category":"classic","base_price":10,"sizes":[{"size":"medium","price_multiplier":1}]},
				{"id":"p","name":"P2","category":"classic","base_price":11,"sizes":[{"size":"medium","price_multiplier":1}]}],
				"toppings":[],"crusts":[]}`,
			wantErr: "duplicate pizza id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(context.Background(), "/nonexistent/menu.json", nil); err == nil {
		t.Fatal("expected error for missing menu file")
	}
}
