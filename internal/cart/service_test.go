package cart

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/slicehaus/slicehaus-backend/internal/catalog"
	"github.com/slicehaus/slicehaus-backend/internal/pricing"
	pkgerrors "github.com/slicehaus/slicehaus-backend/pkg/errors"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
	"github.com/slicehaus/slicehaus-backend/pkg/redis"
)

const menuJSON = `{
	"pizzas": [
		{
			"id": "margherita", "name": "Margherita", "category": "classic", "base_price": 10,
			"sizes": [
				{"size": "medium", "price_multiplier": 1.0},
				{"size": "large", "price_multiplier": 1.3}
			],
			"default_toppings": ["tomato-sauce", "mozzarella"]
		}
	],
	"toppings": [
		{"id": "tomato-sauce", "name": "Tomato Sauce", "price": 0, "category": "sauce"},
		{"id": "mozzarella", "name": "Mozzarella", "price": 2.0, "category": "cheese"},
		{"id": "pepperoni", "name": "Pepperoni", "price": 2.0, "category": "meat"},
		{"id": "mushrooms", "name": "Mushrooms", "price": 1.5, "category": "vegetable"}
	],
	"crusts": [
		{"id": "regular", "name": "Regular", "price": 0},
		{"id": "stuffed-crust", "name": "Stuffed Crust", "price": 3.5}
	]
}`

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	rdb := redis.NewFromRedis(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))

	cat, err := catalog.Parse([]byte(menuJSON))
	if err != nil {
		t.Fatalf("parse menu: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	store := NewStore(rdb, 0, logg)
	return NewService(store, cat, pricing.NewEngine(cat), pricing.DefaultRates(), nil, logg), srv
}

func TestServiceAddItemPersistsAndPrices(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	got, err := svc.AddItem(ctx, "owner-1", AddItemInput{
		PizzaID:          "margherita",
		Size:             "medium",
		SelectedToppings: []string{"tomato-sauce", "mozzarella"},
		Quantity:         1,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(got.Items))
	}
	if got.Items[0].UnitPrice != 10 {
		t.Fatalf("defaults-only selection should cost base price, got %v", got.Items[0].UnitPrice)
	}
	if got.Subtotal != 10.00 || got.Tax != 0.80 || got.DeliveryFee != 4.99 || got.Total != 15.79 {
		t.Fatalf("unexpected totals: %+v", got)
	}

	reloaded := svc.Get(ctx, "owner-1")
	if len(reloaded.Items) != 1 || reloaded.Total != 15.79 {
		t.Fatalf("cart must survive a reload: %+v", reloaded)
	}
}

func TestServiceAddItemMergesRepeatAdds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := AddItemInput{PizzaID: "margherita", Size: "medium", SelectedToppings: []string{"pepperoni"}, Quantity: 1}
	if _, err := svc.AddItem(ctx, "owner-1", in); err != nil {
		t.Fatalf("first add: %v", err)
	}
	got, err := svc.AddItem(ctx, "owner-1", in)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("repeat add must merge: %+v", got.Items)
	}
}

func TestServiceAddItemUnknownPizzaIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	got, err := svc.AddItem(ctx, "owner-1", AddItemInput{PizzaID: "calzone", Size: "medium", Quantity: 1})
	if err != nil {
		t.Fatalf("unknown pizza must not error: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("cart must stay empty: %+v", got.Items)
	}

	got, err = svc.AddItem(ctx, "owner-1", AddItemInput{PizzaID: "margherita", Size: "xlarge", Quantity: 1})
	if err != nil {
		t.Fatalf("unknown size must not error: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("cart must stay empty: %+v", got.Items)
	}
}

func TestServiceAddCustomItemAlwaysNewLine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	custom := AddCustomItemInput{
		PizzaID:  "margherita",
		Size:     "medium",
		Crust:    "stuffed-crust",
		Quantity: 1,
	}
	if _, err := svc.AddCustomItem(ctx, "owner-1", custom); err != nil {
		t.Fatalf("first custom add: %v", err)
	}
	got, err := svc.AddCustomItem(ctx, "owner-1", custom)
	if err != nil {
		t.Fatalf("second custom add: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("customized pies must never merge: %d lines", len(got.Items))
	}
	if got.Items[0].UnitPrice != 13.5 {
		t.Fatalf("stuffed crust surcharge missing: %v", got.Items[0].UnitPrice)
	}
	if !got.Items[0].IsCustom || got.Items[0].CustomCrust != "stuffed-crust" {
		t.Fatalf("custom metadata lost: %+v", got.Items[0])
	}
}

func TestServiceUpdateAndRemove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddItem(ctx, "owner-1", AddItemInput{PizzaID: "margherita", Size: "medium", Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := added.Items[0].ID

	got, err := svc.UpdateQuantity(ctx, "owner-1", itemID, 3)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Items[0].Quantity != 3 || got.ItemCount != 3 {
		t.Fatalf("quantity update not reflected: %+v", got)
	}

	got, err = svc.UpdateQuantity(ctx, "owner-1", itemID, 0)
	if err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("zero quantity must remove the line: %+v", got.Items)
	}

	_, err = svc.RemoveItem(ctx, "owner-1", itemID)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("removing a gone line must be NOT_FOUND, got %v", err)
	}
}

func TestServiceClearDropsBlob(t *testing.T) {
	svc, srv := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "owner-1", AddItemInput{PizzaID: "margherita", Size: "medium", Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := svc.Clear(ctx, "owner-1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(got.Items) != 0 || got.Total != 0 {
		t.Fatalf("cleared cart must be empty: %+v", got)
	}
	if srv.Exists("sh:cart:owner-1") {
		t.Fatal("cart blob must be deleted from redis")
	}
}

func TestStoreDegradesToEmptyCart(t *testing.T) {
	svc, srv := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "owner-1", AddItemInput{PizzaID: "margherita", Size: "medium", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Corrupt blob degrades to empty.
	srv.Set("sh:cart:owner-1", "{not json")
	got := svc.Get(ctx, "owner-1")
	if len(got.Items) != 0 {
		t.Fatalf("corrupt blob must degrade to empty cart: %+v", got.Items)
	}

	// Unreachable redis degrades to empty.
	srv.Close()
	got = svc.Get(ctx, "owner-1")
	if len(got.Items) != 0 {
		t.Fatalf("unreachable redis must degrade to empty cart: %+v", got.Items)
	}
}

func TestServiceConcurrentAddsSerialize(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const workers = 8
	in := AddItemInput{PizzaID: "margherita", Size: "medium", SelectedToppings: []string{"pepperoni"}, Quantity: 1}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, "owner-1", in); err != nil {
				t.Errorf("add item: %v", err)
			}
		}()
	}
	wg.Wait()

	got := svc.Get(ctx, "owner-1")
	if len(got.Items) != 1 || got.Items[0].Quantity != workers {
		t.Fatalf("concurrent adds must serialize into one line of %d, got %+v", workers, got.Items)
	}
}
