package cart

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/slicehaus/slicehaus-backend/internal/catalog"
	"github.com/slicehaus/slicehaus-backend/internal/pricing"
	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/slicehaus/slicehaus-backend/pkg/errors"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
	"github.com/slicehaus/slicehaus-backend/pkg/observe"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

// AddItemInput adds a menu pizza with a plain topping selection.
type AddItemInput struct {
	PizzaID          string          `json:"pizza_id" validate:"required"`
	Size             enums.PizzaSize `json:"size" validate:"required"`
	SelectedToppings []string        `json:"selected_toppings"`
	Quantity         int             `json:"quantity" validate:"required,gt=0"`
}

// AddCustomItemInput adds a customized pie built from a base pizza:
// placement-aware toppings plus optional crust and sauce choices.
type AddCustomItemInput struct {
	PizzaID  string                  `json:"pizza_id" validate:"required"`
	Size     enums.PizzaSize         `json:"size" validate:"required"`
	Toppings types.ToppingPlacements `json:"toppings"`
	Crust    string                  `json:"crust"`
	Sauce    string                  `json:"sauce"`
	Quantity int                     `json:"quantity" validate:"required,gt=0"`
}

const lockStripes = 256

// Service owns the command cycle for carts: hydrate the blob, apply one
// command, recompute totals, persist. Commands for the same owner are
// serialized so concurrent tabs cannot interleave a read-modify-write.
// The lock set is a fixed stripe array rather than a per-owner map:
// anonymous sessions mint a fresh owner id on first contact, so a map
// keyed by owner would grow without bound.
type Service struct {
	store   *Store
	menu    *catalog.Catalog
	engine  *pricing.Engine
	rates   pricing.Rates
	monitor *observe.Monitor
	logg    *logger.Logger

	locks [lockStripes]sync.Mutex
}

func NewService(store *Store, menu *catalog.Catalog, engine *pricing.Engine, rates pricing.Rates, monitor *observe.Monitor, logg *logger.Logger) *Service {
	return &Service{
		store:   store,
		menu:    menu,
		engine:  engine,
		rates:   rates,
		monitor: monitor,
		logg:    logg,
	}
}

func (s *Service) ownerLock(ownerID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(ownerID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Get returns the owner's current cart.
func (s *Service) Get(ctx context.Context, ownerID string) Cart {
	c := s.store.Load(ctx, ownerID)
	c.recompute(s.rates)
	return c
}

// AddItem resolves the pizza, prices the line, and merges it into the
// cart. An unresolvable pizza or size leaves the cart untouched and is
// logged rather than failed, mirroring the storefront's behavior.
func (s *Service) AddItem(ctx context.Context, ownerID string, in AddItemInput) (Cart, error) {
	pizza, ok := s.menu.PizzaByID(in.PizzaID)
	if !ok {
		s.logSkipped(ctx, ownerID, "cart.add.unknown_pizza", in.PizzaID)
		return s.Get(ctx, ownerID), nil
	}
	option, ok := pizza.SizeOption(in.Size)
	if !ok {
		s.logSkipped(ctx, ownerID, "cart.add.unknown_size", in.PizzaID)
		return s.Get(ctx, ownerID), nil
	}

	var quote pricing.Quote
	_ = s.monitor.Track(ctx, "cart.price_item", observe.ThresholdCalculation, func() error {
		quote = s.engine.ItemPrice(pizza.BasePrice, option.PriceMultiplier, in.SelectedToppings, pizza.DefaultToppings)
		return nil
	})
	s.warnMissing(ctx, ownerID, quote)

	item := Item{
		ID:               newItemID(),
		PizzaID:          pizza.ID,
		PizzaName:        pizza.Name,
		Size:             in.Size,
		SelectedToppings: in.SelectedToppings,
		Quantity:         in.Quantity,
		UnitPrice:        quote.UnitPrice,
	}
	return s.apply(ctx, ownerID, func(c *Cart) error {
		c.add(item)
		return nil
	})
}

// AddCustomItem prices a placement-aware customized pie and appends it
// as its own line. Customized items never merge.
func (s *Service) AddCustomItem(ctx context.Context, ownerID string, in AddCustomItemInput) (Cart, error) {
	pizza, ok := s.menu.PizzaByID(in.PizzaID)
	if !ok {
		s.logSkipped(ctx, ownerID, "cart.add.unknown_pizza", in.PizzaID)
		return s.Get(ctx, ownerID), nil
	}
	option, ok := pizza.SizeOption(in.Size)
	if !ok {
		s.logSkipped(ctx, ownerID, "cart.add.unknown_size", in.PizzaID)
		return s.Get(ctx, ownerID), nil
	}

	crustID := in.Crust
	if crustID == "" {
		crustID = catalog.DefaultCrustID
	}

	var quote pricing.Quote
	_ = s.monitor.Track(ctx, "cart.price_custom_item", observe.ThresholdCalculation, func() error {
		quote = s.engine.CustomItemPrice(pizza.BasePrice, option.PriceMultiplier, in.Toppings, pizza.DefaultToppings, crustID)
		return nil
	})
	s.warnMissing(ctx, ownerID, quote)

	item := Item{
		ID:             newItemID(),
		PizzaID:        pizza.ID,
		PizzaName:      pizza.Name,
		Size:           in.Size,
		Quantity:       in.Quantity,
		UnitPrice:      quote.UnitPrice,
		IsCustom:       true,
		CustomToppings: in.Toppings,
		CustomCrust:    crustID,
		CustomSauce:    in.Sauce,
	}
	return s.apply(ctx, ownerID, func(c *Cart) error {
		c.add(item)
		return nil
	})
}

// UpdateQuantity sets a line's quantity; zero or negative removes it.
func (s *Service) UpdateQuantity(ctx context.Context, ownerID, itemID string, quantity int) (Cart, error) {
	return s.apply(ctx, ownerID, func(c *Cart) error {
		if !c.updateQuantity(itemID, quantity) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "cart item %s not found", itemID)
		}
		return nil
	})
}

// RemoveItem deletes a line.
func (s *Service) RemoveItem(ctx context.Context, ownerID, itemID string) (Cart, error) {
	return s.apply(ctx, ownerID, func(c *Cart) error {
		if !c.remove(itemID) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "cart item %s not found", itemID)
		}
		return nil
	})
}

// Clear empties the cart and drops the blob.
func (s *Service) Clear(ctx context.Context, ownerID string) (Cart, error) {
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Delete(ctx, ownerID); err != nil {
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return Empty(), nil
}

func (s *Service) apply(ctx context.Context, ownerID string, command func(*Cart) error) (Cart, error) {
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	c := s.store.Load(ctx, ownerID)
	if err := command(&c); err != nil {
		return c, err
	}
	c.recompute(s.rates)

	if err := s.store.Save(ctx, ownerID, c); err != nil {
		return c, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return c, nil
}

func (s *Service) logSkipped(ctx context.Context, ownerID, msg, pizzaID string) {
	s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
		"cartId":  ownerID,
		"pizzaId": pizzaID,
	}), msg)
}

func (s *Service) warnMissing(ctx context.Context, ownerID string, quote pricing.Quote) {
	if quote.Clean() {
		return
	}
	s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
		"cartId":          ownerID,
		"missingToppings": quote.MissingToppings,
		"missingCrust":    quote.MissingCrust,
	}), "cart.price.unresolved_refs")
}
