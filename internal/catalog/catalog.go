package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
)

// DefaultCrustID is the implicit zero-surcharge crust applied when a
// customized pie picks nothing else.
const DefaultCrustID = "regular"

//go:embed menu.json
var defaultMenu []byte

// Topping is immutable menu reference data.
type Topping struct {
	ID       string                `json:"id" validate:"required"`
	Name     string                `json:"name" validate:"required"`
	Price    float64               `json:"price" validate:"gte=0"`
	Category enums.ToppingCategory `json:"category" validate:"required"`
}

// Crust is immutable menu reference data.
type Crust struct {
	ID    string  `json:"id" validate:"required"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

// SizeOption is one orderable size of a pizza.
type SizeOption struct {
	Size            enums.PizzaSize `json:"size" validate:"required"`
	PriceMultiplier float64         `json:"price_multiplier" validate:"gt=0"`
}

// Pizza is immutable menu reference data. DefaultToppings are included
// in BasePrice and never billed as extras.
type Pizza struct {
	ID              string              `json:"id" validate:"required"`
	Name            string              `json:"name" validate:"required"`
	Description     string              `json:"description"`
	Category        enums.PizzaCategory `json:"category" validate:"required"`
	BasePrice       float64             `json:"base_price" validate:"gt=0"`
	Sizes           []SizeOption        `json:"sizes" validate:"required,min=1,dive"`
	DefaultToppings []string            `json:"default_toppings"`
}

// SizeOption returns the config for a size, or false when the pizza is
// not sold in that size.
func (p Pizza) SizeOption(size enums.PizzaSize) (SizeOption, bool) {
	for _, option := range p.Sizes {
		if option.Size == size {
			return option, true
		}
	}
	return SizeOption{}, false
}

// HasDefaultTopping reports whether the topping ships with the pizza.
func (p Pizza) HasDefaultTopping(toppingID string) bool {
	for _, id := range p.DefaultToppings {
		if id == toppingID {
			return true
		}
	}
	return false
}

type menuDocument struct {
	Pizzas   []Pizza   `json:"pizzas"`
	Toppings []Topping `json:"toppings"`
	Crusts   []Crust   `json:"crusts"`
}

// Catalog is the validated, read-only menu loaded once at startup.
type Catalog struct {
	pizzas       map[string]Pizza
	pizzaOrder   []string
	toppings     map[string]Topping
	toppingOrder []string
	crusts       map[string]Crust
	crustOrder   []string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Load reads the menu document from path, or the compiled-in default
// menu when path is empty.
func Load(ctx context.Context, path string, logg *logger.Logger) (*Catalog, error) {
	raw := defaultMenu
	source := "embedded"
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading menu file: %w", err)
		}
		raw = data
		source = path
	}

	cat, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"source":   source,
			"pizzas":   len(cat.pizzaOrder),
			"toppings": len(cat.toppingOrder),
			"crusts":   len(cat.crustOrder),
		})
		logg.Info(ctx, "menu catalog loaded")
	}
	return cat, nil
}

// Parse decodes and validates a menu document. Malformed entries are
// rejected here so lookups never have to defend against them.
func Parse(raw []byte) (*Catalog, error) {
	var doc menuDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding menu document: %w", err)
	}
	if len(doc.Pizzas) == 0 {
		return nil, fmt.Errorf("menu document has no pizzas")
	}

	cat := &Catalog{
		pizzas:   make(map[string]Pizza, len(doc.Pizzas)),
		toppings: make(map[string]Topping, len(doc.Toppings)),
		crusts:   make(map[string]Crust, len(doc.Crusts)),
	}

	for _, topping := range doc.Toppings {
		if err := validate.Struct(topping); err != nil {
			return nil, fmt.Errorf("topping %q: %w", topping.ID, err)
		}
		if !topping.Category.IsValid() {
			return nil, fmt.Errorf("topping %q: invalid category %q", topping.ID, topping.Category)
		}
		if _, exists := cat.toppings[topping.ID]; exists {
			return nil, fmt.Errorf("duplicate topping id %q", topping.ID)
		}
		cat.toppings[topping.ID] = topping
		cat.toppingOrder = append(cat.toppingOrder, topping.ID)
	}

	for _, crust := range doc.Crusts {
		if err := validate.Struct(crust); err != nil {
			return nil, fmt.Errorf("crust %q: %w", crust.ID, err)
		}
		if _, exists := cat.crusts[crust.ID]; exists {
			return nil, fmt.Errorf("duplicate crust id %q", crust.ID)
		}
		cat.crusts[crust.ID] = crust
		cat.crustOrder = append(cat.crustOrder, crust.ID)
	}

	for _, pizza := range doc.Pizzas {
		if err := validate.Struct(pizza); err != nil {
			return nil, fmt.Errorf("pizza %q: %w", pizza.ID, err)
		}
		if !pizza.Category.IsValid() {
			return nil, fmt.Errorf("pizza %q: invalid category %q", pizza.ID, pizza.Category)
		}
		seen := make(map[enums.PizzaSize]struct{}, len(pizza.Sizes))
		for _, option := range pizza.Sizes {
			if !option.Size.IsValid() {
				return nil, fmt.Errorf("pizza %q: invalid size %q", pizza.ID, option.Size)
			}
			if _, dup := seen[option.Size]; dup {
				return nil, fmt.Errorf("pizza %q: duplicate size %q", pizza.ID, option.Size)
			}
			seen[option.Size] = struct{}{}
		}
		for _, toppingID := range pizza.DefaultToppings {
			if _, ok := cat.toppings[toppingID]; !ok {
				return nil, fmt.Errorf("pizza %q: unknown default topping %q", pizza.ID, toppingID)
			}
		}
		if _, exists := cat.pizzas[pizza.ID]; exists {
			return nil, fmt.Errorf("duplicate pizza id %q", pizza.ID)
		}
		cat.pizzas[pizza.ID] = pizza
		cat.pizzaOrder = append(cat.pizzaOrder, pizza.ID)
	}

	return cat, nil
}

// PizzaByID looks up a pizza.
func (c *Catalog) PizzaByID(id string) (Pizza, bool) {
	pizza, ok := c.pizzas[id]
	return pizza, ok
}

// ToppingByID looks up a topping.
func (c *Catalog) ToppingByID(id string) (Topping, bool) {
	topping, ok := c.toppings[id]
	return topping, ok
}

// CrustByID looks up a crust.
func (c *Catalog) CrustByID(id string) (Crust, bool) {
	crust, ok := c.crusts[id]
	return crust, ok
}

// Pizzas returns every pizza in menu order.
func (c *Catalog) Pizzas() []Pizza {
	out := make([]Pizza, 0, len(c.pizzaOrder))
	for _, id := range c.pizzaOrder {
		out = append(out, c.pizzas[id])
	}
	return out
}

// Toppings returns every topping in menu order.
func (c *Catalog) Toppings() []Topping {
	out := make([]Topping, 0, len(c.toppingOrder))
	for _, id := range c.toppingOrder {
		out = append(out, c.toppings[id])
	}
	return out
}

// Crusts returns every crust in menu order.
func (c *Catalog) Crusts() []Crust {
	out := make([]Crust, 0, len(c.crustOrder))
	for _, id := range c.crustOrder {
		out = append(out, c.crusts[id])
	}
	return out
}
