package enums

import "fmt"

// PizzaCategory buckets menu pizzas for browsing.
type PizzaCategory string

const (
	PizzaCategoryClassic    PizzaCategory = "classic"
	PizzaCategorySpecialty  PizzaCategory = "specialty"
	PizzaCategoryVegetarian PizzaCategory = "vegetarian"
	PizzaCategoryPremium    PizzaCategory = "premium"
)

var validPizzaCategories = []PizzaCategory{
	PizzaCategoryClassic,
	PizzaCategorySpecialty,
	PizzaCategoryVegetarian,
	PizzaCategoryPremium,
}

// String implements fmt.Stringer.
func (c PizzaCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known PizzaCategory.
func (c PizzaCategory) IsValid() bool {
	for _, candidate := range validPizzaCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParsePizzaCategory converts raw input into a PizzaCategory.
func ParsePizzaCategory(value string) (PizzaCategory, error) {
	for _, candidate := range validPizzaCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pizza category %q", value)
}
