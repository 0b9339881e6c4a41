package enums

import "fmt"

// ToppingCategory groups menu toppings for display and sauce filtering.
type ToppingCategory string

const (
	ToppingCategoryMeat      ToppingCategory = "meat"
	ToppingCategoryVegetable ToppingCategory = "vegetable"
	ToppingCategoryCheese    ToppingCategory = "cheese"
	ToppingCategorySauce     ToppingCategory = "sauce"
)

var validToppingCategories = []ToppingCategory{
	ToppingCategoryMeat,
	ToppingCategoryVegetable,
	ToppingCategoryCheese,
	ToppingCategorySauce,
}

// String implements fmt.Stringer.
func (c ToppingCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ToppingCategory.
func (c ToppingCategory) IsValid() bool {
	for _, candidate := range validToppingCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseToppingCategory converts raw input into a ToppingCategory.
func ParseToppingCategory(value string) (ToppingCategory, error) {
	for _, candidate := range validToppingCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid topping category %q", value)
}
