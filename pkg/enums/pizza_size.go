package enums

import "fmt"

// PizzaSize identifies one of the fixed pie sizes on the menu.
type PizzaSize string

const (
	PizzaSizeSmall  PizzaSize = "small"
	PizzaSizeMedium PizzaSize = "medium"
	PizzaSizeLarge  PizzaSize = "large"
	PizzaSizeXLarge PizzaSize = "xlarge"
)

var validPizzaSizes = []PizzaSize{
	PizzaSizeSmall,
	PizzaSizeMedium,
	PizzaSizeLarge,
	PizzaSizeXLarge,
}

// SizeLabels maps sizes to their customer-facing labels.
var SizeLabels = map[PizzaSize]string{
	PizzaSizeSmall:  `Small (10")`,
	PizzaSizeMedium: `Medium (12")`,
	PizzaSizeLarge:  `Large (14")`,
	PizzaSizeXLarge: `X-Large (16")`,
}

// String implements fmt.Stringer.
func (p PizzaSize) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PizzaSize.
func (p PizzaSize) IsValid() bool {
	for _, candidate := range validPizzaSizes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePizzaSize converts raw input into a PizzaSize.
func ParsePizzaSize(value string) (PizzaSize, error) {
	for _, candidate := range validPizzaSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pizza size %q", value)
}
