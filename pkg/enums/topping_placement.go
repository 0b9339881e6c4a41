package enums

import "fmt"

// ToppingPlacement says which half of a customized pie a topping covers.
type ToppingPlacement string

const (
	ToppingPlacementFull  ToppingPlacement = "full"
	ToppingPlacementLeft  ToppingPlacement = "left"
	ToppingPlacementRight ToppingPlacement = "right"
)

var validToppingPlacements = []ToppingPlacement{
	ToppingPlacementFull,
	ToppingPlacementLeft,
	ToppingPlacementRight,
}

// String implements fmt.Stringer.
func (p ToppingPlacement) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ToppingPlacement.
func (p ToppingPlacement) IsValid() bool {
	for _, candidate := range validToppingPlacements {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsHalf reports whether the placement covers a single half.
func (p ToppingPlacement) IsHalf() bool {
	return p == ToppingPlacementLeft || p == ToppingPlacementRight
}

// ParseToppingPlacement converts raw input into a ToppingPlacement.
func ParseToppingPlacement(value string) (ToppingPlacement, error) {
	for _, candidate := range validToppingPlacements {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid topping placement %q", value)
}
