package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

// OrderLineItem snapshots one priced cart line at checkout time.
// UnitPrice covers a single pie including topping and crust surcharges;
// it is recomputed from the catalog, never copied from the client.
// Four fractional digits cover sub-cent precision from size multipliers
// and half-topping pricing.
type OrderLineItem struct {
	ID               uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	OrderID          uuid.UUID               `gorm:"column:order_id;type:uuid;not null;index"`
	PizzaID          string                  `gorm:"column:pizza_id;type:text;not null"`
	PizzaName        string                  `gorm:"column:pizza_name;type:text;not null"`
	Size             enums.PizzaSize         `gorm:"column:size;type:text;not null"`
	BasePrice        decimal.Decimal         `gorm:"column:base_price;type:numeric(12,4);not null"`
	SelectedToppings []string                `gorm:"column:selected_toppings;type:jsonb;serializer:json"`
	Quantity         int                     `gorm:"column:quantity;not null"`
	UnitPrice        decimal.Decimal         `gorm:"column:unit_price;type:numeric(12,4);not null"`
	IsCustom         bool                    `gorm:"column:is_custom;not null;default:false"`
	CustomToppings   types.ToppingPlacements `gorm:"column:custom_toppings;type:jsonb;serializer:json"`
	CustomCrust      *string                 `gorm:"column:custom_crust;type:text"`
	CustomSauce      *string                 `gorm:"column:custom_sauce;type:text"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
}
