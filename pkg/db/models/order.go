package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

// Order is the immutable checkout snapshot. Totals are always
// server-derived; client-submitted amounts never reach this row. Money
// columns are stored as exact decimals; conversion from the pricing
// engine's floats happens once, after the totals are rounded.
type Order struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber  string             `gorm:"column:order_number;type:text;not null;uniqueIndex"`
	UserID       *uuid.UUID         `gorm:"column:user_id;type:uuid;index"`
	CustomerInfo types.CustomerInfo `gorm:"column:customer_info;type:jsonb;serializer:json"`
	Subtotal     decimal.Decimal    `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Tax          decimal.Decimal    `gorm:"column:tax;type:numeric(12,2);not null"`
	DeliveryFee  decimal.Decimal    `gorm:"column:delivery_fee;type:numeric(12,2);not null"`
	Total        decimal.Decimal    `gorm:"column:total;type:numeric(12,2);not null"`
	Status       enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'pending'"`
	Items        []OrderLineItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
