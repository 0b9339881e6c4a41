package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/slicehaus/slicehaus-backend/pkg/db/models"
	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

// CustomerInfoInput is the raw delivery contact submitted at checkout,
// validated and sanitized before it becomes types.CustomerInfo.
type CustomerInfoInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	City                 string `json:"city"`
	ZipCode              string `json:"zip_code"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
}

// ItemInput is one client-submitted cart line. Any price fields the
// client sends are ignored; unit prices are recomputed from the
// catalog.
type ItemInput struct {
	PizzaID          string                  `json:"pizza_id"`
	Size             enums.PizzaSize         `json:"size"`
	SelectedToppings []string                `json:"selected_toppings,omitempty"`
	Quantity         int                     `json:"quantity"`
	IsCustom         bool                    `json:"is_custom,omitempty"`
	CustomToppings   types.ToppingPlacements `json:"custom_toppings,omitempty"`
	CustomCrust      string                  `json:"custom_crust,omitempty"`
	CustomSauce      string                  `json:"custom_sauce,omitempty"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	CustomerInfo CustomerInfoInput `json:"customer_info"`
	Items        []ItemInput       `json:"items"`
}

// LineItemDTO is the transport shape of one persisted order line.
type LineItemDTO struct {
	ID               uuid.UUID               `json:"id"`
	PizzaID          string                  `json:"pizza_id"`
	PizzaName        string                  `json:"pizza_name"`
	Size             enums.PizzaSize         `json:"size"`
	BasePrice        float64                 `json:"base_price"`
	SelectedToppings []string                `json:"selected_toppings,omitempty"`
	Quantity         int                     `json:"quantity"`
	UnitPrice        float64                 `json:"unit_price"`
	IsCustom         bool                    `json:"is_custom"`
	CustomToppings   types.ToppingPlacements `json:"custom_toppings,omitempty"`
	CustomCrust      *string                 `json:"custom_crust,omitempty"`
	CustomSauce      *string                 `json:"custom_sauce,omitempty"`
}

// OrderDTO is the transport shape of a persisted order.
type OrderDTO struct {
	ID           uuid.UUID          `json:"id"`
	OrderNumber  string             `json:"order_number"`
	UserID       *uuid.UUID         `json:"user_id,omitempty"`
	CustomerInfo types.CustomerInfo `json:"customer_info"`
	Items        []LineItemDTO      `json:"items"`
	Subtotal     float64            `json:"subtotal"`
	Tax          float64            `json:"tax"`
	DeliveryFee  float64            `json:"delivery_fee"`
	Total        float64            `json:"total"`
	Status       enums.OrderStatus  `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	items := make([]LineItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItemDTO{
			ID:               item.ID,
			PizzaID:          item.PizzaID,
			PizzaName:        item.PizzaName,
			Size:             item.Size,
			BasePrice:        item.BasePrice.InexactFloat64(),
			SelectedToppings: item.SelectedToppings,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice.InexactFloat64(),
			IsCustom:         item.IsCustom,
			CustomToppings:   item.CustomToppings,
			CustomCrust:      item.CustomCrust,
			CustomSauce:      item.CustomSauce,
		})
	}

	return &OrderDTO{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		UserID:       o.UserID,
		CustomerInfo: o.CustomerInfo,
		Items:        items,
		Subtotal:     o.Subtotal.InexactFloat64(),
		Tax:          o.Tax.InexactFloat64(),
		DeliveryFee:  o.DeliveryFee.InexactFloat64(),
		Total:        o.Total.InexactFloat64(),
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}
