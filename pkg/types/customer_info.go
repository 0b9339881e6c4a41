package types

// CustomerInfo is the delivery contact snapshot stored on every order.
type CustomerInfo struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	Address              string  `json:"address"`
	City                 string  `json:"city"`
	ZipCode              string  `json:"zip_code"`
	DeliveryInstructions *string `json:"delivery_instructions,omitempty"`
}
