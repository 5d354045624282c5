package domain

import (
	"strings"
	"time"
)

// OrderStatus captures the fulfillment lifecycle of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipping   OrderStatus = "Shipping"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// ParseStatus validates a raw status value. Any value outside the five
// known states is rejected; the transition graph between them is open.
func ParseStatus(raw string) (OrderStatus, error) {
	switch status := OrderStatus(raw); status {
	case StatusPending, StatusProcessing, StatusShipping, StatusDelivered, StatusCancelled:
		return status, nil
	default:
		return "", &ValidationError{Reason: "unknown order status: " + raw}
	}
}

// PaymentMethod identifies how an order is settled. COD is the only method
// with special lifecycle behavior; every other value is an external pay-now
// gateway and is carried as-is.
type PaymentMethod string

// PaymentMethodCOD marks cash-on-delivery orders, which are settled
// implicitly when the order is delivered.
const PaymentMethodCOD PaymentMethod = "COD"

// IsCOD reports whether payment is collected at delivery time.
func (m PaymentMethod) IsCOD() bool { return m == PaymentMethodCOD }

// OrderItem is a priced line item captured at checkout time.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Slug      string  `json:"slug" bson:"slug"`
	Image     string  `json:"image" bson:"image"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// ShippingAddress is the destination recorded on the order.
type ShippingAddress struct {
	FullName   string `json:"full_name" bson:"full_name"`
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// Validate requires every address field at creation time.
func (a ShippingAddress) Validate() error {
	fields := []struct{ name, value string }{
		{"full_name", a.FullName},
		{"address", a.Address},
		{"city", a.City},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Reason: "shipping_address." + f.name + " is required"}
		}
	}
	return nil
}

// PaymentResult records the confirmation received from a payment gateway,
// or the synthetic confirmation written for COD orders at delivery.
type PaymentResult struct {
	ExternalID string `json:"external_id" bson:"external_id"`
	Status     string `json:"status" bson:"status"`
	UpdateTime string `json:"update_time" bson:"update_time"`
	PayerEmail string `json:"payer_email" bson:"payer_email"`
}

// Order is a customer purchase record tracking payment and fulfillment state.
//
// Invariants maintained by the mutation methods below:
//   - IsPaid is true iff PaidAt is set iff PaymentResult is set.
//   - Status == Delivered iff IsDelivered is true iff DeliveredAt is set.
//   - Owner never changes after creation.
type Order struct {
	ID              string          `json:"id"`
	Owner           string          `json:"owner"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	ItemsPrice      float64         `json:"items_price"`
	ShippingPrice   float64         `json:"shipping_price"`
	TaxPrice        float64         `json:"tax_price"`
	TotalPrice      float64         `json:"total_price"`
	IsPaid          bool            `json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	PaymentResult   *PaymentResult  `json:"payment_result,omitempty"`
	IsDelivered     bool            `json:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Validate checks the structural constraints enforced at creation.
// Item counts, quantities, and prices are intentionally accepted as given.
func (o Order) Validate() error {
	if strings.TrimSpace(o.Owner) == "" {
		return &ValidationError{Reason: "owner is required"}
	}
	if strings.TrimSpace(string(o.PaymentMethod)) == "" {
		return &ValidationError{Reason: "payment_method is required"}
	}
	return o.ShippingAddress.Validate()
}

// MarkPaid records a payment confirmation. Re-paying an already-paid order
// overwrites the previous confirmation and timestamp; callers that want a
// conflict guard must layer it on top.
func (o *Order) MarkPaid(result PaymentResult, now time.Time) {
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	o.UpdatedAt = now
}

// TransitionTo moves the order to the target status and applies the side
// effects keyed on it. The transition graph is deliberately unrestricted:
// any status may move to any other.
//
// Delivered additionally sets the delivery fields, and for COD orders
// asserts payment with a synthetic confirmation. The returned flag tells
// the caller whether the owner's cart should be cleared.
func (o *Order) TransitionTo(status OrderStatus, now time.Time) (clearCart bool, err error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return false, err
	}

	o.Status = status
	o.UpdatedAt = now

	if status != StatusDelivered {
		return false, nil
	}

	o.IsDelivered = true
	o.DeliveredAt = &now

	if !o.PaymentMethod.IsCOD() {
		// Pay-now orders settle through the gateway; delivery never
		// touches their payment fields.
		return false, nil
	}

	o.MarkPaid(CODPaymentResult(now), now)
	return true, nil
}

// CODPaymentResult is the confirmation synthesized when a cash-on-delivery
// order is marked delivered.
func CODPaymentResult(now time.Time) PaymentResult {
	return PaymentResult{
		ExternalID: "COD",
		Status:     "PAID",
		UpdateTime: now.UTC().Format(time.RFC3339),
	}
}
