package rabbitmq

import (
	"time"

	"github.com/sngm3741/ugym-konect/api/internal/public/application"
)

const (
	// CartCheckedOutQueue is also the routing key of the event.
	CartCheckedOutQueue    = "cart.checkedout"
	EventNameCheckedOut    = "CartCheckedOut"
	EventVersionCheckedOut = 1
	producerName           = "ugym-konect-api"
)

// EventEnvelope wraps every payload published by the API.
type EventEnvelope[T any] struct {
	EventName    string    `json:"eventName"`
	EventVersion int       `json:"eventVersion"`
	EventID      string    `json:"eventId"`
	Producer     string    `json:"producer"`
	PartitionKey string    `json:"partitionKey"`
	OccurredAt   time.Time `json:"occurredAt"`
	Payload      T         `json:"payload"`
}

type CartItem struct {
	ItemID     string  `json:"itemId"`
	ProductID  string  `json:"productId"`
	BusinessID string  `json:"businessId"`
	Name       string  `json:"productName"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CartCheckedOut carries the totals exactly as they were read at checkout.
type CartCheckedOut struct {
	OrderRef      string          `json:"orderRef"`
	UserID        string          `json:"userId"`
	Customer      Customer        `json:"customer"`
	Shipping      ShippingAddress `json:"shipping"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Items         []CartItem      `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	PlatformFee   float64         `json:"platformFee"`
	FeeRate       float64         `json:"feeRate"`
	TotalAmount   float64         `json:"totalAmount"`
	Timestamp     time.Time       `json:"timestamp"`
}

func newCartCheckedOutEvent(ev application.CheckoutEvent) EventEnvelope[CartCheckedOut] {
	items := make([]CartItem, 0, len(ev.Lines))
	for _, l := range ev.Lines {
		items = append(items, CartItem{
			ItemID:     l.ItemID,
			ProductID:  l.ProductID,
			BusinessID: l.BusinessID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			Price:      l.UnitPrice,
		})
	}
	return EventEnvelope[CartCheckedOut]{
		EventName:    EventNameCheckedOut,
		EventVersion: EventVersionCheckedOut,
		EventID:      ev.EventID,
		Producer:     producerName,
		PartitionKey: ev.OrderRef,
		OccurredAt:   ev.CheckedOutAt,
		Payload: CartCheckedOut{
			OrderRef: ev.OrderRef,
			UserID:   ev.OwnerID,
			Customer: Customer{Name: ev.Contact.Name, Email: ev.Contact.Email, Phone: ev.Contact.Phone},
			Shipping: ShippingAddress{
				Address:    ev.Shipping.Address,
				City:       ev.Shipping.City,
				Province:   ev.Shipping.Province,
				PostalCode: ev.Shipping.PostalCode,
			},
			PaymentMethod: ev.PaymentMethod,
			Items:         items,
			Subtotal:      ev.Totals.Subtotal,
			PlatformFee:   ev.Totals.Fee,
			FeeRate:       ev.FeeRate,
			TotalAmount:   ev.Totals.Total,
			Timestamp:     ev.CheckedOutAt,
		},
	}
}
