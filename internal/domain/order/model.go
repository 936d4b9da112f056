// Package order defines the order record and its list view-model
// descriptor.
package order

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/dashview/internal/listview"
)

// MirrorKey is the persisted-mirror key for the order collection.
const MirrorKey = "orders"

// ChangeTopic is the change-notification topic for the order collection.
const ChangeTopic = "orders.changed"

// Status is the order fulfillment status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every valid order status.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is one order record as received from the backend.
type Order struct {
	ID           string     `json:"id"`
	OrderNumber  string     `json:"order_number"`
	CustomerName string     `json:"customer_name"`
	Description  string     `json:"description,omitempty"`
	Status       Status     `json:"status"`
	OrderDate    time.Time  `json:"order_date"`
	TotalAmount  float64    `json:"total_amount"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// New builds a pending order with a fresh id and created timestamp.
func New(number, customerName, description string, total float64, placed time.Time) Order {
	return Order{
		ID:           uuid.NewString(),
		OrderNumber:  strings.TrimSpace(number),
		CustomerName: strings.TrimSpace(customerName),
		Description:  strings.TrimSpace(description),
		Status:       StatusPending,
		OrderDate:    placed,
		TotalAmount:  total,
		CreatedAt:    time.Now(),
	}
}

// Descriptor declares how the list view-model reads orders.
func Descriptor() listview.Descriptor[Order] {
	return listview.Descriptor[Order]{
		ID:     func(o Order) string { return o.ID },
		Status: func(o Order) string { return string(o.Status) },
		Date:   func(o Order) time.Time { return o.OrderDate },
		Search: []func(Order) string{
			func(o Order) string { return o.OrderNumber },
			func(o Order) string { return o.CustomerName },
			func(o Order) string { return o.Description },
		},
		Fields: map[string]func(Order) any{
			"order_number":  func(o Order) any { return o.OrderNumber },
			"customer_name": func(o Order) any { return o.CustomerName },
			"status":        func(o Order) any { return string(o.Status) },
			"order_date":    func(o Order) any { return o.OrderDate },
			"total_amount":  func(o Order) any { return o.TotalAmount },
			"created_at":    func(o Order) any { return o.CreatedAt },
		},
	}
}
