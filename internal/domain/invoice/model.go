// Package invoice defines the invoice record and its list view-model
// descriptor.
package invoice

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/dashview/internal/listview"
)

// MirrorKey is the persisted-mirror key for the invoice collection.
const MirrorKey = "invoices"

// ChangeTopic is the change-notification topic for the invoice collection.
const ChangeTopic = "invoices.changed"

// Status is the invoice billing status.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every valid invoice status.
var Statuses = []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Invoice is one invoice record as received from the backend.
type Invoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	ProjectID     string     `json:"project_id,omitempty"`
	Amount        float64    `json:"amount"`
	Status        Status     `json:"status"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// New builds a draft invoice with a fresh id and created timestamp.
func New(number, customerID, customerName string, amount float64, issued time.Time) Invoice {
	return Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: strings.TrimSpace(number),
		CustomerID:    customerID,
		CustomerName:  strings.TrimSpace(customerName),
		Amount:        amount,
		Status:        StatusDraft,
		IssueDate:     issued,
		CreatedAt:     time.Now(),
	}
}

// Descriptor declares how the list view-model reads invoices.
func Descriptor() listview.Descriptor[Invoice] {
	return listview.Descriptor[Invoice]{
		ID:     func(i Invoice) string { return i.ID },
		Status: func(i Invoice) string { return string(i.Status) },
		Date:   func(i Invoice) time.Time { return i.IssueDate },
		Search: []func(Invoice) string{
			func(i Invoice) string { return i.InvoiceNumber },
			func(i Invoice) string { return i.CustomerName },
		},
		Fields: map[string]func(Invoice) any{
			"invoice_number": func(i Invoice) any { return i.InvoiceNumber },
			"customer_name":  func(i Invoice) any { return i.CustomerName },
			"amount":         func(i Invoice) any { return i.Amount },
			"status":         func(i Invoice) any { return string(i.Status) },
			"issue_date":     func(i Invoice) any { return i.IssueDate },
			"due_date":       func(i Invoice) any { return i.DueDate },
			"created_at":     func(i Invoice) any { return i.CreatedAt },
		},
	}
}
