// Package project defines the project record as rendered by the dashboard
// and its list view-model descriptor.
package project

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/dashview/internal/listview"
)

// MirrorKey is the persisted-mirror key for the project collection.
const MirrorKey = "projects"

// ChangeTopic is the change-notification topic for the project collection.
const ChangeTopic = "projects.changed"

// Status is the project workflow status.
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusExecution Status = "execution"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every valid project status, in workflow order.
var Statuses = []Status{StatusPlanning, StatusExecution, StatusOnHold, StatusCompleted, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Project is one project record as received from the backend.
type Project struct {
	ID            string     `json:"id"`
	ProjectNumber string     `json:"project_number"`
	ProjectName   string     `json:"project_name"`
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	Email         string     `json:"email,omitempty"`
	Status        Status     `json:"status"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Budget        float64    `json:"budget"`
	Description   string     `json:"description,omitempty"`
	AssignedTo    string     `json:"assigned_to,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// New builds a project with a fresh id and created timestamp, in planning.
func New(number, name, customerID, customerName string, start time.Time) Project {
	return Project{
		ID:            uuid.NewString(),
		ProjectNumber: strings.TrimSpace(number),
		ProjectName:   strings.TrimSpace(name),
		CustomerID:    customerID,
		CustomerName:  strings.TrimSpace(customerName),
		Status:        StatusPlanning,
		StartDate:     start,
		CreatedAt:     time.Now(),
	}
}

// Descriptor declares how the list view-model reads projects: searchable
// text fields, the primary date, and the sortable field accessors.
func Descriptor() listview.Descriptor[Project] {
	return listview.Descriptor[Project]{
		ID:     func(p Project) string { return p.ID },
		Status: func(p Project) string { return string(p.Status) },
		Date:   func(p Project) time.Time { return p.StartDate },
		Search: []func(Project) string{
			func(p Project) string { return p.ProjectNumber },
			func(p Project) string { return p.ProjectName },
			func(p Project) string { return p.CustomerName },
		},
		Fields: map[string]func(Project) any{
			"project_number": func(p Project) any { return p.ProjectNumber },
			"project_name":   func(p Project) any { return p.ProjectName },
			"customer_name":  func(p Project) any { return p.CustomerName },
			"status":         func(p Project) any { return string(p.Status) },
			"start_date":     func(p Project) any { return p.StartDate },
			"end_date":       func(p Project) any { return p.EndDate },
			"budget":         func(p Project) any { return p.Budget },
			"created_at":     func(p Project) any { return p.CreatedAt },
		},
	}
}
