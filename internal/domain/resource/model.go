package resource

import "time"

// Resource is one entry in the global pool of outsourcing resources.
// AvailableHours is derived: total hours minus committed allocations.
// Reserved-but-uncommitted allocations do not reduce availability.
type Resource struct {
	ID             string     `json:"id"`
	ResourceName   string     `json:"resource_name"`
	CompanyName    string     `json:"company_name"`
	TotalHours     int        `json:"total_hours"`
	AvailableHours int        `json:"available_hours"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Allocation reserves resource hours for a project. Hours are deducted from
// the pool only once committed, which happens when the project enters
// execution.
type Allocation struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	ResourceID     string     `json:"resource_id"`
	AllocatedHours int        `json:"allocated_hours"`
	HoursCommitted bool       `json:"hours_committed"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
