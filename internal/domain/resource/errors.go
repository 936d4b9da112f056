package resource

import "errors"

var (
	// ErrResourceNotFound indicates the resource doesn't exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrAllocationNotFound indicates the allocation doesn't exist.
	ErrAllocationNotFound = errors.New("allocation not found")
	// ErrInvalidInput indicates invalid resource or allocation input.
	ErrInvalidInput = errors.New("invalid resource input")
	// ErrInsufficientHours indicates a request exceeds the hours left in the pool.
	ErrInsufficientHours = errors.New("not enough available hours")
	// ErrHoursBelowCommitted indicates a total-hours change that would drop
	// below hours already committed to projects.
	ErrHoursBelowCommitted = errors.New("total hours cannot be less than committed hours")
	// ErrResourceInUse indicates a delete attempt on a resource that still
	// has allocations.
	ErrResourceInUse = errors.New("resource has allocations")
)
