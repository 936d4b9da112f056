package resource

import "context"

// Repository provides persistence for resources and their allocations.
type Repository interface {
	CreateResource(ctx context.Context, res *Resource) error
	GetResource(ctx context.Context, id string) (*Resource, error)
	ListResources(ctx context.Context) ([]Resource, error)
	UpdateResource(ctx context.Context, res *Resource) error
	DeleteResource(ctx context.Context, id string) error

	CreateAllocation(ctx context.Context, alloc *Allocation) error
	GetAllocation(ctx context.Context, id string) (*Allocation, error)
	ListAllocationsByProject(ctx context.Context, projectID string) ([]Allocation, error)
	ListAllocationsByResource(ctx context.Context, resourceID string) ([]Allocation, error)
	UpdateAllocation(ctx context.Context, alloc *Allocation) error
	DeleteAllocation(ctx context.Context, id string) error
}
