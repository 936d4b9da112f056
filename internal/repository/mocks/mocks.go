package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ganot/dashview/internal/domain/resource"
)

// ResourceRepository is a mock for resource.Repository.
type ResourceRepository struct {
	mock.Mock
}

func (m *ResourceRepository) CreateResource(ctx context.Context, res *resource.Resource) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *ResourceRepository) GetResource(ctx context.Context, id string) (*resource.Resource, error) {
	args := m.Called(ctx, id)
	if res, ok := args.Get(0).(*resource.Resource); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceRepository) ListResources(ctx context.Context) ([]resource.Resource, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]resource.Resource); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceRepository) UpdateResource(ctx context.Context, res *resource.Resource) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *ResourceRepository) DeleteResource(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ResourceRepository) CreateAllocation(ctx context.Context, alloc *resource.Allocation) error {
	args := m.Called(ctx, alloc)
	return args.Error(0)
}

func (m *ResourceRepository) GetAllocation(ctx context.Context, id string) (*resource.Allocation, error) {
	args := m.Called(ctx, id)
	if alloc, ok := args.Get(0).(*resource.Allocation); ok {
		return alloc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceRepository) ListAllocationsByProject(ctx context.Context, projectID string) ([]resource.Allocation, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]resource.Allocation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceRepository) ListAllocationsByResource(ctx context.Context, resourceID string) ([]resource.Allocation, error) {
	args := m.Called(ctx, resourceID)
	if list, ok := args.Get(0).([]resource.Allocation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceRepository) UpdateAllocation(ctx context.Context, alloc *resource.Allocation) error {
	args := m.Called(ctx, alloc)
	return args.Error(0)
}

func (m *ResourceRepository) DeleteAllocation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
