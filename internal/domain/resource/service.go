// Package resource manages the outsourcing-hours pool: global resources,
// per-project allocations, and the commit rule that deducts hours only
// while a project is in execution.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/dashview/internal/repository"
)

// Service handles resource pool operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new resource service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// CreateResourceRequest defines resource creation inputs.
type CreateResourceRequest struct {
	ResourceName string
	CompanyName  string
	TotalHours   int
}

// CreateResource adds a resource to the global pool.
func (s *Service) CreateResource(ctx context.Context, req CreateResourceRequest) (*Resource, error) {
	if strings.TrimSpace(req.ResourceName) == "" || strings.TrimSpace(req.CompanyName) == "" {
		return nil, ErrInvalidInput
	}
	if req.TotalHours < 0 {
		return nil, ErrInvalidInput
	}

	res := &Resource{
		ID:             uuid.NewString(),
		ResourceName:   req.ResourceName,
		CompanyName:    req.CompanyName,
		TotalHours:     req.TotalHours,
		AvailableHours: req.TotalHours,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateResource(ctx, res); err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}
	return res, nil
}

// GetResource fetches a resource with its derived available hours.
func (s *Service) GetResource(ctx context.Context, id string) (*Resource, error) {
	res, err := s.repo.GetResource(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	committed, err := s.committedHours(ctx, id)
	if err != nil {
		return nil, err
	}
	res.AvailableHours = res.TotalHours - committed
	return res, nil
}

// ListResources returns the pool with accurate available hours. Only
// committed allocations reduce availability.
func (s *Service) ListResources(ctx context.Context) ([]Resource, error) {
	resources, err := s.repo.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	for i := range resources {
		committed, err := s.committedHours(ctx, resources[i].ID)
		if err != nil {
			return nil, err
		}
		resources[i].AvailableHours = resources[i].TotalHours - committed
	}
	return resources, nil
}

// UpdateTotalHours changes a resource's pool size. The new total may not
// drop below hours already committed to projects.
func (s *Service) UpdateTotalHours(ctx context.Context, id string, totalHours int) (*Resource, error) {
	if totalHours < 0 {
		return nil, ErrInvalidInput
	}
	res, err := s.repo.GetResource(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	committed, err := s.committedHours(ctx, id)
	if err != nil {
		return nil, err
	}
	if totalHours < committed {
		return nil, ErrHoursBelowCommitted
	}

	now := time.Now()
	res.TotalHours = totalHours
	res.UpdatedAt = &now
	if err := s.repo.UpdateResource(ctx, res); err != nil {
		return nil, fmt.Errorf("updating resource: %w", err)
	}
	res.AvailableHours = totalHours - committed
	return res, nil
}

// DeleteResource removes a resource that has no allocations left.
func (s *Service) DeleteResource(ctx context.Context, id string) error {
	allocs, err := s.repo.ListAllocationsByResource(ctx, id)
	if err != nil {
		return fmt.Errorf("listing allocations: %w", err)
	}
	if len(allocs) > 0 {
		return ErrResourceInUse
	}
	if err := s.repo.DeleteResource(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("deleting resource: %w", err)
	}
	return nil
}

// AssignRequest defines allocation inputs.
type AssignRequest struct {
	ProjectID  string
	ResourceID string
	Hours      int
}

// Assign reserves resource hours for a project without deducting them.
// The reservation must fit within total minus already-committed hours.
func (s *Service) Assign(ctx context.Context, req AssignRequest) (*Allocation, error) {
	if strings.TrimSpace(req.ProjectID) == "" || strings.TrimSpace(req.ResourceID) == "" || req.Hours <= 0 {
		return nil, ErrInvalidInput
	}
	res, err := s.repo.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	committed, err := s.committedHours(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	if res.TotalHours-committed < req.Hours {
		return nil, fmt.Errorf("%w: %d available, %d requested",
			ErrInsufficientHours, res.TotalHours-committed, req.Hours)
	}

	alloc := &Allocation{
		ID:             uuid.NewString(),
		ProjectID:      req.ProjectID,
		ResourceID:     req.ResourceID,
		AllocatedHours: req.Hours,
		HoursCommitted: false,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateAllocation(ctx, alloc); err != nil {
		return nil, fmt.Errorf("creating allocation: %w", err)
	}
	return alloc, nil
}

// UpdateAllocationHours resizes an allocation. For a committed allocation
// the new size must fit once its own current contribution is excluded.
func (s *Service) UpdateAllocationHours(ctx context.Context, allocationID string, hours int) (*Allocation, error) {
	if hours <= 0 {
		return nil, ErrInvalidInput
	}
	alloc, err := s.repo.GetAllocation(ctx, allocationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("getting allocation: %w", err)
	}
	res, err := s.repo.GetResource(ctx, alloc.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("getting resource: %w", err)
	}
	committed, err := s.committedHours(ctx, alloc.ResourceID)
	if err != nil {
		return nil, err
	}
	if alloc.HoursCommitted {
		committed -= alloc.AllocatedHours
	}
	if res.TotalHours-committed < hours {
		return nil, fmt.Errorf("%w: %d available, %d requested",
			ErrInsufficientHours, res.TotalHours-committed, hours)
	}

	now := time.Now()
	alloc.AllocatedHours = hours
	alloc.UpdatedAt = &now
	if err := s.repo.UpdateAllocation(ctx, alloc); err != nil {
		return nil, fmt.Errorf("updating allocation: %w", err)
	}
	return alloc, nil
}

// Release drops an allocation; committed hours return to the pool.
func (s *Service) Release(ctx context.Context, allocationID string) error {
	if err := s.repo.DeleteAllocation(ctx, allocationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAllocationNotFound
		}
		return fmt.Errorf("deleting allocation: %w", err)
	}
	return nil
}

// ListProjectAllocations returns a project's allocations.
func (s *Service) ListProjectAllocations(ctx context.Context, projectID string) ([]Allocation, error) {
	allocs, err := s.repo.ListAllocationsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	return allocs, nil
}

// Activate commits every uncommitted allocation of a project, deducting
// hours from the pool. Called when the project enters execution. If any
// allocation no longer fits, say because the pool shrank in the meantime,
// the whole activation fails and nothing is committed. Returns the number
// committed; nothing to commit is not an error.
func (s *Service) Activate(ctx context.Context, projectID string) (int, error) {
	allocs, err := s.repo.ListAllocationsByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("listing allocations: %w", err)
	}

	// Validate every pending allocation before committing any, so a
	// mid-activation failure can't leave the project half-committed.
	remaining := make(map[string]int)
	var pending []Allocation
	for i := range allocs {
		alloc := allocs[i]
		if alloc.HoursCommitted {
			continue
		}
		if _, ok := remaining[alloc.ResourceID]; !ok {
			res, err := s.repo.GetResource(ctx, alloc.ResourceID)
			if err != nil {
				return 0, fmt.Errorf("getting resource: %w", err)
			}
			committed, err := s.committedHours(ctx, alloc.ResourceID)
			if err != nil {
				return 0, err
			}
			remaining[alloc.ResourceID] = res.TotalHours - committed
		}
		if remaining[alloc.ResourceID] < alloc.AllocatedHours {
			return 0, fmt.Errorf("%w: allocation %s needs %d, resource %s has %d left",
				ErrInsufficientHours, alloc.ID, alloc.AllocatedHours,
				alloc.ResourceID, remaining[alloc.ResourceID])
		}
		remaining[alloc.ResourceID] -= alloc.AllocatedHours
		pending = append(pending, alloc)
	}

	for i := range pending {
		now := time.Now()
		pending[i].HoursCommitted = true
		pending[i].UpdatedAt = &now
		if err := s.repo.UpdateAllocation(ctx, &pending[i]); err != nil {
			return i, fmt.Errorf("committing allocation: %w", err)
		}
	}
	if len(pending) > 0 {
		s.logger.Info("committed project allocations", "project", projectID, "count", len(pending))
	}
	return len(pending), nil
}

// Deactivate returns every committed allocation of a project to reserved
// state, giving hours back to the pool. Called when the project leaves
// execution. Returns the number released; nothing committed is not an
// error.
func (s *Service) Deactivate(ctx context.Context, projectID string) (int, error) {
	allocs, err := s.repo.ListAllocationsByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("listing allocations: %w", err)
	}

	deactivated := 0
	for i := range allocs {
		alloc := allocs[i]
		if !alloc.HoursCommitted {
			continue
		}
		now := time.Now()
		alloc.HoursCommitted = false
		alloc.UpdatedAt = &now
		if err := s.repo.UpdateAllocation(ctx, &alloc); err != nil {
			return deactivated, fmt.Errorf("releasing allocation: %w", err)
		}
		deactivated++
	}
	return deactivated, nil
}

func (s *Service) committedHours(ctx context.Context, resourceID string) (int, error) {
	allocs, err := s.repo.ListAllocationsByResource(ctx, resourceID)
	if err != nil {
		return 0, fmt.Errorf("listing allocations: %w", err)
	}
	total := 0
	for _, alloc := range allocs {
		if alloc.HoursCommitted {
			total += alloc.AllocatedHours
		}
	}
	return total, nil
}
