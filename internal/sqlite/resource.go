package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/dashview/internal/domain/resource"
	"github.com/ganot/dashview/internal/repository"
)

// ResourceRepository implements resource.Repository for SQLite
type ResourceRepository struct {
	db *DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// CreateResource inserts a pool resource
func (r *ResourceRepository) CreateResource(ctx context.Context, res *resource.Resource) error {
	query := `
		INSERT INTO resources (id, resource_name, company_name, total_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.ResourceName,
		res.CompanyName,
		res.TotalHours,
		res.CreatedAt,
		res.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	return nil
}

// GetResource retrieves a resource by ID
func (r *ResourceRepository) GetResource(ctx context.Context, id string) (*resource.Resource, error) {
	query := `
		SELECT id, resource_name, company_name, total_hours, created_at, updated_at
		FROM resources
		WHERE id = ?
	`

	var res resource.Resource
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID,
		&res.ResourceName,
		&res.CompanyName,
		&res.TotalHours,
		&res.CreatedAt,
		&res.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	return &res, nil
}

// ListResources returns all pool resources, oldest first
func (r *ResourceRepository) ListResources(ctx context.Context) ([]resource.Resource, error) {
	query := `
		SELECT id, resource_name, company_name, total_hours, created_at, updated_at
		FROM resources
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var resources []resource.Resource
	for rows.Next() {
		var res resource.Resource
		err := rows.Scan(
			&res.ID,
			&res.ResourceName,
			&res.CompanyName,
			&res.TotalHours,
			&res.CreatedAt,
			&res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, res)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}

	return resources, nil
}

// UpdateResource rewrites a resource row
func (r *ResourceRepository) UpdateResource(ctx context.Context, res *resource.Resource) error {
	query := `
		UPDATE resources
		SET resource_name = ?, company_name = ?, total_hours = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		res.ResourceName,
		res.CompanyName,
		res.TotalHours,
		res.UpdatedAt,
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteResource removes a resource row
func (r *ResourceRepository) DeleteResource(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// CreateAllocation inserts an allocation
func (r *ResourceRepository) CreateAllocation(ctx context.Context, alloc *resource.Allocation) error {
	query := `
		INSERT INTO allocations (id, project_id, resource_id, allocated_hours, hours_committed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		alloc.ID,
		alloc.ProjectID,
		alloc.ResourceID,
		alloc.AllocatedHours,
		alloc.HoursCommitted,
		alloc.CreatedAt,
		alloc.UpdatedAt,
	)

	if isForeignKeyViolation(err) {
		return repository.ErrNotFound
	}
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create allocation: %w", err)
	}

	return nil
}

// GetAllocation retrieves an allocation by ID
func (r *ResourceRepository) GetAllocation(ctx context.Context, id string) (*resource.Allocation, error) {
	query := `
		SELECT id, project_id, resource_id, allocated_hours, hours_committed, created_at, updated_at
		FROM allocations
		WHERE id = ?
	`

	var alloc resource.Allocation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&alloc.ID,
		&alloc.ProjectID,
		&alloc.ResourceID,
		&alloc.AllocatedHours,
		&alloc.HoursCommitted,
		&alloc.CreatedAt,
		&alloc.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}

	return &alloc, nil
}

// ListAllocationsByProject returns a project's allocations, newest first
func (r *ResourceRepository) ListAllocationsByProject(ctx context.Context, projectID string) ([]resource.Allocation, error) {
	return r.listAllocations(ctx, `project_id`, projectID, `ORDER BY created_at DESC`)
}

// ListAllocationsByResource returns a resource's allocations, oldest first
func (r *ResourceRepository) ListAllocationsByResource(ctx context.Context, resourceID string) ([]resource.Allocation, error) {
	return r.listAllocations(ctx, `resource_id`, resourceID, `ORDER BY created_at ASC`)
}

func (r *ResourceRepository) listAllocations(ctx context.Context, column, value, order string) ([]resource.Allocation, error) {
	query := `
		SELECT id, project_id, resource_id, allocated_hours, hours_committed, created_at, updated_at
		FROM allocations
		WHERE ` + column + ` = ? ` + order

	rows, err := r.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocs []resource.Allocation
	for rows.Next() {
		var alloc resource.Allocation
		err := rows.Scan(
			&alloc.ID,
			&alloc.ProjectID,
			&alloc.ResourceID,
			&alloc.AllocatedHours,
			&alloc.HoursCommitted,
			&alloc.CreatedAt,
			&alloc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocs = append(allocs, alloc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}

	return allocs, nil
}

// UpdateAllocation rewrites an allocation row
func (r *ResourceRepository) UpdateAllocation(ctx context.Context, alloc *resource.Allocation) error {
	query := `
		UPDATE allocations
		SET project_id = ?, resource_id = ?, allocated_hours = ?, hours_committed = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		alloc.ProjectID,
		alloc.ResourceID,
		alloc.AllocatedHours,
		alloc.HoursCommitted,
		alloc.UpdatedAt,
		alloc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteAllocation removes an allocation row
func (r *ResourceRepository) DeleteAllocation(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM allocations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
