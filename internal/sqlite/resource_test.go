package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/dashview/internal/domain/resource"
	"github.com/ganot/dashview/internal/repository"
)

func seedResource(t *testing.T, repo *ResourceRepository, id string, totalHours int) {
	t.Helper()
	err := repo.CreateResource(context.Background(), &resource.Resource{
		ID:           id,
		ResourceName: "Dev " + id,
		CompanyName:  "Acme Outsourcing",
		TotalHours:   totalHours,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
}

func TestResourceRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResourceRepository(db)
	ctx := context.Background()

	seedResource(t, repo, "r1", 160)

	retrieved, err := repo.GetResource(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "r1", retrieved.ID)
	require.Equal(t, "Acme Outsourcing", retrieved.CompanyName)
	require.Equal(t, 160, retrieved.TotalHours)
}

func TestResourceRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResourceRepository(db)

	_, err := repo.GetResource(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResourceRepository_CreateDuplicate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResourceRepository(db)

	seedResource(t, repo, "r1", 160)
	err := repo.CreateResource(context.Background(), &resource.Resource{
		ID:           "r1",
		ResourceName: "Dev",
		CompanyName:  "Acme",
		TotalHours:   10,
		CreatedAt:    time.Now(),
	})
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestResourceRepository_ListOrder(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResourceRepository(db)

	seedResource(t, repo, "r1", 100)
	seedResource(t, repo, "r2", 200)

	resources, err := repo.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 2)
}

func TestResourceRepository_UpdateMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResourceRepository(db)

	err := repo.UpdateResource(context.Background(), &resource.Resource{
		ID: "missing", ResourceName: "x", CompanyName: "y", TotalHours: 1,
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResourceRepository_AllocationRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResourceRepository(db)
	ctx := context.Background()

	seedResource(t, repo, "r1", 160)

	alloc := &resource.Allocation{
		ID:             "a1",
		ProjectID:      "p1",
		ResourceID:     "r1",
		AllocatedHours: 40,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, repo.CreateAllocation(ctx, alloc))

	retrieved, err := repo.GetAllocation(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 40, retrieved.AllocatedHours)
	require.False(t, retrieved.HoursCommitted)

	now := time.Now()
	retrieved.HoursCommitted = true
	retrieved.UpdatedAt = &now
	require.NoError(t, repo.UpdateAllocation(ctx, retrieved))

	committed, err := repo.GetAllocation(ctx, "a1")
	require.NoError(t, err)
	require.True(t, committed.HoursCommitted)

	byProject, err := repo.ListAllocationsByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byProject, 1)

	byResource, err := repo.ListAllocationsByResource(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, byResource, 1)

	require.NoError(t, repo.DeleteAllocation(ctx, "a1"))
	_, err = repo.GetAllocation(ctx, "a1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResourceRepository_AllocationForeignKey(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResourceRepository(db)

	err := repo.CreateAllocation(context.Background(), &resource.Allocation{
		ID:             "a1",
		ProjectID:      "p1",
		ResourceID:     "missing",
		AllocatedHours: 10,
		CreatedAt:      time.Now(),
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

// Service + repository integration for the activation business rule.
func TestActivationDeductsAndReturnsHours(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResourceRepository(db)
	svc := resource.NewService(repo, nil)
	ctx := context.Background()

	pool, err := svc.CreateResource(ctx, resource.CreateResourceRequest{
		ResourceName: "Dev A",
		CompanyName:  "Acme Outsourcing",
		TotalHours:   100,
	})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, resource.AssignRequest{
		ProjectID: "p1", ResourceID: pool.ID, Hours: 60,
	})
	require.NoError(t, err)

	// Reserved hours don't reduce availability yet.
	got, err := svc.GetResource(ctx, pool.ID)
	require.NoError(t, err)
	require.Equal(t, 100, got.AvailableHours)

	activated, err := svc.Activate(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 1, activated)

	got, err = svc.GetResource(ctx, pool.ID)
	require.NoError(t, err)
	require.Equal(t, 40, got.AvailableHours)

	deactivated, err := svc.Deactivate(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 1, deactivated)

	got, err = svc.GetResource(ctx, pool.ID)
	require.NoError(t, err)
	require.Equal(t, 100, got.AvailableHours)
}
