package project

import (
	"context"
	"time"
)

// AllocationRepository is the allocation/access-check collaborator: whether a
// person may log time against a project on a date.
type AllocationRepository interface {
	// IsAllocated checks person+project+date access
	IsAllocated(ctx context.Context, personID, projectID string, date time.Time) (bool, error)

	// ListActive lists a person's allocations covering a date
	ListActive(ctx context.Context, personID string, date time.Time) ([]Allocation, error)
}

type ProjectRepository interface {
	// GetByID retrieves a project
	GetByID(ctx context.Context, id string) (Project, error)

	// ListManagedIDs lists the ids of projects led by a manager
	ListManagedIDs(ctx context.Context, managerID string) ([]string, error)
}
