package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/project"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepository{db: db}
}

// GetByID implements project.ProjectRepository.
func (p *projectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, manager_id, active, created_at
		FROM projects
		WHERE id = $1
	`

	var prj project.Project
	err := q.QueryRow(ctx, query, id).Scan(
		&prj.ID, &prj.Name, &prj.ManagerID, &prj.Active, &prj.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	return prj, nil
}

// ListManagedIDs implements project.ProjectRepository.
func (p *projectRepository) ListManagedIDs(ctx context.Context, managerID string) ([]string, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id
		FROM projects
		WHERE manager_id = $1
		  AND active = true
	`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed projects: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan project id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project ids: %w", err)
	}

	return ids, nil
}

type allocationRepository struct {
	db *database.DB
}

func NewAllocationRepository(db *database.DB) project.AllocationRepository {
	return &allocationRepository{db: db}
}

// IsAllocated implements project.AllocationRepository.
func (a *allocationRepository) IsAllocated(ctx context.Context, personID, projectID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM allocations al
			JOIN projects pr ON pr.id = al.project_id
			WHERE al.person_id = $1
			  AND al.project_id = $2
			  AND al.start_date <= $3
			  AND (al.end_date IS NULL OR al.end_date >= $3)
			  AND pr.active = true
		)
	`

	var allocated bool
	if err := q.QueryRow(ctx, query, personID, projectID, date).Scan(&allocated); err != nil {
		return false, fmt.Errorf("failed to check allocation: %w", err)
	}

	return allocated, nil
}

// ListActive implements project.AllocationRepository.
func (a *allocationRepository) ListActive(ctx context.Context, personID string, date time.Time) ([]project.Allocation, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT al.id, al.person_id, al.project_id, pr.name, al.start_date, al.end_date
		FROM allocations al
		JOIN projects pr ON pr.id = al.project_id
		WHERE al.person_id = $1
		  AND al.start_date <= $2
		  AND (al.end_date IS NULL OR al.end_date >= $2)
		  AND pr.active = true
		ORDER BY pr.name ASC
	`

	rows, err := q.Query(ctx, query, personID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []project.Allocation
	for rows.Next() {
		var al project.Allocation
		if err := rows.Scan(&al.ID, &al.PersonID, &al.ProjectID, &al.ProjectName, &al.StartDate, &al.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, al)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocations: %w", err)
	}

	return allocations, nil
}
