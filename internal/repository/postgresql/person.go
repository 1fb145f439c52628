package postgresql

import (
	"context"
	"fmt"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/person"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type personRepository struct {
	db *database.DB
}

func NewPersonRepository(db *database.DB) person.PersonRepository {
	return &personRepository{db: db}
}

// GetByID implements person.PersonRepository.
func (p *personRepository) GetByID(ctx context.Context, id string) (person.Person, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, email, position, contracted_daily_hours, created_at, updated_at
		FROM people
		WHERE id = $1
	`

	var per person.Person
	err := q.QueryRow(ctx, query, id).Scan(
		&per.ID, &per.Name, &per.Email, &per.Position,
		&per.ContractedDailyHours, &per.CreatedAt, &per.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return person.Person{}, person.ErrPersonNotFound
		}
		return person.Person{}, fmt.Errorf("failed to get person: %w", err)
	}

	return per, nil
}

// ListByIDs implements person.PersonRepository.
func (p *personRepository) ListByIDs(ctx context.Context, ids []string) (map[string]person.Person, error) {
	q := GetQuerier(ctx, p.db)

	people := make(map[string]person.Person, len(ids))
	if len(ids) == 0 {
		return people, nil
	}

	query := `
		SELECT id, name, email, position, contracted_daily_hours, created_at, updated_at
		FROM people
		WHERE id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var per person.Person
		if err := rows.Scan(
			&per.ID, &per.Name, &per.Email, &per.Position,
			&per.ContractedDailyHours, &per.CreatedAt, &per.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people[per.ID] = per
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}
