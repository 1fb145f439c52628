package person

import "context"

type PersonRepository interface {
	// GetByID retrieves a person
	GetByID(ctx context.Context, id string) (Person, error)

	// ListByIDs retrieves people in bulk, keyed by id
	ListByIDs(ctx context.Context, ids []string) (map[string]Person, error)
}
