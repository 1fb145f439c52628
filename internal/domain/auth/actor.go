package auth

import (
	"context"
	"fmt"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Actor is the acting person extracted from access-token claims.
type Actor struct {
	PersonID string
	Name     string
	Role     user.Role
}

// ActorFromContext extracts the acting person from the request's JWT claims.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	personID, ok := claims["person_id"].(string)
	if !ok || personID == "" {
		return Actor{}, fmt.Errorf("person_id claim is missing or invalid: %w", ErrMissingClaims)
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Actor{}, fmt.Errorf("role claim is missing or invalid: %w", ErrMissingClaims)
	}

	name, _ := claims["name"].(string)

	return Actor{
		PersonID: personID,
		Name:     name,
		Role:     user.Role(roleStr),
	}, nil
}
