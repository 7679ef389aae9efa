package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // HR / payroll staff - manages ledgers and recovery
	RoleEmployee Role = "employee" // Regular employee
)

// Actor is the authenticated caller, read from the access token claims.
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin checks if the actor can act on other employees' ledgers
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess reports whether the actor may read data belonging to userID.
func (a Actor) CanAccess(userID string) bool {
	return a.IsAdmin() || a.UserID == userID
}

// ActorFromContext extracts the caller from the JWT claims placed in ctx by
// the jwtauth verifier.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrUserIDClaimMissing
	}

	role, _ := claims["role"].(string)
	switch Role(role) {
	case RoleAdmin, RoleEmployee:
	default:
		return Actor{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	return Actor{UserID: userID, Role: Role(role)}, nil
}
