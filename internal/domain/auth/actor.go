package auth

import (
	"fmt"
	"strings"

	"sba-portal/internal/domain/apperr"
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleReferral Role = "referral"
	RoleAdmin    Role = "admin"
)

// ParseRole falls back to borrower for an empty value, matching how accounts
// created without role metadata are treated.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case "":
		return RoleBorrower, nil
	case RoleBorrower, RoleReferral, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", apperr.ErrInvalidInput, raw)
	}
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Email  string
	Role   Role
}

func (a Actor) Is(role Role) bool { return a.UserID != "" && a.Role == role }

// Require returns ErrUnauthorized unless the actor holds one of roles.
func (a Actor) Require(roles ...Role) error {
	if a.UserID == "" {
		return fmt.Errorf("%w: no authenticated user", apperr.ErrUnauthorized)
	}
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q may not perform this action", apperr.ErrUnauthorized, a.Role)
}

// DashboardPath is where a freshly signed-in user of role lands.
func DashboardPath(role Role) string {
	switch role {
	case RoleReferral:
		return "/referral"
	case RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/borrower/dashboard"
	}
}
