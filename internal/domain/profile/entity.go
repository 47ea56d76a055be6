package profile

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleEmployer   Role = "employer"
	RoleContractor Role = "contractor"
	RoleStartup    Role = "startup"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployer, RoleContractor, RoleStartup:
		return true
	default:
		return false
	}
}

func (r Role) CanPublish() bool {
	return r == RoleEmployer
}

// UserProfile is keyed by the identity provider's subject id and is never
// modified after signup.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
}
