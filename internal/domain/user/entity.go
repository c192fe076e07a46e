package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is the account kind. Capabilities hang off the role instead of being
// probed from profile attributes.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployer Role = "employer"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleEmployee:
		return true
	default:
		return false
	}
}

func (r Role) CanApply() bool {
	return r == RoleEmployee
}

func (r Role) CanPostJobs() bool {
	return r == RoleEmployer
}

func (r Role) CanViewCandidates() bool {
	return r == RoleEmployer || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

type Account struct {
	ID    uuid.UUID
	Email string
	Role  Role
}
