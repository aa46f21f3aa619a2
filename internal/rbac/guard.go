package rbac

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated indicates no principal was established upstream.
	ErrUnauthenticated = errors.New("rbac: unauthenticated")
	// ErrForbidden indicates the role's permission set lacks the required permission.
	ErrForbidden = errors.New("rbac: forbidden")
	// ErrOwnershipViolation indicates the permission is held but the actor
	// does not own the target resource.
	ErrOwnershipViolation = errors.New("rbac: ownership violation")
)

// OwnerCheck scopes an authorization decision to a resource owner. When
// AllowAdminOverride is set, admin and superadmin principals pass the check
// regardless of ownership.
type OwnerCheck struct {
	OwnerID            uuid.UUID
	AllowAdminOverride bool
}

// Authorize decides whether the principal may perform an operation gated by
// the required permission, optionally scoped to a resource owner. It is a
// pure function of its inputs: no I/O, no transport context.
func Authorize(p *Principal, required Permission, owner *OwnerCheck) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if !HasPermission(p.Role, required) {
		return ErrForbidden
	}
	if owner == nil {
		return nil
	}
	if p.UserID == owner.OwnerID {
		return nil
	}
	if owner.AllowAdminOverride && p.Role.IsAdmin() {
		return nil
	}
	return ErrOwnershipViolation
}
