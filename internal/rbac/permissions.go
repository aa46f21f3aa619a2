package rbac

// rolePermissions maps each role to the full list of permissions it holds.
// The table is fixed data: loaded once, never mutated, safe for concurrent
// reads. Changing an assignment is a deployment change, not a runtime one.
// Each role lists its grants in full rather than extending the weaker role,
// so the table reads the same way it is audited.
var rolePermissions = map[Role][]Permission{
	RoleUser: {
		PermViewResorts,
		PermCreateBooking,
		PermViewOwnBooking,
		PermCancelOwnBooking,
	},
	RoleAdmin: {
		PermViewResorts,
		PermCreateResort,
		PermUpdateResort,
		PermDeleteResort,
		PermCreateBooking,
		PermViewOwnBooking,
		PermCancelOwnBooking,
		PermViewAllBookings,
		PermUpdateBookingStatus,
		PermManageUsers,
	},
	RoleSuperadmin: {
		PermViewResorts,
		PermCreateResort,
		PermUpdateResort,
		PermDeleteResort,
		PermCreateBooking,
		PermViewOwnBooking,
		PermCancelOwnBooking,
		PermViewAllBookings,
		PermUpdateBookingStatus,
		PermManageUsers,
		PermManageAdmins,
		PermSystemSettings,
		PermViewAnalytics,
	},
}

// PermissionsFor returns the permissions granted to a role. Unknown roles
// get an empty set, never implicit trust.
func PermissionsFor(role Role) []Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether the role's permission set contains perm.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
