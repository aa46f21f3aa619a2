package rbac

import "github.com/google/uuid"

// Role is a named grouping of permissions. The set of roles is closed;
// anything outside it resolves to an empty permission set.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role carries admin-level authority.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Permission is an atomic capability checked before a guarded operation.
type Permission string

const (
	PermViewResorts         Permission = "view_resorts"
	PermCreateResort        Permission = "create_resort"
	PermUpdateResort        Permission = "update_resort"
	PermDeleteResort        Permission = "delete_resort"
	PermCreateBooking       Permission = "create_booking"
	PermViewOwnBooking      Permission = "view_own_booking"
	PermCancelOwnBooking    Permission = "cancel_own_booking"
	PermViewAllBookings     Permission = "view_all_bookings"
	PermUpdateBookingStatus Permission = "update_booking_status"
	PermManageUsers         Permission = "manage_users"
	PermManageAdmins        Permission = "manage_admins"
	PermSystemSettings      Permission = "system_settings"
	PermViewAnalytics       Permission = "view_analytics"
)

// Principal is the authenticated actor for a single request. It is derived
// from a verified credential and never persisted.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}
