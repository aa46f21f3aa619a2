package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermissionsForIsDeterministic(t *testing.T) {
	first := PermissionsFor(RoleAdmin)
	second := PermissionsFor(RoleAdmin)
	require.Equal(t, first, second)

	// Returned slices are copies; mutating one must not leak into the table.
	first[0] = Permission("mutated")
	require.Equal(t, second, PermissionsFor(RoleAdmin))
}

func TestPermissionSetsFormStrictHierarchy(t *testing.T) {
	user := PermissionsFor(RoleUser)
	admin := PermissionsFor(RoleAdmin)
	superadmin := PermissionsFor(RoleSuperadmin)

	require.Len(t, user, 4)
	require.Len(t, admin, 10)
	require.Len(t, superadmin, 13)

	for _, perm := range user {
		require.True(t, HasPermission(RoleAdmin, perm), "admin missing user permission %s", perm)
	}
	for _, perm := range admin {
		require.True(t, HasPermission(RoleSuperadmin, perm), "superadmin missing admin permission %s", perm)
	}

	require.False(t, HasPermission(RoleUser, PermCreateResort))
	require.False(t, HasPermission(RoleUser, PermViewAllBookings))
	require.False(t, HasPermission(RoleAdmin, PermManageAdmins))
	require.False(t, HasPermission(RoleAdmin, PermSystemSettings))
	require.True(t, HasPermission(RoleSuperadmin, PermManageAdmins))
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	require.Nil(t, PermissionsFor(Role("moderator")))
	require.Nil(t, PermissionsFor(Role("")))
	require.False(t, HasPermission(Role("moderator"), PermViewResorts))
}

func TestRoleValidity(t *testing.T) {
	require.True(t, RoleUser.Valid())
	require.True(t, RoleAdmin.Valid())
	require.True(t, RoleSuperadmin.Valid())
	require.False(t, Role("root").Valid())

	require.False(t, RoleUser.IsAdmin())
	require.True(t, RoleAdmin.IsAdmin())
	require.True(t, RoleSuperadmin.IsAdmin())
}
