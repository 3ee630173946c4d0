package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       Role
		permission Permission
		want       bool
	}{
		{RoleAdmin, PermissionUserManage, true},
		{RoleHR, PermissionUserManage, true},
		{RoleManager, PermissionUserManage, false},
		{RoleEmployee, PermissionUserManage, false},
		{RoleManager, PermissionLeaveApprove, true},
		{RoleEmployee, PermissionLeaveApprove, false},
		{RoleEmployee, PermissionLeaveCreate, true},
		{RoleEmployee, PermissionAttendanceSubmitOwn, true},
		{RoleEmployee, PermissionAttendanceViewAll, false},
		{RoleManager, PermissionMeetingManage, true},
		{RoleEmployee, PermissionMeetingViewOwn, true},
		{Role("owner"), PermissionViewOwnProfile, false},
		{Role(""), PermissionViewOwnProfile, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.permission), func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.permission))
		})
	}
}

func TestEveryRoleCanViewOwnProfile(t *testing.T) {
	for _, role := range Roles() {
		assert.True(t, role.Valid())
		assert.True(t, HasPermission(role, PermissionViewOwnProfile), role)
	}
}

func TestCaller(t *testing.T) {
	c := Caller{UserID: "u1", LoginID: "EMP001", Role: RoleEmployee}
	assert.True(t, c.Is("u1"))
	assert.False(t, c.Is("u2"))
	assert.False(t, Caller{}.Is(""))
	assert.True(t, c.Can(PermissionLeaveCreate))
	assert.False(t, c.Can(PermissionLeaveApprove))
}
