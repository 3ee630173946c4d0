package user

import "slices"

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// User Management
	PermissionUserManage  Permission = "user.manage"
	PermissionUserViewAll Permission = "user.view_all"

	// Attendance Management
	PermissionAttendanceSubmitOwn Permission = "attendance.submit_own"
	PermissionAttendanceManage    Permission = "attendance.manage"
	PermissionAttendanceViewAll   Permission = "attendance.view_all"

	// Leave Management
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Tasks
	PermissionTaskManage  Permission = "task.manage"
	PermissionTaskViewAll Permission = "task.view_all"
	PermissionTaskViewOwn Permission = "task.view_own"

	// Meetings
	PermissionMeetingManage  Permission = "meeting.manage"
	PermissionMeetingViewOwn Permission = "meeting.view_own"
)

var selfService = []Permission{
	PermissionViewOwnProfile,
	PermissionAttendanceSubmitOwn,
	PermissionLeaveCreate,
	PermissionTaskViewOwn,
	PermissionMeetingViewOwn,
}

var supervision = []Permission{
	PermissionUserViewAll,
	PermissionAttendanceManage,
	PermissionAttendanceViewAll,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionTaskManage,
	PermissionTaskViewAll,
	PermissionMeetingManage,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    slices.Concat(selfService, supervision, []Permission{PermissionUserManage}),
	RoleHR:       slices.Concat(selfService, supervision, []Permission{PermissionUserManage}),
	RoleManager:  slices.Concat(selfService, supervision),
	RoleEmployee: selfService,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return slices.Contains(permissions, permission)
}
