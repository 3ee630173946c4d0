package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrInvalidOldPassword):
		BadRequest(w, "Old password is incorrect", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrLoginIDConflict), errors.Is(err, user.ErrLoginIDTaken):
		Conflict(w, "Could not allocate a login id, please retry")
	case errors.Is(err, user.ErrLoginIDExhausted):
		Conflict(w, "Login id sequence exhausted for this role")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCannotDeactivateSelf):
		BadRequest(w, "You cannot deactivate your own account", nil)
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeaveRequest):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrCannotDecideOwnRequest):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrAssigneeNotFound):
		BadRequest(w, "Assignee not found or inactive", nil)
	case errors.Is(err, task.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Meeting domain errors
	case errors.Is(err, meeting.ErrMeetingNotFound):
		NotFound(w, "Meeting not found")
	case errors.Is(err, meeting.ErrAttendeeNotFound):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, meeting.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
