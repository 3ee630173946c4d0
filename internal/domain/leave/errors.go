package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingLeaveRequest      = errors.New("leave request overlaps an existing pending or approved request")
	ErrCannotDecideOwnRequest       = errors.New("cannot approve or reject your own leave request")
	ErrUnauthorizedAccess           = errors.New("unauthorized to access this leave request")
)
