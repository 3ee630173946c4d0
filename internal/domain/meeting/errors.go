package meeting

import "errors"

var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrAttendeeNotFound   = errors.New("one or more attendees do not exist")
	ErrUnauthorizedAccess = errors.New("unauthorized to access this meeting")
)
