package meeting

import (
	"slices"
	"time"
)

type Meeting struct {
	ID          string
	Title       string
	Description *string
	Location    *string
	StartAt     time.Time
	EndAt       time.Time
	OrganizerID string
	AttendeeIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Involves reports whether userID organises or attends the meeting.
func (m *Meeting) Involves(userID string) bool {
	return m.OrganizerID == userID || slices.Contains(m.AttendeeIDs, userID)
}
