package meeting

import (
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
)

type CreateMeetingRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	StartAt     string   `json:"start_at"`
	EndAt       string   `json:"end_at"`
	AttendeeIDs []string `json:"attendee_ids"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateMeetingRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 200 {
		errs.Add("title", "title must not exceed 200 characters")
	}

	var startOK, endOK bool
	if r.Start, startOK = validator.IsValidDateTime(r.StartAt); !startOK {
		errs.Add("start_at", "start_at must be an RFC3339 timestamp")
	}
	if r.End, endOK = validator.IsValidDateTime(r.EndAt); !endOK {
		errs.Add("end_at", "end_at must be an RFC3339 timestamp")
	}
	if startOK && endOK && !r.End.After(r.Start) {
		errs.Add("end_at", "end_at must be after start_at")
	}

	r.AttendeeIDs = normalizeAttendees(&errs, r.AttendeeIDs)

	return errs.Err()
}

type UpdateMeetingRequest struct {
	ID          string    `json:"-"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	StartAt     *string   `json:"start_at,omitempty"`
	EndAt       *string   `json:"end_at,omitempty"`
	AttendeeIDs *[]string `json:"attendee_ids,omitempty"`
}

func (r *UpdateMeetingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs.Add("title", "title must not be empty")
	}
	if r.StartAt != nil {
		if _, ok := validator.IsValidDateTime(*r.StartAt); !ok {
			errs.Add("start_at", "start_at must be an RFC3339 timestamp")
		}
	}
	if r.EndAt != nil {
		if _, ok := validator.IsValidDateTime(*r.EndAt); !ok {
			errs.Add("end_at", "end_at must be an RFC3339 timestamp")
		}
	}
	if r.AttendeeIDs != nil {
		ids := normalizeAttendees(&errs, *r.AttendeeIDs)
		r.AttendeeIDs = &ids
	}

	return errs.Err()
}

// Apply merges the update into m and re-checks the time window.
func (r *UpdateMeetingRequest) Apply(m *Meeting) error {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.Location != nil {
		m.Location = r.Location
	}
	if r.StartAt != nil {
		m.StartAt, _ = validator.IsValidDateTime(*r.StartAt)
	}
	if r.EndAt != nil {
		m.EndAt, _ = validator.IsValidDateTime(*r.EndAt)
	}
	if r.AttendeeIDs != nil {
		m.AttendeeIDs = *r.AttendeeIDs
	}
	if !m.EndAt.After(m.StartAt) {
		return validator.ValidationErrors{{Field: "end_at", Message: "end_at must be after start_at"}}
	}
	return nil
}

func normalizeAttendees(errs *validator.ValidationErrors, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if !validator.IsValidUUID(id) {
			errs.Add("attendee_ids", "attendee_ids must contain valid UUIDs")
			continue
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

type MeetingFilter struct {
	UserID *string
	From   *string
	To     *string
	Page   int
	Limit  int
}

func (f *MeetingFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.From != nil {
		if _, ok := validator.IsValidDate(*f.From); !ok {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
	}
	if f.To != nil {
		if _, ok := validator.IsValidDate(*f.To); !ok {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type MeetingResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	StartAt     string   `json:"start_at"`
	EndAt       string   `json:"end_at"`
	OrganizerID string   `json:"organizer_id"`
	AttendeeIDs []string `json:"attendee_ids"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func NewMeetingResponse(m Meeting) MeetingResponse {
	attendees := m.AttendeeIDs
	if attendees == nil {
		attendees = []string{}
	}
	return MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		StartAt:     m.StartAt.Format(time.RFC3339),
		EndAt:       m.EndAt.Format(time.RFC3339),
		OrganizerID: m.OrganizerID,
		AttendeeIDs: attendees,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
}

type ListMeetingResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Meetings   []MeetingResponse `json:"meetings"`
}
