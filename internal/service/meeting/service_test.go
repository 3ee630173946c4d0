package meeting

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeetingRepo struct {
	meetings map[string]meeting.Meeting
	known    map[string]bool
}

func (r *fakeMeetingRepo) checkAttendees(ids []string) error {
	for _, id := range ids {
		if !r.known[id] {
			return meeting.ErrAttendeeNotFound
		}
	}
	return nil
}

func (r *fakeMeetingRepo) Create(_ context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	if err := r.checkAttendees(m.AttendeeIDs); err != nil {
		return meeting.Meeting{}, err
	}
	m.ID = uuid.Must(uuid.NewV7()).String()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.meetings[m.ID] = m
	return m, nil
}

func (r *fakeMeetingRepo) GetByID(_ context.Context, id string) (meeting.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return meeting.Meeting{}, meeting.ErrMeetingNotFound
	}
	m.AttendeeIDs = slices.Clone(m.AttendeeIDs)
	return m, nil
}

func (r *fakeMeetingRepo) List(_ context.Context, filter meeting.MeetingFilter) ([]meeting.Meeting, int64, error) {
	var out []meeting.Meeting
	for _, m := range r.meetings {
		if filter.UserID != nil && !m.Involves(*filter.UserID) {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMeetingRepo) Update(_ context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	if err := r.checkAttendees(m.AttendeeIDs); err != nil {
		return meeting.Meeting{}, err
	}
	r.meetings[m.ID] = m
	return m, nil
}

func (r *fakeMeetingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.meetings[id]; !ok {
		return meeting.ErrMeetingNotFound
	}
	delete(r.meetings, id)
	return nil
}

func newID() string { return uuid.Must(uuid.NewV7()).String() }

type fixture struct {
	svc      *MeetingServiceImpl
	employee user.Caller
	manager  user.Caller
	other    user.Caller
	admin    user.Caller
}

func setup() fixture {
	f := fixture{
		employee: user.Caller{UserID: newID(), LoginID: "EMP001", Role: user.RoleEmployee},
		manager:  user.Caller{UserID: newID(), LoginID: "MGR001", Role: user.RoleManager},
		other:    user.Caller{UserID: newID(), LoginID: "MGR002", Role: user.RoleManager},
		admin:    user.Caller{UserID: newID(), LoginID: "ADM001", Role: user.RoleAdmin},
	}
	repo := &fakeMeetingRepo{
		meetings: make(map[string]meeting.Meeting),
		known:    map[string]bool{f.employee.UserID: true, f.manager.UserID: true, f.other.UserID: true},
	}
	f.svc = NewMeetingService(repo).(*MeetingServiceImpl)
	return f
}

func (f fixture) standup(t *testing.T) meeting.MeetingResponse {
	t.Helper()
	created, err := f.svc.Create(context.Background(), f.manager, meeting.CreateMeetingRequest{
		Title:       "Standup",
		StartAt:     "2024-03-04T09:00:00Z",
		EndAt:       "2024-03-04T09:15:00Z",
		AttendeeIDs: []string{f.employee.UserID, f.employee.UserID},
	})
	require.NoError(t, err)
	return created
}

func TestMeetingService_Create(t *testing.T) {
	f := setup()
	created := f.standup(t)

	assert.Equal(t, f.manager.UserID, created.OrganizerID)
	assert.Equal(t, []string{f.employee.UserID}, created.AttendeeIDs)

	_, err := f.svc.Create(context.Background(), f.employee, meeting.CreateMeetingRequest{Title: "x", StartAt: "2024-03-04T09:00:00Z", EndAt: "2024-03-04T10:00:00Z"})
	assert.ErrorIs(t, err, meeting.ErrUnauthorizedAccess)

	_, err = f.svc.Create(context.Background(), f.manager, meeting.CreateMeetingRequest{Title: "x", StartAt: "2024-03-04T10:00:00Z", EndAt: "2024-03-04T10:00:00Z"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Create(context.Background(), f.manager, meeting.CreateMeetingRequest{Title: "x", StartAt: "2024-03-04T09:00:00Z", EndAt: "2024-03-04T10:00:00Z", AttendeeIDs: []string{newID()}})
	assert.ErrorIs(t, err, meeting.ErrAttendeeNotFound)
}

func TestMeetingService_Visibility(t *testing.T) {
	f := setup()
	ctx := context.Background()
	created := f.standup(t)

	_, err := f.svc.Get(ctx, f.employee, created.ID)
	assert.NoError(t, err)

	outsider := user.Caller{UserID: newID(), LoginID: "EMP009", Role: user.RoleEmployee}
	_, err = f.svc.Get(ctx, outsider, created.ID)
	assert.ErrorIs(t, err, meeting.ErrUnauthorizedAccess)

	mine, err := f.svc.ListMine(ctx, f.employee, meeting.MeetingFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.TotalCount)

	none, err := f.svc.ListMine(ctx, outsider, meeting.MeetingFilter{})
	require.NoError(t, err)
	assert.Empty(t, none.Meetings)

	_, err = f.svc.List(ctx, f.employee, meeting.MeetingFilter{})
	assert.ErrorIs(t, err, meeting.ErrUnauthorizedAccess)
}

func TestMeetingService_Update(t *testing.T) {
	f := setup()
	ctx := context.Background()
	created := f.standup(t)

	title := "Daily standup"
	attendees := []string{f.other.UserID}
	updated, err := f.svc.Update(ctx, f.manager, meeting.UpdateMeetingRequest{ID: created.ID, Title: &title, AttendeeIDs: &attendees})
	require.NoError(t, err)
	assert.Equal(t, "Daily standup", updated.Title)
	assert.Equal(t, []string{f.other.UserID}, updated.AttendeeIDs)

	_, err = f.svc.Update(ctx, f.other, meeting.UpdateMeetingRequest{ID: created.ID, Title: &title})
	assert.ErrorIs(t, err, meeting.ErrUnauthorizedAccess)

	_, err = f.svc.Update(ctx, f.admin, meeting.UpdateMeetingRequest{ID: created.ID, Title: &title})
	assert.NoError(t, err)

	early := "2024-03-04T08:00:00Z"
	_, err = f.svc.Update(ctx, f.manager, meeting.UpdateMeetingRequest{ID: created.ID, EndAt: &early})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestMeetingService_Delete(t *testing.T) {
	f := setup()
	ctx := context.Background()
	created := f.standup(t)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.employee, created.ID), meeting.ErrUnauthorizedAccess)
	require.NoError(t, f.svc.Delete(ctx, f.manager, created.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, f.manager, created.ID), meeting.ErrMeetingNotFound)
}
