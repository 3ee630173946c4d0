package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	lists   int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for id, existing := range r.records {
		if existing.UserID == a.UserID && existing.Date.Equal(a.Date) {
			a.ID = id
			r.records[id] = a
			return a, nil
		}
	}
	a.ID = uuid.Must(uuid.NewV7()).String()
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.lists++
	var all []attendance.Attendance
	for _, a := range r.records {
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })

	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := min(start+filter.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeAttendanceRepo) Summary(_ context.Context, userID string, _, _ *time.Time) (attendance.Summary, error) {
	s := attendance.Summary{TotalHours: decimal.Zero, ByStatus: make(map[attendance.Status]int)}
	for _, a := range r.records {
		if a.UserID != userID {
			continue
		}
		s.Records++
		s.TotalHours = s.TotalHours.Add(a.TotalHours)
		s.ByStatus[a.Status]++
	}
	return s, nil
}

func (r *fakeAttendanceRepo) MarkAbsent(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	user.UserRepository
	ids map[string]bool
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	if !r.ids[id] {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{ID: id}, nil
}

func strPtr(s string) *string { return &s }

func newID() string { return uuid.Must(uuid.NewV7()).String() }

func setup() (*AttendanceServiceImpl, *fakeAttendanceRepo, user.Caller, user.Caller) {
	employee := user.Caller{UserID: newID(), LoginID: "EMP001", Role: user.RoleEmployee}
	manager := user.Caller{UserID: newID(), LoginID: "MGR001", Role: user.RoleManager}
	repo := newFakeAttendanceRepo()
	users := &fakeUserRepo{ids: map[string]bool{employee.UserID: true, manager.UserID: true}}
	svc := NewAttendanceService(repo, users, time.UTC).(*AttendanceServiceImpl)
	return svc, repo, employee, manager
}

func TestAttendanceService_Submit_ComputesHours(t *testing.T) {
	svc, _, employee, _ := setup()

	resp, err := svc.Submit(context.Background(), employee, attendance.SubmitAttendanceRequest{
		Date:       "2024-03-04",
		ClockIn:    strPtr("09:00"),
		ClockOut:   strPtr("17:30"),
		BreakStart: strPtr("12:00"),
		BreakEnd:   strPtr("13:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, employee.UserID, resp.UserID)
	assert.Equal(t, "2024-03-04", resp.Date)
	assert.True(t, decimal.NewFromFloat(7.5).Equal(resp.TotalHours), resp.TotalHours.String())
	assert.Equal(t, "present", resp.Status)
}

func TestAttendanceService_Submit_ReplacesSameDay(t *testing.T) {
	svc, repo, employee, _ := setup()
	ctx := context.Background()

	first, err := svc.Submit(ctx, employee, attendance.SubmitAttendanceRequest{Date: "2024-03-04", ClockIn: strPtr("09:00")})
	require.NoError(t, err)
	assert.True(t, first.TotalHours.IsZero())

	second, err := svc.Submit(ctx, employee, attendance.SubmitAttendanceRequest{Date: "2024-03-04", ClockIn: strPtr("09:00"), ClockOut: strPtr("17:00")})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.records, 1)
	assert.True(t, decimal.NewFromInt(8).Equal(second.TotalHours))
}

func TestAttendanceService_Submit_RejectsInvertedTimes(t *testing.T) {
	svc, _, employee, _ := setup()

	_, err := svc.Submit(context.Background(), employee, attendance.SubmitAttendanceRequest{
		Date:     "2024-03-04",
		ClockIn:  strPtr("17:00"),
		ClockOut: strPtr("09:00"),
	})
	assert.Error(t, err)
}

func TestAttendanceService_Submit_OnBehalf(t *testing.T) {
	svc, _, employee, manager := setup()
	ctx := context.Background()

	_, err := svc.Submit(ctx, employee, attendance.SubmitAttendanceRequest{UserID: &manager.UserID, Date: "2024-03-04"})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	resp, err := svc.Submit(ctx, manager, attendance.SubmitAttendanceRequest{UserID: &employee.UserID, Date: "2024-03-04", Status: "late"})
	require.NoError(t, err)
	assert.Equal(t, employee.UserID, resp.UserID)
	assert.Equal(t, "late", resp.Status)

	unknown := newID()
	_, err = svc.Submit(ctx, manager, attendance.SubmitAttendanceRequest{UserID: &unknown, Date: "2024-03-04"})
	assert.ErrorIs(t, err, attendance.ErrUserNotFound)
}

func TestAttendanceService_GetAndList_Visibility(t *testing.T) {
	svc, _, employee, manager := setup()
	ctx := context.Background()

	mine, err := svc.Submit(ctx, manager, attendance.SubmitAttendanceRequest{Date: "2024-03-04"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, employee, mine.ID)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = svc.Get(ctx, manager, mine.ID)
	assert.NoError(t, err)

	_, err = svc.List(ctx, employee, attendance.AttendanceFilter{})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	own, err := svc.ListMine(ctx, employee, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), own.TotalCount)
	assert.NotNil(t, own.Attendances)

	all, err := svc.List(ctx, manager, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), all.TotalCount)
	assert.Equal(t, 1, all.TotalPages)
}

func TestAttendanceService_Delete(t *testing.T) {
	svc, repo, employee, manager := setup()
	ctx := context.Background()

	rec, err := svc.Submit(ctx, employee, attendance.SubmitAttendanceRequest{Date: "2024-03-04"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, employee, rec.ID), attendance.ErrUnauthorized)
	require.NoError(t, svc.Delete(ctx, manager, rec.ID))
	assert.Empty(t, repo.records)
	assert.ErrorIs(t, svc.Delete(ctx, manager, rec.ID), attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_Summary(t *testing.T) {
	svc, _, employee, manager := setup()
	ctx := context.Background()

	for _, day := range []string{"2024-03-04", "2024-03-05"} {
		_, err := svc.Submit(ctx, employee, attendance.SubmitAttendanceRequest{Date: day, ClockIn: strPtr("09:00"), ClockOut: strPtr("13:20")})
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, employee, attendance.SummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, employee.UserID, summary.UserID)
	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, "8.67", summary.TotalHours.String())
	assert.Equal(t, 2, summary.ByStatus["present"])
	assert.Equal(t, 0, summary.ByStatus["absent"])

	_, err = svc.Summary(ctx, employee, attendance.SummaryRequest{UserID: &manager.UserID})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	other, err := svc.Summary(ctx, manager, attendance.SummaryRequest{UserID: &employee.UserID})
	require.NoError(t, err)
	assert.Equal(t, 2, other.Records)
}

func TestAttendanceService_ExportTimesheet_PagesThroughAllRecords(t *testing.T) {
	svc, repo, employee, manager := setup()
	ctx := context.Background()

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range exportPageSize + 5 {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		_, err := svc.Submit(ctx, employee, attendance.SubmitAttendanceRequest{Date: day, ClockIn: strPtr("09:00"), ClockOut: strPtr("17:00")})
		require.NoError(t, err)
	}

	_, err := svc.ExportTimesheet(ctx, employee, attendance.AttendanceFilter{})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	repo.lists = 0
	buf, err := svc.ExportTimesheet(ctx, manager, attendance.AttendanceFilter{UserID: &employee.UserID})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lists)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	// header + records + total
	assert.Len(t, rows, exportPageSize+5+2)
}

func TestAttendanceService_ExportTimesheet_OwnRecords(t *testing.T) {
	svc, _, employee, _ := setup()
	ctx := context.Background()

	_, err := svc.Submit(ctx, employee, attendance.SubmitAttendanceRequest{Date: "2024-03-04", ClockIn: strPtr("09:00"), ClockOut: strPtr("17:00")})
	require.NoError(t, err)

	buf, err := svc.ExportTimesheet(ctx, employee, attendance.AttendanceFilter{UserID: &employee.UserID})
	require.NoError(t, err)
	assert.Positive(t, buf.Len())
}
