package postgresql_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/loginid"
	"github.com/cmlabs-hris/office-backend-go/internal/repository/postgresql"
	userService "github.com/cmlabs-hris/office-backend-go/internal/service/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *TestDatabaseSetup

func TestMain(m *testing.M) {
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if setup == nil {
		fmt.Println("TEST_DATABASE_URL not set, skipping repository tests")
		os.Exit(0)
	}
	testDB = setup

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func resetDB(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.TruncateAllTables(context.Background()))
}

func createTestUser(t *testing.T, ctx context.Context, loginID string, role user.Role) user.User {
	t.Helper()
	created, err := postgresql.NewUserRepository(testDB.DB).Create(ctx, user.User{
		LoginID:      loginID,
		FullName:     "Test " + loginID,
		Email:        fmt.Sprintf("%s@example.com", loginID),
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	})
	require.NoError(t, err)
	return created
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB.DB)

	createTestUser(t, ctx, "EMP001", user.RoleEmployee)

	_, err := repo.Create(ctx, user.User{LoginID: "EMP001", FullName: "Dup", Email: "other@example.com", PasswordHash: "hash", Role: user.RoleEmployee, IsActive: true})
	assert.ErrorIs(t, err, user.ErrLoginIDTaken)

	_, err = repo.Create(ctx, user.User{LoginID: "EMP002", FullName: "Dup", Email: "EMP001@example.com", PasswordHash: "hash", Role: user.RoleEmployee, IsActive: true})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_ListLoginIDsByPrefix(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB.DB)

	createTestUser(t, ctx, "EMP001", user.RoleEmployee)
	createTestUser(t, ctx, "EMP007", user.RoleEmployee)
	createTestUser(t, ctx, "MGR001", user.RoleManager)

	ids, err := repo.ListLoginIDsByPrefix(ctx, "EMP")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"EMP001", "EMP007"}, ids)
}

func TestUserService_ConcurrentCreateAllocatesDistinctIDs(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := postgresql.NewUserRepository(testDB.DB)
	svc := userService.NewUserService(
		postgresql.NewTransactor(testDB.DB),
		userRepo,
		postgresql.NewJWTRepository(testDB.DB),
		loginid.New(loginid.Config{Prefixes: map[string]string{"employee": "EMP"}, Fallback: "USR", Width: 3, Logger: logger}),
		5,
		logger,
	)
	caller := user.Caller{UserID: "system", LoginID: "ADM001", Role: user.RoleAdmin}

	const workers = 10
	var wg sync.WaitGroup
	ids := make(chan string, workers)
	errs := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := svc.CreateUser(ctx, caller, user.CreateUserRequest{
				FullName: fmt.Sprintf("Worker %d", i),
				Email:    fmt.Sprintf("worker%d@example.com", i),
				Password: "password123",
				Role:     "employee",
			})
			if err != nil {
				errs <- err
				return
			}
			ids <- created.LoginID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate login id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	assert.True(t, seen["EMP001"])
	assert.True(t, seen["EMP010"])
}

func TestAttendanceRepository_UpsertReplacesSameDay(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB.DB)
	u := createTestUser(t, ctx, "EMP001", user.RoleEmployee)

	day := today()
	in := day.Add(9 * time.Hour)
	out := day.Add(17 * time.Hour)

	first, err := repo.Upsert(ctx, attendance.Attendance{UserID: u.ID, Date: day, ClockIn: &in, ClockOut: &out, TotalHours: decimal.NewFromInt(8), Status: attendance.StatusPresent})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, attendance.Attendance{UserID: u.ID, Date: day, ClockIn: &in, TotalHours: decimal.Zero, Status: attendance.StatusLate})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Nil(t, second.ClockOut)
	assert.Equal(t, attendance.StatusLate, second.Status)
	assert.True(t, second.TotalHours.IsZero())

	records, total, err := repo.List(ctx, attendance.AttendanceFilter{UserID: &u.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_MarkAbsent(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	attendanceRepo := postgresql.NewAttendanceRepository(testDB.DB)
	leaveRepo := postgresql.NewLeaveRequestRepository(testDB.DB)

	day := today()
	present := createTestUser(t, ctx, "EMP001", user.RoleEmployee)
	onLeave := createTestUser(t, ctx, "EMP002", user.RoleEmployee)
	missing := createTestUser(t, ctx, "EMP003", user.RoleEmployee)

	in := day.Add(9 * time.Hour)
	_, err := attendanceRepo.Upsert(ctx, attendance.Attendance{UserID: present.ID, Date: day, ClockIn: &in, Status: attendance.StatusPresent})
	require.NoError(t, err)

	req, err := leaveRepo.Create(ctx, leave.LeaveRequest{UserID: onLeave.ID, LeaveType: leave.TypeSick, StartDate: day, EndDate: day, DaysRequested: 1, Reason: "flu", Status: leave.StatusPending})
	require.NoError(t, err)
	_, err = leaveRepo.Transition(ctx, req.ID, leave.StatusApproved, &present.ID, nil)
	require.NoError(t, err)

	marked, err := attendanceRepo.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.EqualValues(t, 1, marked)

	marked, err = attendanceRepo.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.EqualValues(t, 0, marked)

	status := string(attendance.StatusAbsent)
	records, _, err := attendanceRepo.List(ctx, attendance.AttendanceFilter{Status: &status, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, missing.ID, records[0].UserID)
}

func TestLeaveRequestRepository_TransitionOnce(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(testDB.DB)

	employee := createTestUser(t, ctx, "EMP001", user.RoleEmployee)
	manager := createTestUser(t, ctx, "MGR001", user.RoleManager)

	start := today().AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 2)
	req, err := repo.Create(ctx, leave.LeaveRequest{UserID: employee.ID, LeaveType: leave.TypeAnnual, StartDate: start, EndDate: end, DaysRequested: 3, Reason: "trip", Status: leave.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, 3, req.DaysRequested)

	overlap, err := repo.HasOverlap(ctx, employee.ID, end, end.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = repo.HasOverlap(ctx, employee.ID, end.AddDate(0, 0, 1), end.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.False(t, overlap)

	approved, err := repo.Transition(ctx, req.ID, leave.StatusApproved, &manager.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, manager.ID, *approved.ApprovedBy)

	reason := "too late"
	_, err = repo.Transition(ctx, req.ID, leave.StatusRejected, &manager.ID, &reason)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestJWTRepository_PurgeExpired(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := postgresql.NewJWTRepository(testDB.DB)
	u := createTestUser(t, ctx, "EMP001", user.RoleEmployee)

	now := time.Now()
	require.NoError(t, repo.CreateRefreshToken(ctx, u.ID, "expired", now.Add(-time.Hour).Unix(), auth.SessionTrackingRequest{}))
	require.NoError(t, repo.CreateRefreshToken(ctx, u.ID, "live", now.Add(time.Hour).Unix(), auth.SessionTrackingRequest{}))

	revoked, err := repo.IsRefreshTokenRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.True(t, revoked)

	purged, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	revoked, err = repo.IsRefreshTokenRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)
}
