package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type directTx struct{}

func (directTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByLoginID(_ context.Context, loginID string) (user.User, error) {
	for _, u := range r.users {
		if u.LoginID == loginID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u := r.users[userID]
	u.PasswordHash = passwordHash
	r.users[userID] = u
	return nil
}

type storedToken struct {
	userID  string
	revoked bool
	session auth.SessionTrackingRequest
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (r *fakeTokenRepo) CreateRefreshToken(_ context.Context, userID string, token string, _ int64, session auth.SessionTrackingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &storedToken{userID: userID, session: session}
	return nil
}

func (r *fakeTokenRepo) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	return !ok || t.revoked, nil
}

func (r *fakeTokenRepo) RevokeRefreshToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func setup(t *testing.T) (*AuthServiceImpl, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	users := &fakeUserRepo{users: map[string]user.User{
		"u-active": {ID: "u-active", LoginID: "EMP001", Role: user.RoleEmployee, PasswordHash: hashed(t, "password123"), IsActive: true},
		"u-gone":   {ID: "u-gone", LoginID: "EMP002", Role: user.RoleEmployee, PasswordHash: hashed(t, "password123"), IsActive: false},
	}}
	tokens := newFakeTokenRepo()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	require.NoError(t, err)

	svc := NewAuthService(directTx{}, users, jwtService, tokens).(*AuthServiceImpl)
	return svc, users, tokens
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, tokens := setup(t)

	resp, err := svc.Login(context.Background(),
		auth.LoginRequest{LoginID: "emp001", Password: "password123"},
		auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"},
	)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
	assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)
	assert.Equal(t, "EMP001", resp.LoginID)
	assert.Equal(t, "employee", resp.Role)

	stored, ok := tokens.tokens[resp.RefreshToken]
	require.True(t, ok)
	assert.Equal(t, "u-active", stored.userID)
	assert.Equal(t, "127.0.0.1", stored.session.IPAddress)
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, auth.LoginRequest{LoginID: "EMP001", Password: "wrong-password"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{LoginID: "EMP404", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{LoginID: "EMP002", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)

	_, err = svc.Login(ctx, auth.LoginRequest{LoginID: "not-an-id", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.Error(t, err)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{LoginID: "EMP001", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{LoginID: "EMP001", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	assert.ErrorIs(t, svc.Logout(ctx, ""), auth.ErrInvalidToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, users, _ := setup(t)
	ctx := context.Background()
	caller := user.Caller{UserID: "u-active", LoginID: "EMP001", Role: user.RoleEmployee}

	login, err := svc.Login(ctx, auth.LoginRequest{LoginID: "EMP001", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, caller, auth.ChangePasswordRequest{OldPassword: "nope-nope", NewPassword: "new-password-1"})
	assert.ErrorIs(t, err, auth.ErrInvalidOldPassword)

	err = svc.ChangePassword(ctx, caller, auth.ChangePasswordRequest{OldPassword: "password123", NewPassword: "new-password-1"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users["u-active"].PasswordHash), []byte("new-password-1")))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = svc.Login(ctx, auth.LoginRequest{LoginID: "EMP001", Password: "new-password-1"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
}
