// Copyright (c) 2026 Cat Café. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/platform/constants"
	"github.com/catcafe/catcafe/internal/users/auth"
)

// -------------------------
// Test doubles
// -------------------------

type testUserRepo struct {
	byUsername map[string]*auth.User
}

func newTestUserRepo() *testUserRepo {
	return &testUserRepo{byUsername: map[string]*auth.User{}}
}

func (r *testUserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	for _, u := range r.byUsername {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *testUserRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *u
	return &copied, nil
}

func (r *testUserRepo) Create(ctx context.Context, user *auth.User) error {
	if _, ok := r.byUsername[user.Username]; ok {
		return apperr.Conflict("Username already exists")
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.byUsername[user.Username] = &copied
	return nil
}

type testThrottle struct {
	counts map[string]int64
}

func newTestThrottle() *testThrottle {
	return &testThrottle{counts: map[string]int64{}}
}

func (t *testThrottle) RecordFailure(ctx context.Context, username string) (int64, error) {
	t.counts[username]++
	return t.counts[username], nil
}

func (t *testThrottle) Failures(ctx context.Context, username string) (int64, error) {
	return t.counts[username], nil
}

func (t *testThrottle) Reset(ctx context.Context, username string) error {
	delete(t.counts, username)
	return nil
}

// testTokens issues predictable token strings.
type testTokens struct{}

func (testTokens) GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error) {
	return fmt.Sprintf("token-for-%s", username), nil
}

func newTestService(users *testUserRepo, throttle *testThrottle) *auth.Service {
	return auth.NewService(users, throttle, testTokens{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// -------------------------
// Tests
// -------------------------

func TestRegister(t *testing.T) {
	users := newTestUserRepo()
	service := newTestService(users, newTestThrottle())

	user, err := service.Register(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash, "password must be stored hashed")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := newTestUserRepo()
	service := newTestService(users, newTestThrottle())

	_, err := service.Register(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.Credentials{Username: "alice", Password: "different1"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CONFLICT"))
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name        string
		credentials auth.Credentials
	}{
		{"missing_username", auth.Credentials{Password: "secret123"}},
		{"missing_password", auth.Credentials{Username: "alice"}},
		{"short_password", auth.Credentials{Username: "alice", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newTestUserRepo(), newTestThrottle())

			_, err := service.Register(context.Background(), tt.credentials)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
		})
	}
}

func TestLogin(t *testing.T) {
	users := newTestUserRepo()
	service := newTestService(users, newTestThrottle())

	_, err := service.Register(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "token-for-alice", session.AccessToken)
	assert.Equal(t, "alice", session.User.Username)
}

// Unknown usernames and wrong passwords must be indistinguishable to the caller.
func TestLogin_UniformUnauthorized(t *testing.T) {
	users := newTestUserRepo()
	service := newTestService(users, newTestThrottle())

	_, err := service.Register(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), auth.Credentials{Username: "nobody", Password: "secret123"})
	require.Error(t, unknownErr)

	_, wrongErr := service.Login(context.Background(), auth.Credentials{Username: "alice", Password: "wrong-pass"})
	require.Error(t, wrongErr)

	assert.True(t, apperr.IsCode(unknownErr, "UNAUTHORIZED"))
	assert.True(t, apperr.IsCode(wrongErr, "UNAUTHORIZED"))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestCurrentUser(t *testing.T) {
	users := newTestUserRepo()
	service := newTestService(users, newTestThrottle())

	registered, err := service.Register(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	user, err := service.CurrentUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = service.CurrentUser(context.Background(), "ghost-id")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestLogin_ThrottleLockout(t *testing.T) {
	users := newTestUserRepo()
	throttle := newTestThrottle()
	service := newTestService(users, throttle)

	_, err := service.Register(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	for i := 0; i < constants.LoginMaxAttempts; i++ {
		_, err := service.Login(context.Background(), auth.Credentials{Username: "alice", Password: "wrong-pass"})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
	}

	// Even the right password is rejected while the counter is saturated.
	_, err = service.Login(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "RATE_LIMITED"))
}

func TestLogin_SuccessResetsThrottle(t *testing.T) {
	users := newTestUserRepo()
	throttle := newTestThrottle()
	service := newTestService(users, throttle)

	_, err := service.Register(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	for i := 0; i < constants.LoginMaxAttempts-1; i++ {
		_, err := service.Login(context.Background(), auth.Credentials{Username: "alice", Password: "wrong-pass"})
		require.Error(t, err)
	}

	_, err = service.Login(context.Background(), auth.Credentials{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	failures, err := throttle.Failures(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, failures)
}
