// Copyright (c) 2026 Cat Café. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/platform/constants"
	"github.com/catcafe/catcafe/internal/platform/sec"
	"github.com/catcafe/catcafe/internal/platform/validate"
	"github.com/catcafe/catcafe/pkg/uuid"
)

// TokenProvider issues signed access tokens for authenticated accounts.
type TokenProvider interface {
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

type Service struct {
	users    UserRepository
	throttle ThrottleRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

func NewService(users UserRepository, throttle ThrottleRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		throttle: throttle,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (service *Service) Register(ctx context.Context, credentials Credentials) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, credentials.Username).MaxLen(FieldUsername, credentials.Username, 50)
	validator.Required(FieldPassword, credentials.Password).MinLen(FieldPassword, credentials.Password, 8)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Fast path; the unique index on users.username settles concurrent races.
	if err := service.ensureUsernameFree(ctx, credentials.Username); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(credentials.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     credentials.Username,
		PasswordHash: hash,
	}
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies the credentials and issues a signed access token. Unknown
// usernames and wrong passwords produce the same error so the endpoint does
// not leak which usernames exist.
func (service *Service) Login(ctx context.Context, credentials Credentials) (*Session, error) {
	failures, err := service.throttle.Failures(ctx, credentials.Username)
	if err != nil {
		return nil, err
	}
	if failures >= constants.LoginMaxAttempts {
		return nil, apperr.RateLimited(int(constants.LoginThrottleTTL.Seconds()))
	}

	user, err := service.authenticate(ctx, credentials)
	if err != nil {
		if apperr.IsCode(err, "UNAUTHORIZED") {
			if _, recordErr := service.throttle.RecordFailure(ctx, credentials.Username); recordErr != nil {
				service.logger.Error("login_throttle_record_failed", slog.String("error", recordErr.Error()))
			}
		}
		return nil, err
	}

	if err := service.throttle.Reset(ctx, credentials.Username); err != nil {
		service.logger.Error("login_throttle_reset_failed", slog.String("error", err.Error()))
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return &Session{User: user, AccessToken: token}, nil
}

// CurrentUser resolves the account behind a verified token's user id.
func (service *Service) CurrentUser(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// authenticate resolves the account and checks the password.
func (service *Service) authenticate(ctx context.Context, credentials Credentials) (*User, error) {
	user, err := service.users.FindByUsername(ctx, credentials.Username)
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			return nil, apperr.Unauthorized("Invalid username or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(credentials.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	return user, nil
}

func (service *Service) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := service.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return apperr.Conflict("Username already exists")
	case apperr.IsCode(err, "NOT_FOUND"):
		return nil
	default:
		return err
	}
}
