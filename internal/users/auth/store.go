// Copyright (c) 2026 Cat Café. All rights reserved.

package auth

import "context"

// UserRepository defines the data access contract for API accounts.
type UserRepository interface {
	// FindByID returns the account with the given id.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new account. The caller sets the id and hash.
	Create(ctx context.Context, user *User) error
}

// ThrottleRepository tracks failed login attempts per username in volatile
// storage; counters expire on their own.
type ThrottleRepository interface {
	// RecordFailure increments the failure counter and returns its new value.
	RecordFailure(ctx context.Context, username string) (int64, error)

	// Failures returns the current counter without touching it.
	Failures(ctx context.Context, username string) (int64, error)

	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}
