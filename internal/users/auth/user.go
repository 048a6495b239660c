// Copyright (c) 2026 Cat Café. All rights reserved.

// Package auth implements username/password accounts and login-token
// issuance for the shelter API.
package auth

import "time"

// User is an API account. The password hash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials is the register/login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the login response: the authenticated account plus its bearer token.
type Session struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

// Global field names for validation
const (
	FieldUsername = "username"
	FieldPassword = "password"
)
