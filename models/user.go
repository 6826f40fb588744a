// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents a marketplace account. It is the single row owned by the
// credential store; the action-token protocol mutates it only through the
// store interface.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Assigned by the database at creation and never reused.
	UserID int64 `json:"-"`

	// Username is the unique, immutable account name used to log in.
	Username string `json:"username"`

	// Email is the address verification and reset links are sent to.
	Email string `json:"email"`

	// Password carries the plain-text password on the way in (registration,
	// login). It is never persisted and never serialized back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	// EmailVerified flips from false to true exactly once, through the
	// verification flow.
	EmailVerified bool `json:"-"`

	// TokenFragment is the suffix of the single outstanding action token.
	// Nil when no action token is outstanding.
	TokenFragment *string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Principal is the authenticated identity derived from a valid session
// token and exposed to downstream handlers.
type Principal struct {
	UserID int64
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token string `json:"token"`
}

// UserDetails holds the public contact card of a user.
type UserDetails struct {
	UserID    int64   `json:"userId"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	FbLink    *string `json:"fbLink"`
	InstaLink *string `json:"instaLink"`
	TwitLink  *string `json:"twitLink"`
}
