// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package token signs and verifies the compact HS256 tokens used both as
// session bearer tokens and as single-use action tokens (email verification,
// password reset).
//
// The codec is stateless: single-use semantics come from the fragment (the
// last [FragmentLength] characters of the encoded token) that callers persist
// next to the user record.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FragmentLength is the number of trailing characters of an encoded token
// that are stored as the single-use marker.
const FragmentLength = 20

// NumericDate claims (iat, exp) are encoded with microsecond precision.
// Decoding goes through float64, which stays exact well below a microsecond
// for current epoch values, so a token is valid for its whole TTL.
func init() {
	jwt.TimePrecision = time.Microsecond
}

// Codec mints and verifies tokens with a process-wide secret.
// It is safe for concurrent use; all fields are read-only after construction.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option customizes a [Codec].
type Option func(*Codec)

// WithClock replaces the wall clock used for iat/exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec builds a codec for the given secret and issuer.
// Returns [ErrEmptySecret] when secret is empty.
func NewCodec(secret, issuer string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	c := &Codec{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Mint produces a signed token for subjectID that expires after ttl.
// Expiry is kept to the microsecond.
func (c *Codec) Mint(subjectID int64, purpose Purpose, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}
	if purpose != PurposeSession && !purpose.IsAction() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPurpose, purpose)
	}

	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if purpose != PurposeSession {
		claims.RawPurpose = &purpose
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing token: %w", err)
	}

	return signed, nil
}

// Verify decodes raw and checks its signature, issuer and expiry.
//
// Every failure is a *[RejectedError]. The signature is verified before any
// claim, so an [Expired] rejection still carries authentic claims.
func (c *Codec) Verify(raw string) (Claims, error) {
	claims := Claims{}
	_, err := jwt.ParseWithClaims(raw, &claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		kind := classify(err)
		rejected := &RejectedError{Kind: kind, Err: err}
		if kind == Expired {
			userID, subErr := parseSubject(claims.Subject)
			if subErr != nil {
				return Claims{}, &RejectedError{Kind: Malformed, Err: subErr}
			}
			claims.UserID = userID
			rejected.Claims = claims
		}
		return Claims{}, rejected
	}

	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return Claims{}, &RejectedError{Kind: Malformed, Err: err}
	}
	claims.UserID = userID

	return claims, nil
}

// Fragment returns the last [FragmentLength] characters of raw, or raw
// itself when it is shorter.
func Fragment(raw string) string {
	if len(raw) <= FragmentLength {
		return raw
	}
	return raw[len(raw)-FragmentLength:]
}

func (c *Codec) keyFunc(*jwt.Token) (any, error) {
	return c.secret, nil
}

// classify maps jwt/v5 sentinel errors onto rejection kinds.
// Expired is only reported when no other claim is broken.
func classify(err error) RejectionKind {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Malformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return SignatureInvalid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return Malformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return Expired
	default:
		return Malformed
	}
}

func parseSubject(sub string) (int64, error) {
	if sub == "" {
		return 0, errors.New("empty subject")
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting subject to user id: %w", err)
	}
	return id, nil
}
