package service

import (
	"errors"
	"fmt"
)

// Protocol and gate outcomes.
var (
	// ErrActionTokenRejected is the only error a failed verification or
	// reset completion returns to callers, whatever check failed.
	ErrActionTokenRejected = errors.New("action token rejected")

	// ErrForbidden is returned by the auth gate for a missing, malformed,
	// forged, expired or action-purpose bearer token.
	ErrForbidden = errors.New("forbidden")

	// ErrClientMisuse is returned when the Authorization header repeats the
	// Bearer scheme ("Bearer Bearer <token>").
	ErrClientMisuse = errors.New("authorization header repeats the Bearer scheme; send \"Bearer <token>\"")

	// ErrAuthInternal is returned when authorization fails for a reason
	// unrelated to the presented token.
	ErrAuthInternal = errors.New("authorization failed unexpectedly")

	// ErrMailNotAccepted wraps mailer failures during verification and
	// reset initiation.
	ErrMailNotAccepted = errors.New("mail was not accepted")
)

// Account and listing errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrTokenCreation      = errors.New("token creation failed")
	// ErrPasswordNotWritten is returned when the reset token was consumed
	// but its subject disappeared before the new hash was stored.
	ErrPasswordNotWritten = errors.New("password hash was not written")

	ErrNotOwner      = errors.New("property belongs to another user")
	ErrEmptyUpdate   = errors.New("no fields to update")
	ErrNoPhotos      = errors.New("no photos were provided")
	ErrTooManyPhotos = errors.New("too many photos")
	ErrPhotoType     = errors.New("unsupported photo type")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// TokenErrorKind names the check an action token failed. It is logged but
// never reported to the client.
type TokenErrorKind int

const (
	TokenMalformed TokenErrorKind = iota + 1
	TokenSignatureInvalid
	TokenExpired
	TokenWrongPurpose
	TokenFragmentMismatch
)

func (k TokenErrorKind) String() string {
	switch k {
	case TokenMalformed:
		return "malformed"
	case TokenSignatureInvalid:
		return "signature_invalid"
	case TokenExpired:
		return "expired"
	case TokenWrongPurpose:
		return "wrong_purpose"
	case TokenFragmentMismatch:
		return "fragment_mismatch"
	default:
		return fmt.Sprintf("token_error(%d)", int(k))
	}
}

// TokenError is wrapped inside [ErrActionTokenRejected] so logs and tests
// can tell the rejection reasons apart.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

func rejectToken(kind TokenErrorKind, err error) error {
	return fmt.Errorf("%w: %w", ErrActionTokenRejected, &TokenError{Kind: kind, Err: err})
}

// TokenErrorKindOf returns the kind of the [TokenError] inside err, or 0.
func TokenErrorKindOf(err error) TokenErrorKind {
	var tErr *TokenError
	if errors.As(err, &tErr) {
		return tErr.Kind
	}
	return 0
}
