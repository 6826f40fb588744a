// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import (
	"errors"
	"fmt"
)

// Construction and minting errors.
var (
	// ErrEmptySecret is returned by [NewCodec] when no signing secret is configured.
	ErrEmptySecret = errors.New("token sign key is empty")

	// ErrInvalidTTL is returned by [Codec.Mint] for a non-positive lifetime.
	ErrInvalidTTL = errors.New("token ttl must be positive")

	// ErrUnknownPurpose is returned by [Codec.Mint] for a purpose other than
	// session, verify or forgot.
	ErrUnknownPurpose = errors.New("unknown token purpose")
)

// RejectionKind tells why [Codec.Verify] refused a token.
type RejectionKind int

const (
	// Malformed covers anything that cannot be decoded into valid claims:
	// wrong segment count, broken base64, bad JSON, wrong issuer, missing or
	// non-numeric subject.
	Malformed RejectionKind = iota + 1
	// SignatureInvalid means the signature does not match the secret, or the
	// header names an algorithm other than HS256.
	SignatureInvalid
	// Expired means the signature is authentic but the expiry has passed.
	Expired
)

// String returns the kind name used in logs.
func (k RejectionKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case SignatureInvalid:
		return "signature_invalid"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("rejection(%d)", int(k))
	}
}

// RejectedError is the only error type returned by [Codec.Verify].
//
// When Kind is [Expired] the signature has already been checked, so Claims
// holds the authentic subject and purpose. For other kinds Claims is zero.
type RejectedError struct {
	Kind   RejectionKind
	Claims Claims
	Err    error
}

func (e *RejectedError) Error() string {
	if e.Err == nil {
		return "token rejected: " + e.Kind.String()
	}
	return "token rejected: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// KindOf returns the rejection kind wrapped in err, or 0 when err is not a
// [RejectedError].
func KindOf(err error) RejectionKind {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Kind
	}
	return 0
}
