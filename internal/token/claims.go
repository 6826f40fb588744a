package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Purpose restricts which completion endpoint may accept a token.
// Session tokens carry no purpose at all.
type Purpose string

const (
	// PurposeSession marks a general bearer token. It is never serialized.
	PurposeSession Purpose = ""
	// PurposeVerify marks an email verification token.
	PurposeVerify Purpose = "verify"
	// PurposeForgot marks a password reset token.
	PurposeForgot Purpose = "forgot"
)

// IsAction reports whether p is one of the single-use action purposes.
func (p Purpose) IsAction() bool {
	return p == PurposeVerify || p == PurposeForgot
}

// Claims is the payload carried by every token minted by [Codec].
//
// The standard claims hold the subject (user ID as a decimal string),
// issuer, issued-at and expiry. The purpose claim is absent from session
// tokens.
type Claims struct {
	jwt.RegisteredClaims

	// RawPurpose is the "purpose" claim as decoded. Nil when the payload has
	// no purpose field; a present but empty field decodes to a non-nil
	// pointer.
	RawPurpose *Purpose `json:"purpose,omitempty"`

	// UserID is the parsed "sub" claim. Filled by [Codec.Verify].
	UserID int64 `json:"-"`
}

// Purpose returns the purpose claim, or [PurposeSession] when it is absent.
func (c Claims) Purpose() Purpose {
	if c.RawPurpose == nil {
		return PurposeSession
	}
	return *c.RawPurpose
}

// HasPurpose reports whether the payload carried a purpose field at all,
// even an empty one.
func (c Claims) HasPurpose() bool {
	return c.RawPurpose != nil
}
