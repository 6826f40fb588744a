// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while reading requests. Callers can match against
// them with [errors.Is].
var (
	// ErrInvalidJSON is returned when the request body is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidMultipart is returned when a photo upload is not a readable
	// multipart form.
	ErrInvalidMultipart = errors.New("invalid multipart form")

	// ErrUploadTooLarge is returned when a photo upload exceeds the
	// configured size limit.
	ErrUploadTooLarge = errors.New("upload is too large")

	// ErrNoPrincipal is returned when a protected handler runs without an
	// authorized user in its context.
	ErrNoPrincipal = errors.New("no authorized user in request context")
)

// bearerMisuseHint is sent with 400 when the client repeats the Bearer
// scheme, which Swagger UI does when the scheme is typed into its dialog.
const bearerMisuseHint = "Hello Swagger user (hopefully you're seeing this while using Swagger). " +
	"Please, in the 'Authenticate' dialog box put only the token without the 'Bearer' thing, " +
	"Swagger adds it automatically. Thank you and have a good day!"
