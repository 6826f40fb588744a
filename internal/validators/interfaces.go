// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the service
// layer.
//
// Validation rules live in `validate` struct tags on the request models and
// are enforced by go-playground/validator. Failures are reported as a
// [*ValidationError] that separates missing fields from invalid ones, using
// the JSON names the client sent.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
