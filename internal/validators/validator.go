// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/go-playground/validator/v10"
)

type structValidator struct {
	validate *validator.Validate
}

// NewValidator returns a [Validator] backed by go-playground/validator that
// reports fields by their JSON names.
func NewValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(fmt.Sprintf("register maxbytes validation: %v", err))
	}

	return &structValidator{validate: v}
}

// Validate checks value (a struct or a pointer to one). When fields are
// given, only those top-level Go field names are checked.
func (s *structValidator) Validate(ctx context.Context, value any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = s.validate.StructPartialCtx(ctx, value, fields...)
	} else {
		err = s.validate.StructCtx(ctx, value)
	}
	if err == nil {
		return nil
	}

	var invalidArg *validator.InvalidValidationError
	if errors.As(err, &invalidArg) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := &ValidationError{Invalid: []string{}, Missing: []string{}}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			result.Missing = append(result.Missing, fe.Field())
			continue
		}
		result.Invalid = append(result.Invalid, fe.Field())
	}

	logger.FromContext(ctx).Debug().
		Strs("invalid", result.Invalid).
		Strs("missing", result.Missing).
		Msg("payload rejected by validator")

	return result
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// maxBytes checks the byte length of a string field. The stock max tag
// counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return len(fl.Field().String()) <= limit
}
