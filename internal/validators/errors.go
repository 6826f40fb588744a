package validators

import (
	"errors"
	"strings"
)

var ErrUnsupportedType = errors.New("unsupported type for validation")

// ValidationError lists the offending fields of a payload by their JSON
// names. A field is missing when it was absent or zero and the rule
// requires it; every other failed rule makes it invalid.
type ValidationError struct {
	Invalid []string `json:"invalid"`
	Missing []string `json:"missing"`
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	if len(e.Invalid) > 0 {
		b.WriteString(": invalid [")
		b.WriteString(strings.Join(e.Invalid, ", "))
		b.WriteString("]")
	}
	if len(e.Missing) > 0 {
		b.WriteString(": missing [")
		b.WriteString(strings.Join(e.Missing, ", "))
		b.WriteString("]")
	}
	return b.String()
}

// AsValidationError unwraps err to a [*ValidationError].
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
