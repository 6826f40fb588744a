package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/fast-home/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Register(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name        string
		req         models.RegisterRequest
		wantInvalid []string
		wantMissing []string
	}{
		{
			name: "valid",
			req:  models.RegisterRequest{Username: "testuser", Email: "test@example.net", Password: "testpass"},
		},
		{
			name:        "missing password",
			req:         models.RegisterRequest{Username: "testuser", Email: "test@example.net"},
			wantInvalid: []string{},
			wantMissing: []string{"password"},
		},
		{
			name:        "invalid email and missing username",
			req:         models.RegisterRequest{Email: "not-an-email", Password: "testpass"},
			wantInvalid: []string{"email"},
			wantMissing: []string{"username"},
		},
		{
			name: "72 ascii bytes",
			req:  models.RegisterRequest{Username: "testuser", Email: "test@example.net", Password: strings.Repeat("a", 72)},
		},
		{
			name:        "72 runes over 72 bytes",
			req:         models.RegisterRequest{Username: "testuser", Email: "test@example.net", Password: strings.Repeat("é", 72)},
			wantInvalid: []string{"password"},
			wantMissing: []string{},
		},
		{
			name:        "short password",
			req:         models.RegisterRequest{Username: "testuser", Email: "test@example.net", Password: "short"},
			wantInvalid: []string{"password"},
			wantMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantInvalid == nil && tt.wantMissing == nil {
				assert.NoError(t, err)
				return
			}

			vErr, ok := AsValidationError(err)
			require.True(t, ok, "expected *ValidationError, got %v", err)
			assert.Equal(t, tt.wantInvalid, vErr.Invalid)
			assert.Equal(t, tt.wantMissing, vErr.Missing)
		})
	}
}

func TestValidate_PropertyUpdate(t *testing.T) {
	v := NewValidator()
	price := -1.0
	floors := int64(2)

	err := v.Validate(context.Background(), &models.PropertyUpdate{Price: &price, FloorAmount: &floors})
	vErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"price"}, vErr.Invalid)
	assert.Empty(t, vErr.Missing)

	assert.NoError(t, v.Validate(context.Background(), models.PropertyUpdate{FloorAmount: &floors}))
}

func TestValidate_Filters(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(context.Background(), models.PropertyFilters{Bedrooms: 5, Order: models.SortPriceAsc}))

	err := v.Validate(context.Background(), models.PropertyFilters{Bathrooms: 7, Order: "cheapest"})
	vErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"bathrooms", "order"}, vErr.Invalid)
}

func TestValidate_Partial(t *testing.T) {
	v := NewValidator()

	err := v.Validate(context.Background(), models.RegisterRequest{Email: "bad"}, "Password")
	vErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"password"}, vErr.Missing)
	assert.Empty(t, vErr.Invalid)
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Invalid: []string{"email"}, Missing: []string{"username"}}
	assert.Equal(t, "validation failed: invalid [email]: missing [username]", err.Error())
}

func TestValidate_ResetPasswordByteLength(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		password  string
		wantValid bool
	}{
		{"ascii at limit", strings.Repeat("x", 72), true},
		{"ascii over limit", strings.Repeat("x", 73), false},
		{"two-byte runes at 72 bytes", strings.Repeat("é", 36), true},
		{"two-byte runes over 72 bytes", strings.Repeat("é", 37), false},
		{"four-byte runes", strings.Repeat("🏠", 19), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), models.ResetRequest{Password: tt.password})
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}
			vErr, ok := AsValidationError(err)
			require.True(t, ok, "expected *ValidationError, got %v", err)
			assert.Equal(t, []string{"password"}, vErr.Invalid)
		})
	}
}
