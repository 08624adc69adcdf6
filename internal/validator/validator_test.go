package validator

import (
	"testing"

	"bookstore_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	return vErr.Errors
}

func TestValidate_SignupRequest(t *testing.T) {
	v := New()

	valid := &dto.SignupRequest{
		Name:            "Leo",
		Email:           "leo@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	}
	assert.NoError(t, v.Validate(valid))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	errs := validationErrors(t, v.Validate(&dto.SignupRequest{}))

	// JSON names, not Go struct field names.
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "passwordConfirm")
	assert.NotContains(t, errs, "Name")
}

func TestValidate_EmailFormat(t *testing.T) {
	v := New()

	errs := validationErrors(t, v.Validate(&dto.SignupRequest{
		Name:            "Leo",
		Email:           "not-an-email",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	}))
	assert.Equal(t, "Must be a valid email address", errs["email"])
}

func TestValidate_PasswordRules(t *testing.T) {
	v := New()

	t.Run("too short", func(t *testing.T) {
		errs := validationErrors(t, v.Validate(&dto.SignupRequest{
			Name:            "Leo",
			Email:           "leo@example.com",
			Password:        "short",
			PasswordConfirm: "short",
		}))
		assert.Equal(t, "Must be at least 8 characters long", errs["password"])
	})

	t.Run("confirm mismatch", func(t *testing.T) {
		errs := validationErrors(t, v.Validate(&dto.SignupRequest{
			Name:            "Leo",
			Email:           "leo@example.com",
			Password:        "pass1234",
			PasswordConfirm: "pass9999",
		}))
		assert.Equal(t, "Passwords are not the same", errs["passwordConfirm"])
	})
}

func TestValidate_UserRoleRule(t *testing.T) {
	v := New()

	type payload struct {
		Role string `json:"role" validate:"is-user-role"`
	}

	assert.NoError(t, v.Validate(&payload{Role: "admin"}))
	assert.NoError(t, v.Validate(&payload{Role: "lead-guide"}))
	assert.NoError(t, v.Validate(&payload{Role: ""}))

	errs := validationErrors(t, v.Validate(&payload{Role: "superadmin"}))
	assert.Equal(t, "Must be a valid user role", errs["role"])
}
