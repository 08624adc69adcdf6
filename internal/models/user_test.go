package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedPasswordAfter(t *testing.T) {
	now := time.Now()

	t.Run("never changed", func(t *testing.T) {
		user := &User{}
		assert.False(t, user.ChangedPasswordAfter(now))
	})

	t.Run("token issued before change", func(t *testing.T) {
		changed := now
		user := &User{PasswordChangedAt: &changed}
		assert.True(t, user.ChangedPasswordAfter(now.Add(-time.Hour)))
	})

	t.Run("token issued after change", func(t *testing.T) {
		changed := now.Add(-time.Hour)
		user := &User{PasswordChangedAt: &changed}
		assert.False(t, user.ChangedPasswordAfter(now))
	})

	t.Run("same second counts as not stale", func(t *testing.T) {
		changed := now
		user := &User{PasswordChangedAt: &changed}
		assert.False(t, user.ChangedPasswordAfter(now))
	})
}

func TestUser_JSONHidesCredentials(t *testing.T) {
	changed := time.Now()
	exp := time.Now().Add(10 * time.Minute)
	user := &User{
		Name:              "Leo",
		Email:             "leo@example.com",
		Role:              RoleUser,
		PasswordHash:      "$2a$12$secret",
		PasswordChangedAt: &changed,
		ResetTokenHash:    "aabbcc",
		ResetTokenExp:     &exp,
		Active:            true,
	}

	payload, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(payload, &fields))

	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "password_changed_at")
	assert.NotContains(t, fields, "password_reset_token")
	assert.NotContains(t, fields, "password_reset_expires")
	assert.NotContains(t, fields, "active")
	assert.NotContains(t, string(payload), "secret")
	assert.Equal(t, "leo@example.com", fields["email"])
}

func TestUserRole_IsValid(t *testing.T) {
	for _, role := range []UserRole{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin} {
		assert.True(t, role.IsValid(), string(role))
	}
	assert.False(t, UserRole("superadmin").IsValid())
	assert.False(t, UserRole("").IsValid())
}
