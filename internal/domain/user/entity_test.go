//go:build unit

package user_test

import (
	"testing"

	"rentfleet/internal/domain/user"
	"rentfleet/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "plain address", input: "client@example.com", valid: true},
		{name: "address with plus tag", input: "client+tag@example.com", valid: true},
		{name: "surrounding whitespace is trimmed", input: "  client@example.com  ", valid: true},
		{name: "missing at sign", input: "client.example.com", valid: false},
		{name: "missing domain", input: "client@", valid: false},
		{name: "missing tld", input: "client@example", valid: false},
		{name: "empty string", input: "", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := user.NewEmail(tc.input)
			if tc.valid {
				require.NoError(t, err)
				assert.NotEmpty(t, email.Value())
			} else {
				assert.ErrorIs(t, err, user.ErrInvalidEmail)
			}
		})
	}
}

func TestNewPassword(t *testing.T) {
	t.Run("minimum length", func(t *testing.T) {
		_, err := user.NewPassword("12345678")
		assert.NoError(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := user.NewPassword("1234567")
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"client", "renter", "admin"} {
		role, err := user.NewRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, role.String())
	}

	_, err := user.NewRole("superuser")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestNewUser(t *testing.T) {
	u, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "client@example.com", u.Email().Value())
	assert.Equal(t, user.RoleClient, u.Role())
	assert.True(t, u.IsActive(), "new accounts start active")
	assert.Nil(t, u.LastLogin())
}
