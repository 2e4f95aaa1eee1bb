package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute)

	token, err := manager.GenerateAccessToken("user-123", "alice@example.com", RoleOwner)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, string(RoleOwner), claims.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute)
	other := NewJWTManager("other-secret", 15*time.Minute)

	token, err := manager.GenerateAccessToken("user-123", "alice@example.com", RoleUser)
	require.NoError(t, err)

	_, err = other.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateAccessToken("user-123", "alice@example.com", RoleUser)
	require.NoError(t, err)

	_, err = manager.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"user", "owner", "admin"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, Role(valid), role)
	}
	for _, invalid := range []string{"", "superadmin", "Owner", "USER"} {
		_, ok := ParseRole(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestIsManager(t *testing.T) {
	assert.False(t, Actor{Role: RoleUser}.IsManager())
	assert.True(t, Actor{Role: RoleOwner}.IsManager())
	assert.True(t, Actor{Role: RoleAdmin}.IsManager())
}
