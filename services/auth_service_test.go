package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	fullName := "Grace Field"
	user, err := Register(dto.RegisterRequest{
		Email:    "grace@example.com",
		Password: "correct horse",
		FullName: &fullName,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, user.Role)
	assert.NotEqual(t, "correct horse", user.Password, "password must be stored hashed")

	// Duplicate email is rejected
	_, err = Register(dto.RegisterRequest{Email: "grace@example.com", Password: "another"})
	require.Error(t, err)

	resp, err := Login(dto.LoginRequest{Email: "grace@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.Password)

	_, err = Login(dto.LoginRequest{Email: "grace@example.com", Password: "wrong"})
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, _, err := GenerateToken("user-1", "grace@example.com", "viewer")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "grace@example.com", claims.Email)
	assert.Equal(t, "viewer", claims.Role)

	_, err = ValidateToken(token + "tampered")
	require.Error(t, err)
}
