package services

import (
	"testing"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, user, err := svc.Register(&dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role, "registration never grants elevated roles")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)

	// Stored password must be a hash, never the plaintext.
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "correct-horse", stored.Password)

	_, _, err = svc.Login(&dto.LoginRequest{Email: "new@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = svc.Login(&dto.LoginRequest{Email: "new@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())

	_, _, err := svc.Register(&dto.RegisterRequest{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, _, err = svc.Register(&dto.RegisterRequest{Email: "a@b.c", Password: "long-enough"})
	require.NoError(t, err)
	_, _, err = svc.Register(&dto.RegisterRequest{Email: "a@b.c", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Register(&dto.RegisterRequest{Email: "c@d.e", Username: "taken", Password: "long-enough"})
	require.NoError(t, err)
	_, _, err = svc.Register(&dto.RegisterRequest{Email: "f@g.h", Username: "taken", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestInactiveUserCannotLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, user, err := svc.Register(&dto.RegisterRequest{Email: "off@example.com", Password: "long-enough"})
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, _, err = svc.Login(&dto.LoginRequest{Email: "off@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	first, _, err := svc.Register(&dto.RegisterRequest{Email: "r@example.com", Password: "long-enough"})
	require.NoError(t, err)

	second, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The presented token is burned: replaying it fails.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: "forged"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, _, err := svc.Register(&dto.RegisterRequest{Email: "bye@example.com", Password: "long-enough"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
