package services

import (
	"testing"

	"rentroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNormalizesRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("owner@test.local", "pw123456", "房东", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleLandlord, user.Role)

	user, err = svc.Register("tenant@test.local", "pw123456", "租客", models.RoleTenant)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, user.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register("dup@test.local", "pw123456", "用户", "")
	require.NoError(t, err)

	_, err = svc.Register("dup@test.local", "pw123456", "用户", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register("login@test.local", "pw123456", "用户", "")
	require.NoError(t, err)

	user, token, err := svc.Login("login@test.local", "pw123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.LastLoginAt)

	_, _, err = svc.Login("login@test.local", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("missing@test.local", "pw123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("disabled@test.local", "pw123456", "用户", "")
	require.NoError(t, err)

	require.NoError(t, db.Model(user).UpdateColumn("status", models.UserStatusInactive).Error)

	_, _, err = svc.Login("disabled@test.local", "pw123456")
	assert.ErrorIs(t, err, ErrUserDisabled)
}
