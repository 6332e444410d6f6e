package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRole(t *testing.T) {
	assert.Equal(t, RoleLandlord, ResolveRole(RoleLandlord))
	assert.Equal(t, RoleTenant, ResolveRole(RoleTenant))
	assert.Equal(t, RoleAdmin, ResolveRole(RoleAdmin))

	// 历史数据没有角色档案时按房东处理
	assert.Equal(t, RoleLandlord, ResolveRole(""))
	assert.Equal(t, RoleLandlord, ResolveRole("manager"))
}

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("Secret@123"))

	assert.NotEqual(t, "Secret@123", user.PasswordHash)
	assert.True(t, user.CheckPassword("Secret@123"))
	assert.False(t, user.CheckPassword("wrong"))
}
