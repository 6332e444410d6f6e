package services

import (
	"testing"

	"rentroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)
	ledger := NewLedgerService(db, nil)

	t1 := seedTenant(t, db, 1, 50000, 50000)
	seedTenant(t, db, 1, 70000, -10000)
	seedShortTermTenant(t, db, 1, 5000)
	seedTenant(t, db, 2, 90000, 90000) // 其他房东

	_, _, err := ledger.ApplyPayment(t1.ID, 20000, models.MethodCash)
	require.NoError(t, err)

	stats, err := svc.GetDashboard(1)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TenantCount)
	assert.Equal(t, int64(120000), stats.MonthlyRentRoll)
	// 只有正余额计入欠款
	assert.Equal(t, int64(30000), stats.Outstanding)
	assert.Equal(t, int64(20000), stats.RevenueThisMonth)
}

func TestGetAdminOverview(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	user := &models.User{Email: "l@test.local", Name: "房东", Role: models.RoleLandlord, Status: models.UserStatusActive}
	require.NoError(t, user.SetPassword("pw123456"))
	require.NoError(t, db.Create(user).Error)

	seedTenant(t, db, user.ID, 50000, 0)
	seedApplication(t, db, nil)

	overview, err := svc.GetAdminOverview()
	require.NoError(t, err)

	assert.Equal(t, int64(1), overview.UserCount)
	assert.Equal(t, int64(1), overview.LandlordCount)
	assert.Equal(t, int64(1), overview.TenantCount)
	assert.Equal(t, int64(1), overview.UnassignedApps)
}
