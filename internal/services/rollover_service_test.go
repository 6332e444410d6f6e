package services

import (
	"errors"
	"testing"

	"rentroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStartNewMonthAccruesWholePortfolio(t *testing.T) {
	db := newTestDB(t)
	svc := NewRolloverService(db, nil)

	t1 := seedTenant(t, db, 1, 50000, 0)
	t2 := seedTenant(t, db, 1, 70000, -10000)
	short := seedShortTermTenant(t, db, 1, 5000)
	other := seedTenant(t, db, 2, 60000, 0)

	count, err := svc.StartNewMonth(1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var after models.Tenant
	require.NoError(t, db.First(&after, t1.ID).Error)
	assert.Equal(t, int64(50000), after.Balance)

	require.NoError(t, db.First(&after, t2.ID).Error)
	assert.Equal(t, int64(60000), after.Balance)

	// 短租租客月租金为0，走同一批次但余额不变
	require.NoError(t, db.First(&after, short.ID).Error)
	assert.Equal(t, int64(0), after.Balance)

	// 其他房东的租客不受影响
	require.NoError(t, db.First(&after, other.ID).Error)
	assert.Equal(t, int64(0), after.Balance)
}

func TestStartNewMonthNotIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewRolloverService(db, nil)
	tenant := seedTenant(t, db, 1, 50000, 0)

	// 连续触发两次就是两个月的应计，由调用方确认闸门拦截
	_, err := svc.StartNewMonth(1)
	require.NoError(t, err)
	_, err = svc.StartNewMonth(1)
	require.NoError(t, err)

	var after models.Tenant
	require.NoError(t, db.First(&after, tenant.ID).Error)
	assert.Equal(t, int64(100000), after.Balance)
}

func TestStartNewMonthAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewRolloverService(db, nil)

	t1 := seedTenant(t, db, 1, 50000, 0)
	t2 := seedTenant(t, db, 1, 70000, 0)
	t3 := seedTenant(t, db, 1, 90000, 0)

	// 第二次更新注入失败，整批必须回滚
	updates := 0
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("rollover_poison", func(tx *gorm.DB) {
		if tx.Statement.Table == "tenants" {
			updates++
			if updates == 2 {
				tx.AddError(errors.New("storage failure injected"))
			}
		}
	}))
	defer db.Callback().Update().Remove("rollover_poison")

	_, err := svc.StartNewMonth(1)
	require.Error(t, err)

	for _, id := range []uint{t1.ID, t2.ID, t3.ID} {
		var after models.Tenant
		require.NoError(t, db.First(&after, id).Error)
		assert.Equal(t, int64(0), after.Balance, "租客 %d 的余额不应有部分应计", id)
	}
}

func TestStartNewMonthEmptyPortfolio(t *testing.T) {
	db := newTestDB(t)
	svc := NewRolloverService(db, nil)

	count, err := svc.StartNewMonth(42)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
