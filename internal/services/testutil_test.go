package services

import (
	"fmt"
	"testing"

	"rentroll/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试使用独立的内存数据库
// 单连接串行化事务，避免sqlite共享缓存下的锁冲突
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Tenant{},
		&models.Payment{},
		&models.RentalApplication{},
		&models.ChargeIntent{},
		&models.Listing{},
		&models.Expense{},
		&models.RepairRequest{},
	))

	return db
}

// seedTenant 插入一个长租租客
func seedTenant(t *testing.T, db *gorm.DB, ownerID uint, monthlyRent, balance int64) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		OwnerID:     ownerID,
		Name:        "测试租客",
		Email:       fmt.Sprintf("%s@test.local", uuid.NewString()[:8]),
		Unit:        "A-101",
		Type:        models.TenantTypeLongTerm,
		Status:      models.TenantStatusOccupied,
		MonthlyRent: monthlyRent,
		Balance:     balance,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// seedShortTermTenant 插入一个短租租客
func seedShortTermTenant(t *testing.T, db *gorm.DB, ownerID uint, dailyRate int64) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		OwnerID:   ownerID,
		Name:      "短租租客",
		Email:     fmt.Sprintf("%s@test.local", uuid.NewString()[:8]),
		Unit:      "B-201",
		Type:      models.TenantTypeShortTerm,
		Status:    models.TenantStatusCleaning,
		DailyRate: dailyRate,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}
