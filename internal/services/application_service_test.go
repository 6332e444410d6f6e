package services

import (
	"errors"
	"testing"

	"rentroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedApplication(t *testing.T, db *gorm.DB, ownerID *uint) *models.RentalApplication {
	t.Helper()
	app := &models.RentalApplication{
		OwnerID:     ownerID,
		Name:        "申请人",
		Email:       "applicant@test.local",
		Phone:       "0700000000",
		Income:      1200000,
		DesiredUnit: "C-303",
		Status:      models.ApplicationStatusPending,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func TestApproveCreatesTenantAndDeletesApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nil)
	ownerID := uint(5)
	app := seedApplication(t, db, &ownerID)

	// 批准人与申请原归属可以不同，新租客归批准人
	tenant, err := svc.Approve(app.ID, 9)
	require.NoError(t, err)

	assert.Equal(t, uint(9), tenant.OwnerID)
	assert.Equal(t, "申请人", tenant.Name)
	assert.Equal(t, "C-303", tenant.Unit)
	assert.Equal(t, models.TenantTypeLongTerm, tenant.Type)
	assert.Equal(t, models.TenantStatusOccupied, tenant.Status)
	assert.Equal(t, int64(0), tenant.MonthlyRent)
	assert.Equal(t, int64(0), tenant.Balance)

	var count int64
	require.NoError(t, db.Model(&models.RentalApplication{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestApproveRollsBackWhenTenantCreateFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nil)
	ownerID := uint(5)
	app := seedApplication(t, db, &ownerID)

	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("approve_poison", func(tx *gorm.DB) {
		if tx.Statement.Table == "tenants" {
			tx.AddError(errors.New("storage failure injected"))
		}
	}))
	defer db.Callback().Create().Remove("approve_poison")

	_, err := svc.Approve(app.ID, 9)
	require.Error(t, err)

	// 失败时申请保持待处理，没有半个租客
	var appCount, tenantCount int64
	require.NoError(t, db.Model(&models.RentalApplication{}).Count(&appCount).Error)
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenantCount).Error)
	assert.Equal(t, int64(1), appCount)
	assert.Equal(t, int64(0), tenantCount)
}

func TestApproveMissingApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nil)

	_, err := svc.Approve(999, 1)
	assert.ErrorIs(t, err, ErrApplicationMissing)
}

func TestRejectDeletesApplicationOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nil)
	ownerID := uint(5)
	app := seedApplication(t, db, &ownerID)

	require.NoError(t, svc.Reject(app.ID))

	var appCount, tenantCount int64
	require.NoError(t, db.Model(&models.RentalApplication{}).Count(&appCount).Error)
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenantCount).Error)
	assert.Equal(t, int64(0), appCount)
	assert.Equal(t, int64(0), tenantCount)

	assert.ErrorIs(t, svc.Reject(app.ID), ErrApplicationMissing)
}

func TestAssignUnassignedApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nil)
	app := seedApplication(t, db, nil)

	unassigned, err := svc.GetUnassigned()
	require.NoError(t, err)
	require.Len(t, unassigned, 1)

	require.NoError(t, svc.Assign(app.ID, 3))

	var after models.RentalApplication
	require.NoError(t, db.First(&after, app.ID).Error)
	require.NotNil(t, after.OwnerID)
	assert.Equal(t, uint(3), *after.OwnerID)

	// 已分配的申请不能再次归档
	assert.ErrorIs(t, svc.Assign(app.ID, 4), ErrApplicationMissing)
}
