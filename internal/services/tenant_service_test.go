package services

import (
	"testing"

	"rentroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTenantInitialBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)

	// 直接录入的长租租客：入住当月即产生一期应收
	longTerm := &models.Tenant{
		OwnerID:     1,
		Name:        "长租租客",
		Unit:        "A-101",
		Type:        models.TenantTypeLongTerm,
		MonthlyRent: 60000,
	}
	require.NoError(t, svc.Create(longTerm))
	assert.Equal(t, int64(60000), longTerm.Balance)

	// 短租租客初始余额为0
	shortTerm := &models.Tenant{
		OwnerID:   1,
		Name:      "短租租客",
		Unit:      "B-202",
		Type:      models.TenantTypeShortTerm,
		DailyRate: 5000,
	}
	require.NoError(t, svc.Create(shortTerm))
	assert.Equal(t, int64(0), shortTerm.Balance)
}

func TestCreateTenantDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)

	tenant := &models.Tenant{OwnerID: 1, Name: "租客", Unit: "A-102"}
	require.NoError(t, svc.Create(tenant))
	assert.Equal(t, models.TenantTypeLongTerm, tenant.Type)
	assert.Equal(t, models.TenantStatusOccupied, tenant.Status)
}

func TestUpdateTenantProtectedFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	// 余额和租约字段不接受直接更新
	updated, err := svc.Update(1, tenant.ID, map[string]interface{}{
		"name":    "改名租客",
		"balance": int64(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "改名租客", updated.Name)
	assert.Equal(t, int64(50000), updated.Balance)

	_, err = svc.Update(1, tenant.ID, map[string]interface{}{"balance": int64(0)})
	assert.Error(t, err)
}

func TestUpdateTenantScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)
	tenant := seedTenant(t, db, 1, 50000, 0)

	_, err := svc.Update(2, tenant.ID, map[string]interface{}{"name": "越权"})
	assert.ErrorIs(t, err, ErrTenantMissing)
}

func TestDeleteTenantRemovesPayments(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)
	ledger := NewLedgerService(db, nil)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	_, _, err := ledger.ApplyPayment(tenant.ID, 10000, models.MethodCash)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(1, tenant.ID))

	var paymentCount int64
	require.NoError(t, db.Model(&models.Payment{}).Where("tenant_id = ?", tenant.ID).Count(&paymentCount).Error)
	assert.Equal(t, int64(0), paymentCount)
}

func TestGetByEmailLoadsPayments(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)
	ledger := NewLedgerService(db, nil)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	_, _, err := ledger.ApplyPayment(tenant.ID, 10000, models.MethodCash)
	require.NoError(t, err)

	found, err := svc.GetByEmail(tenant.Email)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, found.ID)
	assert.Len(t, found.Payments, 1)
}

func TestCheckOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewTenantService(db)
	tenant := seedTenant(t, db, 1, 50000, 0)

	assert.NoError(t, svc.CheckOwnership(1, tenant.ID))
	assert.ErrorIs(t, svc.CheckOwnership(2, tenant.ID), ErrTenantMissing)
}
