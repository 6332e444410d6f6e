package services

import (
	"sync"
	"testing"

	"rentroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPayment(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db, nil)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	updated, payment, err := svc.ApplyPayment(tenant.ID, 20000, models.MethodCash)
	require.NoError(t, err)

	assert.Equal(t, int64(30000), updated.Balance)
	assert.Equal(t, int64(20000), payment.Amount)
	assert.Equal(t, models.MethodCash, payment.Method)
	assert.Equal(t, tenant.OwnerID, payment.OwnerID)

	// 付款记录与余额变更同时落库
	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("tenant_id = ?", tenant.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyPaymentOverpayGoesNegative(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db, nil)
	tenant := seedTenant(t, db, 1, 50000, 10000)

	// 超额付款产生信用余额，不做拦截
	updated, _, err := svc.ApplyPayment(tenant.ID, 30000, models.MethodCash)
	require.NoError(t, err)
	assert.Equal(t, int64(-20000), updated.Balance)
}

func TestApplyPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db, nil)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	for _, amount := range []int64{0, -100} {
		_, _, err := svc.ApplyPayment(tenant.ID, amount, models.MethodCash)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	// 被拒的调用不留任何痕迹
	var tenantAfter models.Tenant
	require.NoError(t, db.First(&tenantAfter, tenant.ID).Error)
	assert.Equal(t, int64(50000), tenantAfter.Balance)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestApplyPaymentMissingTenant(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db, nil)

	_, _, err := svc.ApplyPayment(999, 10000, models.MethodCash)
	assert.ErrorIs(t, err, ErrTenantMissing)
}

func TestApplyPaymentConcurrent(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db, nil)
	tenant := seedTenant(t, db, 1, 0, 1000)

	// 两笔并发付款都必须生效，余额不丢失更新
	amounts := []int64{100, 200}
	var wg sync.WaitGroup
	errs := make([]error, len(amounts))
	for i, amount := range amounts {
		wg.Add(1)
		go func(i int, amount int64) {
			defer wg.Done()
			_, _, errs[i] = svc.ApplyPayment(tenant.ID, amount, models.MethodCash)
		}(i, amount)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var tenantAfter models.Tenant
	require.NoError(t, db.First(&tenantAfter, tenant.ID).Error)
	assert.Equal(t, int64(700), tenantAfter.Balance)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("tenant_id = ?", tenant.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetPaymentsInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db, nil)
	tenant := seedTenant(t, db, 1, 0, 100000)

	for _, amount := range []int64{100, 200, 300} {
		_, _, err := svc.ApplyPayment(tenant.ID, amount, models.MethodCash)
		require.NoError(t, err)
	}

	payments, err := svc.GetPayments(tenant.ID)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, int64(100), payments[0].Amount)
	assert.Equal(t, int64(200), payments[1].Amount)
	assert.Equal(t, int64(300), payments[2].Amount)
}

// 一个完整账期：起账 → 现金部分结清 → 再次付款结清
func TestLedgerMonthScenario(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db, nil)
	rollover := NewRolloverService(db, nil)
	tenant := seedTenant(t, db, 7, 80000, 0)

	count, err := rollover.StartNewMonth(7)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var afterRollover models.Tenant
	require.NoError(t, db.First(&afterRollover, tenant.ID).Error)
	assert.Equal(t, int64(80000), afterRollover.Balance)

	_, _, err = ledger.ApplyPayment(tenant.ID, 50000, models.MethodCash)
	require.NoError(t, err)

	updated, _, err := ledger.ApplyPayment(tenant.ID, 30000, models.MethodCash)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Balance)

	payments, err := ledger.GetPayments(tenant.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
