package services

import (
	"testing"

	"rentroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookNights(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db, nil)
	svc := NewBookingService(db, ledger)
	tenant := seedShortTermTenant(t, db, 1, 5000)

	payment, err := svc.BookNights(tenant.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(15000), payment.Amount)
	assert.Equal(t, models.MethodBooking, payment.Method)

	// 预收模式：应计与收款同笔抵消，余额净值不变，状态强制occupied
	var after models.Tenant
	require.NoError(t, db.First(&after, tenant.ID).Error)
	assert.Equal(t, int64(0), after.Balance)
	assert.Equal(t, models.TenantStatusOccupied, after.Status)
}

func TestBookNightsRejectsLongTerm(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, NewLedgerService(db, nil))
	tenant := seedTenant(t, db, 1, 50000, 0)

	_, err := svc.BookNights(tenant.ID, 2)
	assert.ErrorIs(t, err, ErrNotShortTerm)
}

func TestBookNightsRequiresDailyRate(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, NewLedgerService(db, nil))
	tenant := seedShortTermTenant(t, db, 1, 0)

	_, err := svc.BookNights(tenant.ID, 2)
	assert.ErrorIs(t, err, ErrNoDailyRate)
}

func TestBookNightsRejectsInvalidNights(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, NewLedgerService(db, nil))
	tenant := seedShortTermTenant(t, db, 1, 5000)

	for _, nights := range []int{0, -1} {
		_, err := svc.BookNights(tenant.ID, nights)
		assert.ErrorIs(t, err, ErrInvalidNights)
	}

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestBookNightsMissingTenant(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db, NewLedgerService(db, nil))

	_, err := svc.BookNights(999, 2)
	assert.ErrorIs(t, err, ErrTenantMissing)
}
