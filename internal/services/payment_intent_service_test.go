package services

import (
	"testing"
	"time"

	"rentroll/internal/models"
	"rentroll/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newIntentService(db *gorm.DB) *PaymentIntentService {
	cfg := &config.PaymentConfig{
		Currency:         "XOF",
		IntentTTLMinutes: 30,
	}
	return NewPaymentIntentService(db, NewLedgerService(db, nil), cfg)
}

func TestCreateIntent(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	intent, err := svc.CreateIntent(tenant.ID, 25000.4, models.IntentProviderCard)
	require.NoError(t, err)

	// 零小数货币：四舍五入取整，不乘100
	assert.Equal(t, int64(25000), intent.Amount)
	assert.Equal(t, "XOF", intent.Currency)
	assert.Equal(t, models.IntentStatusPending, intent.Status)
	assert.NotEmpty(t, intent.Reference)
	assert.NotEmpty(t, intent.ClientSecret)
	assert.True(t, intent.ExpiresAt.After(time.Now()))
}

func TestCreateIntentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	_, err := svc.CreateIntent(tenant.ID, 0, models.IntentProviderCard)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateIntent(tenant.ID, -5, models.IntentProviderCard)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateIntent(tenant.ID, 100, "paypal")
	assert.Error(t, err)

	_, err = svc.CreateIntent(999, 100, models.IntentProviderCard)
	assert.ErrorIs(t, err, ErrTenantMissing)
}

func TestConfirmCardSettlesAuthorizedAmount(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	intent, err := svc.CreateIntent(tenant.ID, 20000, models.IntentProviderCard)
	require.NoError(t, err)

	updated, payment, err := svc.ConfirmCard(intent.Reference)
	require.NoError(t, err)

	// 入账的是意向上落库的授权金额
	assert.Equal(t, int64(20000), payment.Amount)
	assert.Equal(t, models.MethodCreditCard, payment.Method)
	assert.Equal(t, int64(30000), updated.Balance)

	var after models.ChargeIntent
	require.NoError(t, db.First(&after, intent.ID).Error)
	assert.Equal(t, models.IntentStatusSucceeded, after.Status)
}

func TestConfirmCardRejectsReplay(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	intent, err := svc.CreateIntent(tenant.ID, 20000, models.IntentProviderCard)
	require.NoError(t, err)

	_, _, err = svc.ConfirmCard(intent.Reference)
	require.NoError(t, err)

	// 同一意向不能确认两次
	_, _, err = svc.ConfirmCard(intent.Reference)
	assert.ErrorIs(t, err, ErrIntentNotPending)

	var after models.Tenant
	require.NoError(t, db.First(&after, tenant.ID).Error)
	assert.Equal(t, int64(30000), after.Balance)
}

func TestConfirmCardProviderMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	intent, err := svc.CreateIntent(tenant.ID, 20000, models.IntentProviderMobileMoney)
	require.NoError(t, err)

	_, _, err = svc.ConfirmCard(intent.Reference)
	assert.ErrorIs(t, err, ErrProviderMismatch)
}

func TestConfirmExpiredIntent(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	intent, err := svc.CreateIntent(tenant.ID, 20000, models.IntentProviderCard)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.ChargeIntent{}).Where("id = ?", intent.ID).
		UpdateColumn("expires_at", time.Now().Add(-time.Minute)).Error)

	_, _, err = svc.ConfirmCard(intent.Reference)
	assert.ErrorIs(t, err, ErrIntentExpired)
}

func TestMobileMoneyCallbackApprovedReasons(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)

	for _, reason := range []string{models.MomoReasonCheckoutCompleted, models.MomoReasonTransactionApproved} {
		tenant := seedTenant(t, db, 1, 50000, 50000)
		intent, err := svc.CreateIntent(tenant.ID, 10000, models.IntentProviderMobileMoney)
		require.NoError(t, err)

		updated, payment, err := svc.HandleMobileMoneyCallback(intent.Reference, reason)
		require.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, models.MethodMobileMoney, payment.Method)
		assert.Equal(t, int64(40000), updated.Balance)
	}
}

func TestMobileMoneyCallbackIgnoresOtherReasons(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	intent, err := svc.CreateIntent(tenant.ID, 10000, models.IntentProviderMobileMoney)
	require.NoError(t, err)

	// 未授权原因码软忽略：不报错、不入账
	updated, payment, err := svc.HandleMobileMoneyCallback(intent.Reference, "TRANSACTION_CANCELED")
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Nil(t, payment)

	var after models.Tenant
	require.NoError(t, db.First(&after, tenant.ID).Error)
	assert.Equal(t, int64(50000), after.Balance)

	var intentAfter models.ChargeIntent
	require.NoError(t, db.First(&intentAfter, intent.ID).Error)
	assert.Equal(t, models.IntentStatusIgnored, intentAfter.Status)

	// 已忽略的意向不能再被授权原因码入账
	_, _, err = svc.HandleMobileMoneyCallback(intent.Reference, models.MomoReasonCheckoutCompleted)
	assert.ErrorIs(t, err, ErrIntentNotPending)
}

func TestSweepExpired(t *testing.T) {
	db := newTestDB(t)
	svc := newIntentService(db)
	tenant := seedTenant(t, db, 1, 50000, 50000)

	stale, err := svc.CreateIntent(tenant.ID, 10000, models.IntentProviderCard)
	require.NoError(t, err)
	fresh, err := svc.CreateIntent(tenant.ID, 20000, models.IntentProviderCard)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.ChargeIntent{}).Where("id = ?", stale.ID).
		UpdateColumn("expires_at", time.Now().Add(-time.Hour)).Error)

	swept, err := svc.SweepExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	var after models.ChargeIntent
	require.NoError(t, db.First(&after, stale.ID).Error)
	assert.Equal(t, models.IntentStatusExpired, after.Status)

	require.NoError(t, db.First(&after, fresh.ID).Error)
	assert.Equal(t, models.IntentStatusPending, after.Status)
}
