package services

import (
	"testing"

	"rentroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignLeaseRequiresLeaseFile(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaseService(db)
	tenant := seedTenant(t, db, 1, 50000, 0)

	_, err := svc.SignLease(tenant.ID, "data:image/png;base64,xxx")
	assert.ErrorIs(t, err, ErrLeaseMissing)
}

func TestSignLeaseOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaseService(db)
	tenant := seedTenant(t, db, 1, 50000, 0)

	require.NoError(t, svc.ReplaceLease(1, tenant.ID, "https://files.test/lease-v1.pdf"))

	signed, err := svc.SignLease(tenant.ID, "data:image/png;base64,xxx")
	require.NoError(t, err)
	require.NotNil(t, signed.LeaseSignature)
	require.NotNil(t, signed.LeaseSignedAt)

	// 签署是一次性动作
	_, err = svc.SignLease(tenant.ID, "data:image/png;base64,yyy")
	assert.ErrorIs(t, err, ErrLeaseAlreadySigned)
}

func TestReplaceLeaseClearsSignature(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaseService(db)
	tenant := seedTenant(t, db, 1, 50000, 0)

	require.NoError(t, svc.ReplaceLease(1, tenant.ID, "https://files.test/lease-v1.pdf"))
	_, err := svc.SignLease(tenant.ID, "data:image/png;base64,xxx")
	require.NoError(t, err)

	// 换文件必须同时清掉旧签名，要求重新签署
	require.NoError(t, svc.ReplaceLease(1, tenant.ID, "https://files.test/lease-v2.pdf"))

	var after models.Tenant
	require.NoError(t, db.First(&after, tenant.ID).Error)
	assert.Equal(t, "https://files.test/lease-v2.pdf", after.LeaseURL)
	assert.Nil(t, after.LeaseSignature)
	assert.Nil(t, after.LeaseSignedAt)

	// 新文件可以再次签署
	signed, err := svc.SignLease(tenant.ID, "data:image/png;base64,zzz")
	require.NoError(t, err)
	require.NotNil(t, signed.LeaseSignature)
}

func TestReplaceLeaseScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaseService(db)
	tenant := seedTenant(t, db, 1, 50000, 0)

	// 其他房东不能替换别人租客的租约
	err := svc.ReplaceLease(2, tenant.ID, "https://files.test/lease.pdf")
	assert.ErrorIs(t, err, ErrTenantMissing)
}

func TestSignLeaseRejectsEmptySignature(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaseService(db)
	tenant := seedTenant(t, db, 1, 50000, 0)

	_, err := svc.SignLease(tenant.ID, "")
	assert.ErrorIs(t, err, ErrSignatureEmpty)
}
