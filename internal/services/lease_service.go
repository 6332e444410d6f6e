package services

import (
	"errors"
	"rentroll/internal/models"
	"time"

	"gorm.io/gorm"
)

// 租约操作的业务错误
var (
	ErrLeaseMissing       = errors.New("尚未上传租约文件，无法签署")
	ErrLeaseAlreadySigned = errors.New("租约已签署，换签需要先替换租约文件")
	ErrSignatureEmpty     = errors.New("签名内容不能为空")
)

// LeaseService 租约生命周期
// 租约文件和租客签名是租客档案上的两个独立事实：
// 文件替换必须在同一次更新里清掉旧签名，新文件要求重新签署
type LeaseService struct {
	db *gorm.DB
}

// NewLeaseService 创建租约服务
func NewLeaseService(db *gorm.DB) *LeaseService {
	return &LeaseService{db: db}
}

// ReplaceLease 上传或替换租约文件
// 设置lease_url与清除旧签名是一次合并的状态迁移，不拆成两个独立写
func (s *LeaseService) ReplaceLease(ownerID, tenantID uint, url string) error {
	if url == "" {
		return errors.New("租约文件地址不能为空")
	}

	result := s.db.Model(&models.Tenant{}).
		Where("id = ? AND owner_id = ?", tenantID, ownerID).
		Updates(map[string]interface{}{
			"lease_url":       url,
			"lease_signature": nil,
			"lease_signed_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTenantMissing
	}
	return nil
}

// SignLease 租客签署租约，一次性动作
// 条件更新一步完成：要求租约文件已存在且当前未签署，
// 并发重复签署时只有第一个能生效
func (s *LeaseService) SignLease(tenantID uint, signature string) (*models.Tenant, error) {
	if signature == "" {
		return nil, ErrSignatureEmpty
	}

	now := time.Now()
	result := s.db.Model(&models.Tenant{}).
		Where("id = ? AND lease_url <> '' AND lease_signature IS NULL", tenantID).
		Updates(map[string]interface{}{
			"lease_signature": signature,
			"lease_signed_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// 区分失败原因：租客不存在 / 没有租约 / 已经签过
		var tenant models.Tenant
		if err := s.db.First(&tenant, tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTenantMissing
			}
			return nil, err
		}
		if tenant.LeaseURL == "" {
			return nil, ErrLeaseMissing
		}
		return nil, ErrLeaseAlreadySigned
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
