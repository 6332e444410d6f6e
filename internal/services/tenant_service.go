package services

import (
	"errors"
	"fmt"
	"rentroll/internal/models"

	"gorm.io/gorm"
)

// TenantService 租客档案管理
// 直接录入的长租租客，初始余额即为一个月租金（入住当月即欠租），
// 申请批准路径的租客初始余额为0，两条入口刻意不同
type TenantService struct {
	db *gorm.DB
}

// NewTenantService 创建租客服务
func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// Create 房东直接添加租客
func (s *TenantService) Create(tenant *models.Tenant) error {
	if tenant.Name == "" || tenant.Unit == "" {
		return errors.New("租客姓名和单元为必填项")
	}
	if tenant.Type == "" {
		tenant.Type = models.TenantTypeLongTerm
	}
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusOccupied
	}

	// 长租租客入住当月立即产生一期应收
	if tenant.Type == models.TenantTypeLongTerm {
		tenant.Balance = tenant.MonthlyRent
	} else {
		tenant.Balance = 0
	}

	if err := s.db.Create(tenant).Error; err != nil {
		return fmt.Errorf("创建租客失败: %v", err)
	}
	return nil
}

// GetByID 获取租客详情（含付款历史）
func (s *TenantService) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&tenant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantMissing
		}
		return nil, err
	}
	return &tenant, nil
}

// GetByEmail 租客门户按登录邮箱定位档案
func (s *TenantService) GetByEmail(email string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("email = ?", email).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantMissing
		}
		return nil, err
	}
	return &tenant, nil
}

// GetByOwnerWithPage 房东名下租客列表（分页+筛选）
func (s *TenantService) GetByOwnerWithPage(ownerID uint, page, pageSize int, tenantType, status, search string) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	query := s.db.Model(&models.Tenant{}).Where("owner_id = ?", ownerID)

	if tenantType != "" {
		query = query.Where("type = ?", tenantType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("name LIKE ? OR unit LIKE ? OR email LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&tenants).Error
	if err != nil {
		return nil, 0, err
	}

	return tenants, total, nil
}

// Update 更新租客基础信息，余额和租约字段不从这里改
func (s *TenantService) Update(ownerID, tenantID uint, updates map[string]interface{}) (*models.Tenant, error) {
	// 余额只能由账本流转，租约字段只能走租约服务
	delete(updates, "balance")
	delete(updates, "lease_url")
	delete(updates, "lease_signature")
	delete(updates, "lease_signed_at")
	delete(updates, "owner_id")
	delete(updates, "id")

	if len(updates) == 0 {
		return nil, errors.New("没有可更新的字段")
	}

	result := s.db.Model(&models.Tenant{}).
		Where("id = ? AND owner_id = ?", tenantID, ownerID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTenantMissing
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Delete 删除租客及其付款历史
func (s *TenantService) Delete(ownerID, tenantID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", tenantID, ownerID).
			Delete(&models.Tenant{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTenantMissing
		}
		return tx.Where("tenant_id = ?", tenantID).Delete(&models.Payment{}).Error
	})
}

// CheckOwnership 校验租客归属，越权访问返回错误
func (s *TenantService) CheckOwnership(ownerID, tenantID uint) error {
	var count int64
	err := s.db.Model(&models.Tenant{}).
		Where("id = ? AND owner_id = ?", tenantID, ownerID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrTenantMissing
	}
	return nil
}
