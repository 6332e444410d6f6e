package services

import (
	"errors"
	"rentroll/internal/models"
	"time"

	"gorm.io/gorm"
)

var ErrRepairMissing = errors.New("维修请求不存在")

// RepairService 维修请求流转
type RepairService struct {
	db *gorm.DB
}

// NewRepairService 创建维修服务
func NewRepairService(db *gorm.DB) *RepairService {
	return &RepairService{db: db}
}

// Submit 租客提交维修请求，归属信息从租客档案带出
func (s *RepairService) Submit(tenantID uint, issue, priority string) (*models.RepairRequest, error) {
	if issue == "" {
		return nil, errors.New("问题描述不能为空")
	}
	if priority == "" {
		priority = models.RepairPriorityMedium
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantMissing
		}
		return nil, err
	}

	repair := models.RepairRequest{
		OwnerID:      tenant.OwnerID,
		TenantID:     tenant.ID,
		TenantName:   tenant.Name,
		Unit:         tenant.Unit,
		Issue:        issue,
		Priority:     priority,
		Status:       models.RepairStatusOpen,
		DateReported: time.Now().Format("2006-01-02"),
	}
	if err := s.db.Create(&repair).Error; err != nil {
		return nil, err
	}
	return &repair, nil
}

// GetByOwner 房东名下的维修请求
func (s *RepairService) GetByOwner(ownerID uint, status string) ([]*models.RepairRequest, error) {
	var repairs []*models.RepairRequest
	query := s.db.Where("owner_id = ?", ownerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&repairs).Error
	return repairs, err
}

// GetByTenant 租客自己提交的维修请求
func (s *RepairService) GetByTenant(tenantID uint) ([]*models.RepairRequest, error) {
	var repairs []*models.RepairRequest
	err := s.db.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&repairs).Error
	return repairs, err
}

// Delete 房东删除维修请求
func (s *RepairService) Delete(ownerID, repairID uint) error {
	result := s.db.Where("id = ? AND owner_id = ?", repairID, ownerID).
		Delete(&models.RepairRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRepairMissing
	}
	return nil
}

// Resolve 房东标记维修完成
func (s *RepairService) Resolve(ownerID, repairID uint) error {
	result := s.db.Model(&models.RepairRequest{}).
		Where("id = ? AND owner_id = ?", repairID, ownerID).
		UpdateColumn("status", models.RepairStatusResolved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRepairMissing
	}
	return nil
}
