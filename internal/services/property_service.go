package services

import (
	"errors"
	"rentroll/internal/models"

	"gorm.io/gorm"
)

var ErrPropertyMissing = errors.New("物业不存在")

// PropertyService 物业档案管理
type PropertyService struct {
	db *gorm.DB
}

// NewPropertyService 创建物业服务
func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// Create 添加物业
func (s *PropertyService) Create(property *models.Property) error {
	if property.Name == "" {
		return errors.New("物业名称不能为空")
	}
	return s.db.Create(property).Error
}

// GetByOwner 房东名下物业列表
func (s *PropertyService) GetByOwner(ownerID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// Update 更新物业信息
func (s *PropertyService) Update(ownerID, propertyID uint, name, address string) error {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if address != "" {
		updates["address"] = address
	}
	if len(updates) == 0 {
		return errors.New("没有可更新的字段")
	}

	result := s.db.Model(&models.Property{}).
		Where("id = ? AND owner_id = ?", propertyID, ownerID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyMissing
	}
	return nil
}

// Delete 删除物业，名下仍有租客时拒绝
func (s *PropertyService) Delete(ownerID, propertyID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tenant{}).
			Where("property_id = ?", propertyID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("物业名下仍有租客，无法删除")
		}

		result := tx.Where("id = ? AND owner_id = ?", propertyID, ownerID).
			Delete(&models.Property{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPropertyMissing
		}
		return nil
	})
}
