package services

import (
	"errors"
	"rentroll/internal/models"
	"time"

	"gorm.io/gorm"
)

var ErrListingMissing = errors.New("招租信息不存在")

// ListingService 招租信息管理
type ListingService struct {
	db *gorm.DB
}

// NewListingService 创建招租服务
func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{db: db}
}

// Create 发布招租信息
func (s *ListingService) Create(listing *models.Listing) error {
	if listing.Title == "" || listing.Unit == "" {
		return errors.New("标题和单元为必填项")
	}
	if listing.Rent <= 0 {
		return errors.New("租金必须为正数")
	}
	if listing.DateAdded == "" {
		listing.DateAdded = time.Now().Format("2006-01-02")
	}
	listing.Available = true
	return s.db.Create(listing).Error
}

// GetPublic 公开浏览可租房源，不需要登录
func (s *ListingService) GetPublic() ([]*models.Listing, error) {
	var listings []*models.Listing
	err := s.db.Where("available = ?", true).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// GetByOwner 房东自己的全部招租信息（含已下架）
func (s *ListingService) GetByOwner(ownerID uint) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// SetAvailable 上架/下架
func (s *ListingService) SetAvailable(ownerID, listingID uint, available bool) error {
	result := s.db.Model(&models.Listing{}).
		Where("id = ? AND owner_id = ?", listingID, ownerID).
		UpdateColumn("available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingMissing
	}
	return nil
}

// Delete 删除招租信息
func (s *ListingService) Delete(ownerID, listingID uint) error {
	result := s.db.Where("id = ? AND owner_id = ?", listingID, ownerID).
		Delete(&models.Listing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingMissing
	}
	return nil
}
