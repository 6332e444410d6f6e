package services

import (
	"fmt"
	"rentroll/internal/models"
	"rentroll/pkg/logger"
	"rentroll/pkg/queue"

	"gorm.io/gorm"
)

// RolloverService 月初起账服务
// 给房东名下所有租客一次性加上月租金，整批要么全部生效要么全部回滚。
// 引擎不保证幂等：连续触发两次就累计两个月租金，重复触发由
// 调用方的确认提示拦截（有意的人工触发设计，不做定时任务）
type RolloverService struct {
	db     *gorm.DB
	events *queue.RedisQueue
}

// NewRolloverService 创建月初起账服务
func NewRolloverService(db *gorm.DB, events *queue.RedisQueue) *RolloverService {
	return &RolloverService{
		db:     db,
		events: events,
	}
}

// StartNewMonth 对房东的整个组合应用月租金应计，返回受影响的租客数
// 短租租客月租金为0，统一走同一批次（与历史行为保持一致）
func (s *RolloverService) StartNewMonth(ownerID uint) (int, error) {
	var count int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tenants []models.Tenant
		if err := tx.Select("id", "monthly_rent").
			Where("owner_id = ?", ownerID).
			Find(&tenants).Error; err != nil {
			return fmt.Errorf("加载租客列表失败: %v", err)
		}

		for _, tenant := range tenants {
			result := tx.Model(&models.Tenant{}).Where("id = ?", tenant.ID).
				UpdateColumn("balance", gorm.Expr("balance + ?", tenant.MonthlyRent))
			if result.Error != nil {
				return fmt.Errorf("租客 %d 应计失败: %v", tenant.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				// 租客在批次中途被删除，整批作废
				return fmt.Errorf("租客 %d 在起账过程中消失", tenant.ID)
			}
		}

		count = len(tenants)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publishRolloverEvent(ownerID, count)
	return count, nil
}

func (s *RolloverService) publishRolloverEvent(ownerID uint, count int) {
	if s.events == nil {
		return
	}
	event := &queue.LedgerEvent{
		EventType: "month.rollover",
		OwnerID:   ownerID,
		Amount:    int64(count),
	}
	if err := s.events.Publish(event); err != nil {
		logger.GetLogger().Warnf("起账事件发布失败: %v", err)
	}
}
