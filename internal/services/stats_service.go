package services

import (
	"rentroll/internal/models"
	"time"

	"gorm.io/gorm"
)

// DashboardStats 房东仪表盘汇总
type DashboardStats struct {
	TenantCount      int64 `json:"tenant_count"`
	OccupiedCount    int64 `json:"occupied_count"`
	MonthlyRentRoll  int64 `json:"monthly_rent_roll"` // 长租租客月租金合计
	Outstanding      int64 `json:"outstanding"`       // 正余额（欠款）合计
	RevenueThisMonth int64 `json:"revenue_this_month"`
	ExpenseThisMonth int64 `json:"expense_this_month"`
	OpenRepairs      int64 `json:"open_repairs"`
	PendingIntents   int64 `json:"pending_intents"`
}

// AdminOverview 管理员全局概览
type AdminOverview struct {
	UserCount        int64 `json:"user_count"`
	LandlordCount    int64 `json:"landlord_count"`
	TenantCount      int64 `json:"tenant_count"`
	PaymentCount     int64 `json:"payment_count"`
	PaymentTotal     int64 `json:"payment_total"`
	UnassignedApps   int64 `json:"unassigned_applications"`
	PendingIntents   int64 `json:"pending_intents"`
	SucceededIntents int64 `json:"succeeded_intents"`
}

// StatsService 统计汇总，只读聚合查询
type StatsService struct {
	db *gorm.DB
}

// NewStatsService 创建统计服务
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// GetDashboard 房东仪表盘数据
func (s *StatsService) GetDashboard(ownerID uint) (*DashboardStats, error) {
	stats := &DashboardStats{}
	monthStart := time.Now().Format("2006-01") + "-01"

	if err := s.db.Model(&models.Tenant{}).
		Where("owner_id = ?", ownerID).Count(&stats.TenantCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Tenant{}).
		Where("owner_id = ? AND status = ?", ownerID, models.TenantStatusOccupied).
		Count(&stats.OccupiedCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Tenant{}).
		Where("owner_id = ? AND type = ?", ownerID, models.TenantTypeLongTerm).
		Select("COALESCE(SUM(monthly_rent), 0)").Scan(&stats.MonthlyRentRoll).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Tenant{}).
		Where("owner_id = ? AND balance > 0", ownerID).
		Select("COALESCE(SUM(balance), 0)").Scan(&stats.Outstanding).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Payment{}).
		Where("owner_id = ? AND date >= ?", ownerID, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.RevenueThisMonth).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Expense{}).
		Where("owner_id = ? AND date >= ?", ownerID, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.ExpenseThisMonth).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.RepairRequest{}).
		Where("owner_id = ? AND status = ?", ownerID, models.RepairStatusOpen).
		Count(&stats.OpenRepairs).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ChargeIntent{}).
		Where("owner_id = ? AND status = ?", ownerID, models.IntentStatusPending).
		Count(&stats.PendingIntents).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// GetAdminOverview 管理员全局概览数据
func (s *StatsService) GetAdminOverview() (*AdminOverview, error) {
	overview := &AdminOverview{}

	if err := s.db.Model(&models.User{}).Count(&overview.UserCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleLandlord).Count(&overview.LandlordCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Tenant{}).Count(&overview.TenantCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Payment{}).Count(&overview.PaymentCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&overview.PaymentTotal).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.RentalApplication{}).
		Where("owner_id IS NULL").Count(&overview.UnassignedApps).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ChargeIntent{}).
		Where("status = ?", models.IntentStatusPending).Count(&overview.PendingIntents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ChargeIntent{}).
		Where("status = ?", models.IntentStatusSucceeded).Count(&overview.SucceededIntents).Error; err != nil {
		return nil, err
	}

	return overview, nil
}
