package services

import (
	"errors"
	"rentroll/internal/models"
	"time"

	"gorm.io/gorm"
)

// 短租预订的业务错误
var (
	ErrNotShortTerm  = errors.New("只有短租租客可以按晚预订")
	ErrNoDailyRate   = errors.New("租客未配置日单价")
	ErrInvalidNights = errors.New("入住晚数必须为正整数")
)

// BookingService 短租预订计算
// 预收模式：总价 = 晚数 × 日单价，一次性记成已收付款，
// 没有先开账单再收款的中间阶段
type BookingService struct {
	db     *gorm.DB
	ledger *LedgerService
}

// NewBookingService 创建短租预订服务
func NewBookingService(db *gorm.DB, ledger *LedgerService) *BookingService {
	return &BookingService{
		db:     db,
		ledger: ledger,
	}
}

// BookNights 记录一次按晚预订，副作用是租客状态强制置为occupied
// 应计与收款在同一动作里抵消，余额净值不变
func (s *BookingService) BookNights(tenantID uint, nights int) (*models.Payment, error) {
	if nights <= 0 {
		return nil, ErrInvalidNights
	}

	var payment *models.Payment
	var tenant models.Tenant

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantMissing
			}
			return err
		}

		if tenant.Type != models.TenantTypeShortTerm {
			return ErrNotShortTerm
		}
		if tenant.DailyRate <= 0 {
			return ErrNoDailyRate
		}

		totalCost := int64(nights) * tenant.DailyRate

		p := models.Payment{
			TenantID: tenant.ID,
			OwnerID:  tenant.OwnerID,
			Amount:   totalCost,
			Date:     time.Now().Format("2006-01-02"),
			Method:   models.MethodBooking,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Tenant{}).Where("id = ?", tenant.ID).
			UpdateColumn("status", models.TenantStatusOccupied).Error; err != nil {
			return err
		}

		tenant.Status = models.TenantStatusOccupied
		payment = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.ledger.PublishPaymentEvent(&tenant, payment)
	return payment, nil
}
