package services

import (
	"errors"
	"fmt"
	"rentroll/internal/models"
	"rentroll/pkg/logger"
	"rentroll/pkg/queue"
	"time"

	"gorm.io/gorm"
)

// 账本操作的业务错误
var (
	ErrInvalidAmount = errors.New("付款金额必须为正数")
	ErrTenantMissing = errors.New("租客不存在")
)

// LedgerService 余额账本服务
// 余额扣减和付款追加必须落在同一个事务里，余额更新使用
// SQL表达式自增自减，避免读改写竞争导致的丢失更新
type LedgerService struct {
	db     *gorm.DB
	events *queue.RedisQueue
}

// NewLedgerService 创建账本服务
func NewLedgerService(db *gorm.DB, events *queue.RedisQueue) *LedgerService {
	return &LedgerService{
		db:     db,
		events: events,
	}
}

// ApplyPayment 入账一笔付款：余额减去金额，同时追加一条付款记录
func (s *LedgerService) ApplyPayment(tenantID uint, amount int64, method string) (*models.Tenant, *models.Payment, error) {
	var tenant *models.Tenant
	var payment *models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		tenant, payment, err = s.ApplyPaymentTx(tx, tenantID, amount, method)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.publishPaymentEvent(tenant, payment)
	return tenant, payment, nil
}

// ApplyPaymentTx 在已有事务内入账付款，供支付网关等组合操作复用
func (s *LedgerService) ApplyPaymentTx(tx *gorm.DB, tenantID uint, amount int64, method string) (*models.Tenant, *models.Payment, error) {
	// 程序化调用方同样要守住金额约束，不依赖前端拦截
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	var tenant models.Tenant
	if err := tx.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTenantMissing
		}
		return nil, nil, err
	}

	// 原子扣减，不把余额读到内存再写回
	result := tx.Model(&models.Tenant{}).Where("id = ?", tenantID).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return nil, nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil, ErrTenantMissing
	}

	payment := models.Payment{
		TenantID: tenantID,
		OwnerID:  tenant.OwnerID,
		Amount:   amount,
		Date:     time.Now().Format("2006-01-02"),
		Method:   method,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, nil, fmt.Errorf("追加付款记录失败: %v", err)
	}

	// 取提交后的最新余额
	if err := tx.First(&tenant, tenantID).Error; err != nil {
		return nil, nil, err
	}

	return &tenant, &payment, nil
}

// GetPayments 按插入顺序返回租客的付款历史
func (s *LedgerService) GetPayments(tenantID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := s.db.Where("tenant_id = ?", tenantID).Order("id ASC").Find(&payments).Error
	return payments, err
}

// PublishPaymentEvent 付款入账后的事件分发（供组合操作在事务提交后调用）
func (s *LedgerService) PublishPaymentEvent(tenant *models.Tenant, payment *models.Payment) {
	s.publishPaymentEvent(tenant, payment)
}

func (s *LedgerService) publishPaymentEvent(tenant *models.Tenant, payment *models.Payment) {
	if s.events == nil || tenant == nil || payment == nil {
		return
	}
	event := &queue.LedgerEvent{
		EventType:  "payment.recorded",
		OwnerID:    tenant.OwnerID,
		TenantID:   tenant.ID,
		Amount:     payment.Amount,
		Method:     payment.Method,
		NewBalance: tenant.Balance,
	}
	if err := s.events.Publish(event); err != nil {
		// 事件只服务于仪表盘实时刷新，失败不影响账本
		logger.GetLogger().Warnf("账本事件发布失败: %v", err)
	}
}
