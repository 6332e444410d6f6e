package services

import (
	"errors"
	"fmt"
	"math"
	"rentroll/internal/models"
	"rentroll/pkg/config"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 支付意向的业务错误
var (
	ErrIntentMissing    = errors.New("支付意向不存在")
	ErrIntentNotPending = errors.New("支付意向已被处理")
	ErrIntentExpired    = errors.New("支付意向已过期")
	ErrProviderMismatch = errors.New("支付意向渠道不匹配")
)

// PaymentIntentService 支付接入网关
// 三个来源的付款在这里归一成账本的付款事件：现金直接入账，
// 卡和移动支付先建意向，确认回调只入账意向上落库的授权金额，
// 不信任调用方回传的金额
type PaymentIntentService struct {
	db     *gorm.DB
	ledger *LedgerService
	cfg    *config.PaymentConfig
}

// NewPaymentIntentService 创建支付网关服务
func NewPaymentIntentService(db *gorm.DB, ledger *LedgerService, cfg *config.PaymentConfig) *PaymentIntentService {
	return &PaymentIntentService{
		db:     db,
		ledger: ledger,
		cfg:    cfg,
	}
}

// CreateIntent 创建外部扣款意向（serverless createPaymentIntent 的等价边界）
// 金额四舍五入取整后不再缩放：部署货币是零小数货币
func (s *PaymentIntentService) CreateIntent(tenantID uint, amount float64, provider string) (*models.ChargeIntent, error) {
	amountInt := int64(math.Round(amount))
	if amountInt <= 0 {
		return nil, ErrInvalidAmount
	}
	if provider != models.IntentProviderCard && provider != models.IntentProviderMobileMoney {
		return nil, fmt.Errorf("未知的支付渠道: %s", provider)
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantMissing
		}
		return nil, err
	}

	reference := uuid.NewString()
	intent := models.ChargeIntent{
		Reference:    reference,
		ClientSecret: fmt.Sprintf("%s_secret_%s", reference, uuid.NewString()),
		TenantID:     tenant.ID,
		OwnerID:      tenant.OwnerID,
		Amount:       amountInt,
		Currency:     s.cfg.Currency,
		Provider:     provider,
		Status:       models.IntentStatusPending,
		Metadata:     datatypes.JSON([]byte(fmt.Sprintf(`{"tenant_id":%d}`, tenant.ID))),
		ExpiresAt:    time.Now().Add(time.Duration(s.cfg.IntentTTLMinutes) * time.Minute),
	}

	if err := s.db.Create(&intent).Error; err != nil {
		return nil, fmt.Errorf("创建支付意向失败: %v", err)
	}
	return &intent, nil
}

// ConfirmCard 卡支付成功信号回调
// 入账金额取意向上记录的授权金额，意向状态流转与入账同一事务
func (s *PaymentIntentService) ConfirmCard(reference string) (*models.Tenant, *models.Payment, error) {
	return s.settle(reference, models.IntentProviderCard, models.MethodCreditCard)
}

// HandleMobileMoneyCallback 移动支付完成回调
// 只有授权原因码才入账，其余原因码软忽略：不报错、不入账、不安排重试
func (s *PaymentIntentService) HandleMobileMoneyCallback(reference, reason string) (*models.Tenant, *models.Payment, error) {
	if reason != models.MomoReasonCheckoutCompleted && reason != models.MomoReasonTransactionApproved {
		// 记录原因码后静默返回
		err := s.db.Model(&models.ChargeIntent{}).
			Where("reference = ? AND status = ?", reference, models.IntentStatusPending).
			Updates(map[string]interface{}{
				"status":   models.IntentStatusIgnored,
				"metadata": datatypes.JSON([]byte(fmt.Sprintf(`{"reason":%q}`, reason))),
			}).Error
		return nil, nil, err
	}
	return s.settle(reference, models.IntentProviderMobileMoney, models.MethodMobileMoney)
}

// settle 把已授权的意向落成账本付款
func (s *PaymentIntentService) settle(reference, provider, method string) (*models.Tenant, *models.Payment, error) {
	var tenant *models.Tenant
	var payment *models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var intent models.ChargeIntent
		if err := tx.Where("reference = ?", reference).First(&intent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIntentMissing
			}
			return err
		}

		if intent.Provider != provider {
			return ErrProviderMismatch
		}
		if intent.Status != models.IntentStatusPending {
			return ErrIntentNotPending
		}
		if time.Now().After(intent.ExpiresAt) {
			return ErrIntentExpired
		}

		var err error
		tenant, payment, err = s.ledger.ApplyPaymentTx(tx, intent.TenantID, intent.Amount, method)
		if err != nil {
			return err
		}

		return tx.Model(&models.ChargeIntent{}).Where("id = ?", intent.ID).
			UpdateColumn("status", models.IntentStatusSucceeded).Error
	})
	if err != nil {
		return nil, nil, err
	}

	s.ledger.PublishPaymentEvent(tenant, payment)
	return tenant, payment, nil
}

// SweepExpired 把过期未确认的意向标记为expired，之后无法再被确认
func (s *PaymentIntentService) SweepExpired() (int64, error) {
	result := s.db.Model(&models.ChargeIntent{}).
		Where("status = ? AND expires_at < ?", models.IntentStatusPending, time.Now()).
		UpdateColumn("status", models.IntentStatusExpired)
	return result.RowsAffected, result.Error
}
