package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChargeIntent 外部扣款意向
// 金额在创建时落库，确认回调只认这里记录的授权金额，
// 不信任调用方随请求再传的金额
type ChargeIntent struct {
	BaseModel
	Reference    string         `json:"reference" gorm:"unique;not null;size:64;index"` // 对外引用（uuid）
	ClientSecret string         `json:"-" gorm:"not null;size:128"`                     // 返回给前端渲染支付表单
	TenantID     uint           `json:"tenant_id" gorm:"not null;index"`
	OwnerID      uint           `json:"owner_id" gorm:"not null;index"`
	Amount       int64          `json:"amount" gorm:"not null"`           // 授权金额（零小数货币，取整后不再缩放）
	Currency     string         `json:"currency" gorm:"not null;size:8"`  // 部署货币，单一
	Provider     string         `json:"provider" gorm:"not null;size:20"` // card / mobile_money
	Status       string         `json:"status" gorm:"default:'pending';size:20;index"`
	Metadata     datatypes.JSON `json:"metadata"` // 服务商侧附加信息（原因码等）
	ExpiresAt    time.Time      `json:"expires_at" gorm:"index"`
}

// TableName 表名
func (i *ChargeIntent) TableName() string {
	return "charge_intents"
}

// 意向渠道常量
const (
	IntentProviderCard        = "card"
	IntentProviderMobileMoney = "mobile_money"
)

// 意向状态常量
const (
	IntentStatusPending   = "pending"
	IntentStatusSucceeded = "succeeded"
	IntentStatusIgnored   = "ignored" // 移动支付回调原因码未授权，软忽略
	IntentStatusExpired   = "expired"
)

// 移动支付完成回调里允许入账的原因码
const (
	MomoReasonCheckoutCompleted   = "CHECKOUT_COMPLETED"
	MomoReasonTransactionApproved = "TRANSACTION_APPROVED"
)
