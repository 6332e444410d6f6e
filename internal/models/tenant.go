package models

import (
	"time"
)

// Tenant 租客模型 - 账本聚合根，余额与付款记录必须在同一事务内变更
type Tenant struct {
	BaseModel
	OwnerID          uint       `json:"owner_id" gorm:"not null;index"` // 所属房东
	PropertyID       *uint      `json:"property_id" gorm:"index"`       // 可选的物业分组
	Name             string     `json:"name" gorm:"not null;size:100"`
	Email            string     `json:"email" gorm:"size:100;index"` // 租客端登录关联
	Phone            string     `json:"phone" gorm:"size:20"`
	Unit             string     `json:"unit" gorm:"not null;size:50"`
	Type             string     `json:"type" gorm:"default:'long-term';size:20"`  // long-term / short-term
	Status           string     `json:"status" gorm:"default:'occupied';size:20"` // occupied / vacant / cleaning
	MonthlyRent      int64      `json:"monthly_rent" gorm:"not null;default:0"`   // 长租月租金
	DailyRate        int64      `json:"daily_rate" gorm:"not null;default:0"`     // 短租日单价
	Balance          int64      `json:"balance" gorm:"not null;default:0"`        // 正数=欠款 0=结清 负数=信用余额
	PropertyPhotoURL string     `json:"property_photo_url" gorm:"size:500"`
	LeaseURL         string     `json:"lease_url" gorm:"size:500"`
	LeaseSignature   *string    `json:"lease_signature" gorm:"type:text"` // 租客签名图（data URL）
	LeaseSignedAt    *time.Time `json:"lease_signed_at"`

	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:TenantID"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}

// 租约类型常量
const (
	TenantTypeLongTerm  = "long-term"
	TenantTypeShortTerm = "short-term"
)

// 入住状态常量
const (
	TenantStatusOccupied = "occupied"
	TenantStatusVacant   = "vacant"
	TenantStatusCleaning = "cleaning"
)
