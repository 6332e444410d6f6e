package models

// RepairRequest 维修请求 - 租客提交，房东处理
type RepairRequest struct {
	BaseModel
	OwnerID      uint   `json:"owner_id" gorm:"not null;index"`
	TenantID     uint   `json:"tenant_id" gorm:"not null;index"`
	TenantName   string `json:"tenant_name" gorm:"size:100"`
	Unit         string `json:"unit" gorm:"size:50"`
	Issue        string `json:"issue" gorm:"not null;type:text"`
	Priority     string `json:"priority" gorm:"default:'Medium';size:20"` // Low / Medium / High
	Status       string `json:"status" gorm:"default:'Open';size:20"`     // Open / Resolved
	DateReported string `json:"date_reported" gorm:"size:30"`
}

// TableName 表名
func (r *RepairRequest) TableName() string {
	return "repairs"
}

// 维修状态常量
const (
	RepairStatusOpen     = "Open"
	RepairStatusResolved = "Resolved"
)

// 优先级常量
const (
	RepairPriorityLow    = "Low"
	RepairPriorityMedium = "Medium"
	RepairPriorityHigh   = "High"
)
