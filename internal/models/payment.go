package models

// Payment 付款事件 - 不可变，只追加不修改不单独删除
// 自增ID即创建序号，报表按created_at归月
type Payment struct {
	BaseModel
	TenantID uint   `json:"tenant_id" gorm:"not null;index"`
	OwnerID  uint   `json:"owner_id" gorm:"not null;index"` // 冗余所属房东，方便报表查询
	Amount   int64  `json:"amount" gorm:"not null"`         // 恒为正数
	Date     string `json:"date" gorm:"size:30"`            // 展示用日期串，排序以插入序为准
	Method   string `json:"method" gorm:"size:50"`          // Cash/Check、Credit Card、Mobile Money 等
}

// TableName 表名
func (p *Payment) TableName() string {
	return "payments"
}

// 支付方式标签
const (
	MethodCash        = "Cash/Check"
	MethodCreditCard  = "Credit Card"
	MethodMobileMoney = "Mobile Money"
	MethodBooking     = "Short-Term Booking"
)
