package models

// Expense 支出记录
type Expense struct {
	BaseModel
	OwnerID     uint   `json:"owner_id" gorm:"not null;index"`
	PropertyID  *uint  `json:"property_id" gorm:"index"`
	Amount      int64  `json:"amount" gorm:"not null"`
	Description string `json:"description" gorm:"not null;size:255"`
	Category    string `json:"category" gorm:"size:30"` // Maintenance / Utilities / Taxes / Other
	Date        string `json:"date" gorm:"size:30"`
}

// TableName 表名
func (e *Expense) TableName() string {
	return "expenses"
}

// 支出类别常量
const (
	ExpenseCategoryMaintenance = "Maintenance"
	ExpenseCategoryUtilities   = "Utilities"
	ExpenseCategoryTaxes       = "Taxes"
	ExpenseCategoryOther       = "Other"
)
