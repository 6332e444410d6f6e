package models

// RentalApplication 租房申请
// 终态只有两种：批准（删除申请并创建租客）或拒绝（删除申请），
// 不保留"已批准"的残留行
type RentalApplication struct {
	BaseModel
	OwnerID     *uint  `json:"owner_id" gorm:"index"` // 公开提交可能为空，待管理员分配
	PropertyID  *uint  `json:"property_id" gorm:"index"`
	Name        string `json:"name" gorm:"not null;size:100"`
	Email       string `json:"email" gorm:"not null;size:100"`
	Phone       string `json:"phone" gorm:"size:20"`
	Income      int64  `json:"income" gorm:"not null;default:0"` // 年收入
	DesiredUnit string `json:"desired_unit" gorm:"not null;size:50"`
	Status      string `json:"status" gorm:"default:'pending';size:20"`
}

// TableName 表名
func (a *RentalApplication) TableName() string {
	return "applications"
}

// 申请状态常量
const (
	ApplicationStatusPending = "pending"
)
