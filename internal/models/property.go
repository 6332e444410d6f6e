package models

// Property 物业模型
type Property struct {
	BaseModel
	OwnerID uint   `json:"owner_id" gorm:"not null;index"`
	Name    string `json:"name" gorm:"not null;size:100"`
	Address string `json:"address" gorm:"size:255"`
}

// TableName 表名
func (p *Property) TableName() string {
	return "properties"
}
