package models

// Listing 招租信息 - 公开可浏览，归属单一房东
type Listing struct {
	BaseModel
	OwnerID     uint   `json:"owner_id" gorm:"not null;index"`
	PropertyID  *uint  `json:"property_id" gorm:"index"`
	Title       string `json:"title" gorm:"not null;size:150"`
	Description string `json:"description" gorm:"type:text"`
	Unit        string `json:"unit" gorm:"not null;size:50"`
	Rent        int64  `json:"rent" gorm:"not null"`
	PhotoURL    string `json:"photo_url" gorm:"size:500"`
	Available   bool   `json:"available" gorm:"default:true"`
	DateAdded   string `json:"date_added" gorm:"size:30"`
}

// TableName 表名
func (l *Listing) TableName() string {
	return "listings"
}
