package model

import "gorm.io/datatypes"

// Notification 店铺事件通知，创建时一律未读
type Notification struct {
	BaseModel
	ShopID int64 `gorm:"index;not null" json:"shop_id"`
	Shop   *Shop `gorm:"foreignKey:ShopID" json:"-"`

	Title   string `gorm:"size:255" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Read    bool   `gorm:"default:false" json:"read"`

	// 事件附加数据，如低库存商品快照
	Payload datatypes.JSON `json:"payload,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
