package model

// Inventory 动作常量
const (
	InventoryActionSell   = "sell"   // 售出
	InventoryActionRefill = "refill" // 补货
)

// Inventory 库存流水，记录一次售出/补货动作
type Inventory struct {
	BaseModel
	ItemID int64 `gorm:"index;not null" json:"item_id"`
	Item   *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`

	// 冗余店铺 ID，避免按店铺查询流水时联表
	ShopID int64 `gorm:"index;not null" json:"shop_id"`
	Shop   *Shop `gorm:"foreignKey:ShopID" json:"-"`

	// 操作人
	UserID int64 `gorm:"index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Action string  `gorm:"size:20;not null" json:"action"` // sell / refill
	Cost   float64 `gorm:"default:0" json:"cost"`
}

func (Inventory) TableName() string {
	return "inventories"
}
