package model

// DefaultRefillLimit Item.RefillCount 为空时使用的补货阈值
const DefaultRefillLimit = 5

// Item 商品，归属于唯一一个店铺
type Item struct {
	BaseModel
	ShopID int64 `gorm:"index;not null" json:"shop_id"`
	Shop   *Shop `gorm:"foreignKey:ShopID" json:"-"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100" json:"category"`
	Quantity    int    `gorm:"default:0" json:"quantity"`
	ImageUrl    string `gorm:"size:255" json:"image_url"`

	// 补货阈值，NULL 时回退到 DefaultRefillLimit
	RefillCount *int `json:"refill_count"`
}

// RefillLimit 返回生效的补货阈值
func (i *Item) RefillLimit() int {
	if i.RefillCount != nil {
		return *i.RefillCount
	}
	return DefaultRefillLimit
}

// BelowRefillLimit 库存是否已低于补货阈值
func (i *Item) BelowRefillLimit() bool {
	return i.Quantity < i.RefillLimit()
}

func (Item) TableName() string {
	return "items"
}
