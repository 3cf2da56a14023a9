package model

// Shop 店铺，系统的租户边界
// 所有 Item / Inventory / Notification / ShopMember 都归属于唯一一个 Shop
type Shop struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"size:255" json:"address"`
	Phone       string `gorm:"size:30" json:"phone"`
	Email       string `gorm:"size:100" json:"email"`
	Website     string `gorm:"size:255" json:"website"`

	// 获取该店铺的所有成员关系 (Has Many)
	Memberships []ShopMember `gorm:"foreignKey:ShopID" json:"-"`
	// 获取该店铺的所有成员列表 (Many to Many, 忽略接纳状态)
	Members []User `gorm:"many2many:shop_members;" json:"-"`
}

// ShopMember 定义用户和店铺的关联关系及接纳状态
// GORM 自定义连接表 (Join Table)
type ShopMember struct {
	BaseModel
	// 联合唯一索引
	// 确保一个用户在一个店铺里只有一条记录，也是并发 connect 的唯一防线
	UserID int64 `gorm:"index;uniqueIndex:idx_user_shop;not null" json:"user_id"`
	ShopID int64 `gorm:"index;uniqueIndex:idx_user_shop;not null" json:"shop_id"`

	// 接纳状态: false=待审核(PENDING) true=已接纳(ACCEPTED)
	// 取消接纳只会翻回 false，记录本身不会删除
	AcceptedIntoShop bool `gorm:"default:false" json:"accepted_into_shop"`

	// 店铺内权限覆盖，为空时回退到 User.Permission
	Permission string `gorm:"size:20" json:"permission,omitempty"`

	// 关联对象 (Belongs To)
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Shop *Shop `gorm:"foreignKey:ShopID" json:"-"`
}

func (Shop) TableName() string {
	return "shops"
}

func (ShopMember) TableName() string {
	return "shop_members"
}
