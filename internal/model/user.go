package model

// 全局权限常量
// 注意区分：这是用户的全局权限，ShopMember 里的是店铺内的权限覆盖
const (
	PermissionStaff   = "staff"
	PermissionManager = "manager"
	PermissionAdmin   = "admin"
)

// User 系统用户账号
type User struct {
	BaseModel
	// 基础信息
	Username string `gorm:"size:100;not null" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255" json:"-"` // 哈希密码，任何响应都不得携带
	Phone    string `gorm:"size:30" json:"phone"`
	Uid      string `gorm:"size:36;uniqueIndex" json:"uid"` // 注册时生成的 UUID

	// 全局默认权限，店铺内可被 ShopMember.Permission 覆盖
	Permission string `gorm:"size:20;default:'staff'" json:"permission"`

	// 最近活跃店铺（仅作缓存提示，鉴权永远走 shop_members 表）
	LastShopID int64 `gorm:"index;default:0" json:"last_shop_id"`

	// ==============================
	// 关联关系
	// ==============================

	// 方式 A: 快速查询用户所在的店铺 (忽略接纳状态)
	Shops []Shop `gorm:"many2many:shop_members;" json:"-"`

	// 方式 B: 查询用户在店铺的成员详情 (包含接纳状态和权限覆盖)
	Memberships []ShopMember `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
