package dto

import "time"

// UserInfo 用户信息（任何情况下都不携带密码哈希）
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Permission string    `json:"permission"`
	Uid        string    `json:"uid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ShopUserInfo 店铺成员视角的用户信息
// Permission 为生效权限：成员覆盖优先，否则回退全局权限
type ShopUserInfo struct {
	UserInfo
	ShopID           int64 `json:"shop_id"`
	AcceptedIntoShop bool  `json:"accepted_into_shop"`
}

// CreateUserRequest 创建用户请求（管理接口）
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Phone      string `json:"phone"`
	Permission string `json:"permission"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Permission string `json:"permission"`
}

// MembershipRequest 接纳/取消接纳请求
type MembershipRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	ShopID int64 `json:"shop_id" binding:"required"`
}
