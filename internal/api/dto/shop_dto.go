package dto

// CreateShopRequest 创建店铺请求
type CreateShopRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateShopRequest 更新店铺请求
type UpdateShopRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
}

// ShopListRequest 店铺列表请求
type ShopListRequest struct {
	Keyword string `form:"keyword"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=10"`
}

// VerifyShopResponse 按名称校验店铺是否存在
type VerifyShopResponse struct {
	Exists  bool        `json:"exists"`
	Message string      `json:"message,omitempty"`
	Shop    interface{} `json:"shop,omitempty"`
}
