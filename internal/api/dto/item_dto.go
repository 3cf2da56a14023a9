package dto

// CreateItemRequest 创建商品请求
// ShopID 可省略，由租户解析中间件补齐
type CreateItemRequest struct {
	ShopID      int64  `json:"shop_id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	ImageUrl    string `json:"image_url"`
	RefillCount *int   `json:"refill_count"`
}

// UpdateItemRequest 更新商品请求
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    *int   `json:"quantity"`
	ImageUrl    string `json:"image_url"`
	RefillCount *int   `json:"refill_count"`
}
