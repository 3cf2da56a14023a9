package dto

// CreateInventoryRequest 创建库存流水请求
type CreateInventoryRequest struct {
	ItemID int64   `json:"item_id" binding:"required"`
	ShopID int64   `json:"shop_id"`
	Action string  `json:"action" binding:"required,oneof=sell refill"`
	Cost   float64 `json:"cost"`
}

// UpdateInventoryRequest 更新库存流水请求
type UpdateInventoryRequest struct {
	Action string   `json:"action" binding:"omitempty,oneof=sell refill"`
	Cost   *float64 `json:"cost"`
}

// InventorySums 日/周/月成本汇总
type InventorySums struct {
	DaySum   float64 `json:"day_sum"`
	WeekSum  float64 `json:"week_sum"`
	MonthSum float64 `json:"month_sum"`
}
