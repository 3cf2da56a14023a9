package dto

// PageResult 统一分页响应结构
type PageResult struct {
	TotalItems  int64       `json:"total_items"`
	TotalPages  int         `json:"total_pages"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
	Items       interface{} `json:"items"`
}

// NewPageResult 计算总页数并组装分页响应
func NewPageResult(total int64, page, perPage int, items interface{}) *PageResult {
	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}
	return &PageResult{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PerPage:     perPage,
		Items:       items,
	}
}
