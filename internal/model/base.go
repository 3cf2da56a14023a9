package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 公共字段，所有表共用
// 删除一律走软删除，店铺删除成员是唯一的例外
type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
