package domain

import "time"

// DefaultCategoryColor 分类默认颜色（ARGB）
const DefaultCategoryColor int64 = 0xFF6750A4

// Category 分类领域模型
type Category struct {
	ID        int64
	Name      string
	Color     int64
	CreatedAt time.Time
}
