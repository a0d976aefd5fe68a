package dto

import (
	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/pkg/timex"
)

// CategoryDTO Category data transfer object
// CategoryDTO 分类数据传输对象
type CategoryDTO struct {
	ID        int64      `json:"id" form:"id"`
	Name      string     `json:"name" form:"name"`
	Color     int64      `json:"color" form:"color"`
	NoteCount int64      `json:"noteCount"`
	CreatedAt timex.Time `json:"createdAt"`
}

// CategoryToDTO 领域模型转 DTO
func CategoryToDTO(c *domain.Category, noteCount int64) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		NoteCount: noteCount,
		CreatedAt: timex.Time(c.CreatedAt),
	}
}

// CategoryCreateRequest 新建分类请求参数
// color 为 0 时使用默认颜色
type CategoryCreateRequest struct {
	Name  string `json:"name" form:"name" binding:"required,max=64"`
	Color int64  `json:"color" form:"color"`
}

// CategoryUpdateRequest 更新分类请求参数
type CategoryUpdateRequest struct {
	Name  string `json:"name" form:"name" binding:"required,max=64"`
	Color int64  `json:"color" form:"color"`
}

// CategoryIDRequest 按 ID 操作分类的路径参数
type CategoryIDRequest struct {
	ID int64 `uri:"id" binding:"required,gte=1"`
}
