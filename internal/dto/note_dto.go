// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/pkg/timex"
)

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID         int64      `json:"id" form:"id"`
	Title      string     `json:"title" form:"title"`
	Content    string     `json:"content" form:"content"`
	CategoryID *int64     `json:"categoryId" form:"categoryId"`
	CreatedAt  timex.Time `json:"createdAt"`
	UpdatedAt  timex.Time `json:"updatedAt"`
}

// NoteGroupDTO 按日期分组的笔记视图
type NoteGroupDTO struct {
	Label string     `json:"label"`
	Notes []*NoteDTO `json:"notes"`
}

// NoteToDTO 领域模型转 DTO
func NoteToDTO(n *domain.Note) *NoteDTO {
	if n == nil {
		return nil
	}
	return &NoteDTO{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		CategoryID: n.CategoryID,
		CreatedAt:  timex.Time(n.CreatedAt),
		UpdatedAt:  timex.Time(n.UpdatedAt),
	}
}

// NotesToDTO 领域模型列表转 DTO 列表
func NotesToDTO(ns []*domain.Note) []*NoteDTO {
	out := make([]*NoteDTO, 0, len(ns))
	for _, n := range ns {
		out = append(out, NoteToDTO(n))
	}
	return out
}

// GroupsToDTO 分组视图转 DTO
func GroupsToDTO(groups []domain.NoteGroup) []*NoteGroupDTO {
	out := make([]*NoteGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, &NoteGroupDTO{
			Label: g.Label,
			Notes: NotesToDTO(g.Notes),
		})
	}
	return out
}

// NoteGroupsRequest 分组视图查询参数
// category 为空表示不过滤，q 为空表示浏览模式
type NoteGroupsRequest struct {
	Category *int64 `json:"category" form:"category"`
	Query    string `json:"q" form:"q"`
}

// NoteSearchRequest 搜索请求参数
type NoteSearchRequest struct {
	Query    string `json:"q" form:"q" binding:"required"`
	Category *int64 `json:"category" form:"category"`
}

// NoteIDRequest 按 ID 操作笔记的路径参数
type NoteIDRequest struct {
	ID int64 `uri:"id" binding:"required,gte=1"`
}
