// Package repository 提供面向业务层的仓储门面
// 每个操作与存储接口一一对应，仅做纯转发，不引入任何额外语义
package repository

import (
	"context"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/pkg/livestate"
)

// NoteRepository 笔记仓储门面
type NoteRepository struct {
	store domain.NoteStore
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(store domain.NoteStore) *NoteRepository {
	return &NoteRepository{store: store}
}

// Insert 插入笔记并返回分配的 ID
func (r *NoteRepository) Insert(ctx context.Context, note *domain.Note) (int64, error) {
	return r.store.Insert(ctx, note)
}

// Update 整条替换更新
func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	return r.store.Update(ctx, note)
}

// DeleteByID 按 ID 删除
func (r *NoteRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.DeleteByID(ctx, id)
}

// GetByID 按 ID 查询
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	return r.store.GetByID(ctx, id)
}

// All 全部笔记实时集合
func (r *NoteRepository) All() *livestate.State[[]*domain.Note] {
	return r.store.All()
}

// ByCategory 分类下笔记实时集合
func (r *NoteRepository) ByCategory(categoryID int64) *livestate.State[[]*domain.Note] {
	return r.store.ByCategory(categoryID)
}

// Search 子串匹配实时集合
func (r *NoteRepository) Search(query string) *livestate.State[[]*domain.Note] {
	return r.store.Search(query)
}

// SearchNow 子串匹配一次性快照
func (r *NoteRepository) SearchNow(ctx context.Context, query string) ([]*domain.Note, error) {
	return r.store.SearchNow(ctx, query)
}

// CountByCategory 分类下笔记数量实时值
func (r *NoteRepository) CountByCategory(categoryID int64) *livestate.State[int64] {
	return r.store.CountByCategory(categoryID)
}
