package repository

import (
	"context"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/pkg/livestate"
)

// CategoryRepository 分类仓储门面
type CategoryRepository struct {
	store domain.CategoryStore
}

// NewCategoryRepository 创建 CategoryRepository 实例
func NewCategoryRepository(store domain.CategoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// Insert 插入分类并返回分配的 ID
func (r *CategoryRepository) Insert(ctx context.Context, category *domain.Category) (int64, error) {
	return r.store.Insert(ctx, category)
}

// Update 整条替换更新
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return r.store.Update(ctx, category)
}

// DeleteByID 删除分类（事务内置空引用笔记的 categoryId）
func (r *CategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.DeleteByID(ctx, id)
}

// GetByID 按 ID 查询
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return r.store.GetByID(ctx, id)
}

// All 全部分类实时集合
func (r *CategoryRepository) All() *livestate.State[[]*domain.Category] {
	return r.store.All()
}
