package domain

import (
	"context"
	"errors"

	"github.com/modernnotes/modern-notes-service/pkg/livestate"
)

// ErrNotFound 按 ID 查询无结果
var ErrNotFound = errors.New("record not found")

// NoteStore 笔记存储接口
// All/ByCategory/Search/CountByCategory 返回实时集合：
// 任何底层行变化后重新发布完整快照，新订阅者立即收到当前快照
type NoteStore interface {
	// Insert 插入笔记并返回分配的 ID
	Insert(ctx context.Context, note *Note) (int64, error)

	// Update 整条替换更新
	Update(ctx context.Context, note *Note) error

	// DeleteByID 按 ID 删除
	DeleteByID(ctx context.Context, id int64) error

	// GetByID 按 ID 查询，无结果返回 ErrNotFound
	GetByID(ctx context.Context, id int64) (*Note, error)

	// All 全部笔记，按 updatedAt 倒序
	All() *livestate.State[[]*Note]

	// ByCategory 指定分类下的笔记，按 updatedAt 倒序
	ByCategory(categoryID int64) *livestate.State[[]*Note]

	// Search 标题或正文包含子串的笔记，按 updatedAt 倒序
	Search(query string) *livestate.State[[]*Note]

	// SearchNow 与 Search 同语义的一次性快照，不注册实时查询
	SearchNow(ctx context.Context, query string) ([]*Note, error)

	// CountByCategory 指定分类下的笔记数量
	CountByCategory(categoryID int64) *livestate.State[int64]
}

// CategoryStore 分类存储接口
// DeleteByID 必须与引用笔记的 categoryId 置空在同一事务内完成
type CategoryStore interface {
	// Insert 插入分类并返回分配的 ID
	Insert(ctx context.Context, category *Category) (int64, error)

	// Update 整条替换更新
	Update(ctx context.Context, category *Category) error

	// DeleteByID 删除分类，事务内将引用笔记的 categoryId 置空
	DeleteByID(ctx context.Context, id int64) error

	// GetByID 按 ID 查询，无结果返回 ErrNotFound
	GetByID(ctx context.Context, id int64) (*Category, error)

	// All 全部分类
	All() *livestate.State[[]*Category]
}

// PreferenceStore 键值偏好存储接口
type PreferenceStore interface {
	// Get 读取偏好，键不存在返回 ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set 写入偏好
	Set(ctx context.Context, key string, value string) error
}
