package dao

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/model"
	"github.com/modernnotes/modern-notes-service/pkg/livestate"
	"github.com/modernnotes/modern-notes-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// categoryStore 实现 domain.CategoryStore
type categoryStore struct {
	dao *Dao

	mu  sync.Mutex
	all *livestate.State[[]*domain.Category]
}

func newCategoryStore(dao *Dao) *categoryStore {
	return &categoryStore{dao: dao}
}

func (s *categoryStore) toDomain(m *model.Category) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

func (s *categoryStore) toModel(c *domain.Category) *model.Category {
	if c == nil {
		return nil
	}
	return &model.Category{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: timex.Time(c.CreatedAt),
	}
}

// Insert 插入分类并返回分配的 ID
func (s *categoryStore) Insert(ctx context.Context, category *domain.Category) (int64, error) {
	m := s.toModel(category)
	m.ID = 0
	if err := s.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	s.dao.refreshCategories()
	return m.ID, nil
}

// Update 整条替换更新
func (s *categoryStore) Update(ctx context.Context, category *domain.Category) error {
	if err := s.dao.db.WithContext(ctx).Save(s.toModel(category)).Error; err != nil {
		return err
	}
	s.dao.refreshCategories()
	return nil
}

// DeleteByID 删除分类
// 置空引用笔记的 categoryId 与分类删除在同一事务内提交，
// 外部观察不到「分类已消失但笔记仍引用它」的中间状态
func (s *categoryStore) DeleteByID(ctx context.Context, id int64) error {
	err := s.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Note{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
	if err != nil {
		return err
	}
	// 先刷新笔记再刷新分类：任何已投递的快照里引用都已置空，
	// 之后分类才从集合中消失
	s.dao.refreshNotes()
	s.dao.refreshCategories()
	return nil
}

// GetByID 按 ID 查询
func (s *categoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var m model.Category
	err := s.dao.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s.toDomain(&m), nil
}

// All 全部分类实时集合
func (s *categoryStore) All() *livestate.State[[]*domain.Category] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.all == nil {
		s.all = livestate.New(s.queryAll())
	}
	return s.all
}

// refresh 重查并发布分类快照
func (s *categoryStore) refresh() {
	s.mu.Lock()
	st := s.all
	s.mu.Unlock()

	if st == nil {
		return
	}
	st.Set(s.queryAll())
}

func (s *categoryStore) queryAll() []*domain.Category {
	var ms []*model.Category
	if err := s.dao.db.Order("created_at ASC, id ASC").Find(&ms).Error; err != nil {
		s.dao.logger.Error("categoryStore.queryAll err", zap.Error(err))
		return nil
	}
	categories := make([]*domain.Category, 0, len(ms))
	for _, m := range ms {
		categories = append(categories, s.toDomain(m))
	}
	return categories
}
