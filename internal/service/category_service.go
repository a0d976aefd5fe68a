package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/repository"
	"github.com/modernnotes/modern-notes-service/pkg/livestate"
)

// CategoryService 分类管理
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	noteRepo     *repository.NoteRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(categoryRepo *repository.CategoryRepository, noteRepo *repository.NoteRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		noteRepo:     noteRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Add 新建分类
// 名称去除首尾空白，color 为 0 时使用默认颜色
func (s *CategoryService) Add(ctx context.Context, name string, color int64) (int64, error) {
	if color == 0 {
		color = domain.DefaultCategoryColor
	}
	category := &domain.Category{
		Name:      strings.TrimSpace(name),
		Color:     color,
		CreatedAt: s.now(),
	}
	id, err := s.categoryRepo.Insert(ctx, category)
	if err != nil {
		s.logger.Error("CategoryService.Add err", zap.String("name", name), zap.Error(err))
		return 0, err
	}
	return id, nil
}

// Update 更新分类名称与颜色
func (s *CategoryService) Update(ctx context.Context, category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error("CategoryService.Update err", zap.Int64("id", category.ID), zap.Error(err))
		return err
	}
	return nil
}

// Delete 删除分类
// 引用该分类的笔记在同一事务内置为未归类，笔记本身保留
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categoryRepo.DeleteByID(ctx, id); err != nil {
		s.logger.Error("CategoryService.Delete err", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Get 按 ID 查询分类
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// Categories 全部分类实时集合
func (s *CategoryService) Categories() *livestate.State[[]*domain.Category] {
	return s.categoryRepo.All()
}

// NoteCount 分类下笔记数量实时值
func (s *CategoryService) NoteCount(categoryID int64) *livestate.State[int64] {
	return s.noteRepo.CountByCategory(categoryID)
}
