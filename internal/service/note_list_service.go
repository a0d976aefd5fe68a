// Package service 实现业务逻辑层
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/repository"
	"github.com/modernnotes/modern-notes-service/pkg/livestate"
	"github.com/modernnotes/modern-notes-service/pkg/util"

	"go.uber.org/zap"
)

// 分组标签
const (
	GroupLabelToday     = "Today"
	GroupLabelYesterday = "Yesterday"

	// groupDateLayout 更早笔记的日期标签格式
	groupDateLayout = "January 2, 2006"
)

// NoteListService 列表视图组合引擎
// 输入：笔记集合、分类集合、搜索词、分类过滤、搜索模式开关，全部为实时值；
// 任一输入变化即同步全量重算分组视图。全量重算是刻意的简化，
// 个人笔记规模下代价可忽略
type NoteListService struct {
	noteRepo     *repository.NoteRepository
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
	now          func() time.Time

	// cmdMu 串行化视图命令，computeMu 保证重算是单个原子步骤
	cmdMu     sync.Mutex
	computeMu sync.Mutex

	notes            *livestate.State[[]*domain.Note]
	categories       *livestate.State[[]*domain.Category]
	searchQuery      *livestate.State[string]
	isSearching      *livestate.State[bool]
	searchResults    *livestate.State[[]*domain.Note]
	selectedCategory *livestate.State[*int64]
	displayedGroups  *livestate.State[[]domain.NoteGroup]

	unsubs      []func()
	searchUnsub func()
}

// NewNoteListService 创建列表组合引擎并订阅上游实时集合
func NewNoteListService(noteRepo *repository.NoteRepository, categoryRepo *repository.CategoryRepository, logger *zap.Logger) *NoteListService {
	s := &NoteListService{
		noteRepo:         noteRepo,
		categoryRepo:     categoryRepo,
		logger:           logger,
		now:              time.Now,
		notes:            livestate.New[[]*domain.Note](nil),
		categories:       livestate.New[[]*domain.Category](nil),
		searchQuery:      livestate.New(""),
		isSearching:      livestate.New(false),
		searchResults:    livestate.New[[]*domain.Note](nil),
		selectedCategory: livestate.New[*int64](nil),
		displayedGroups:  livestate.New[[]domain.NoteGroup](nil),
	}

	s.unsubs = append(s.unsubs, noteRepo.All().Subscribe(func(ns []*domain.Note) {
		s.notes.Set(ns)
		s.recompute()
	}))
	s.unsubs = append(s.unsubs, categoryRepo.All().Subscribe(func(cs []*domain.Category) {
		s.categories.Set(cs)
		s.recompute()
	}))

	return s
}

// Notes 全部笔记实时集合
func (s *NoteListService) Notes() *livestate.State[[]*domain.Note] {
	return s.notes
}

// Categories 全部分类实时集合
func (s *NoteListService) Categories() *livestate.State[[]*domain.Category] {
	return s.categories
}

// SearchQuery 当前搜索词
func (s *NoteListService) SearchQuery() *livestate.State[string] {
	return s.searchQuery
}

// IsSearching 是否处于搜索模式
func (s *NoteListService) IsSearching() *livestate.State[bool] {
	return s.isSearching
}

// SelectedCategory 当前分类过滤
func (s *NoteListService) SelectedCategory() *livestate.State[*int64] {
	return s.selectedCategory
}

// DisplayedGroups 最终展示的分组视图
func (s *NoteListService) DisplayedGroups() *livestate.State[[]domain.NoteGroup] {
	return s.displayedGroups
}

// SetSearchQuery 设置搜索词
// 非空词进入搜索模式并订阅对应的实时搜索；空词退出搜索模式
func (s *NoteListService) SetSearchQuery(query string) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	s.searchQuery.Set(query)

	if prev := s.searchUnsub; prev != nil {
		s.searchUnsub = nil
		prev()
	}

	if query != "" {
		s.isSearching.Set(true)
		s.searchUnsub = s.noteRepo.Search(query).Subscribe(func(ns []*domain.Note) {
			s.searchResults.Set(ns)
			s.recompute()
		})
	} else {
		s.isSearching.Set(false)
		s.searchResults.Set(nil)
		s.recompute()
	}
}

// SetCategoryFilter 设置分类过滤，nil 表示不过滤
func (s *NoteListService) SetCategoryFilter(categoryID *int64) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	s.selectedCategory.Set(categoryID)
	s.recompute()
}

// DeleteNote 删除笔记，实时集合随存储刷新自动更新
func (s *NoteListService) DeleteNote(ctx context.Context, id int64) error {
	if err := s.noteRepo.DeleteByID(ctx, id); err != nil {
		s.logger.Error("NoteListService.DeleteNote err", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Close 释放全部上游订阅，之后不再重算
func (s *NoteListService) Close() {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	if s.searchUnsub != nil {
		s.searchUnsub()
		s.searchUnsub = nil
	}
}

// recompute 全量重算分组视图，整个过程是单个原子步骤
func (s *NoteListService) recompute() {
	s.computeMu.Lock()
	defer s.computeMu.Unlock()

	var source []*domain.Note
	if s.isSearching.Get() && s.searchQuery.Get() != "" {
		source = s.searchResults.Get()
	} else {
		source = s.notes.Get()
	}

	if categoryID := s.selectedCategory.Get(); categoryID != nil {
		filtered := make([]*domain.Note, 0, len(source))
		for _, n := range source {
			if n.CategoryID != nil && *n.CategoryID == *categoryID {
				filtered = append(filtered, n)
			}
		}
		source = filtered
	}

	s.displayedGroups.Set(GroupNotesByDate(source, s.now()))
}

// GroupNotesByDate 按日期分组笔记
// 分组规则（以 now 所在时区的自然日为界）：
//   - 今天：updatedAt 落在今天 0 点之后（含未来时间戳，不做特殊处理）
//   - 昨天：updatedAt 落在昨天 0 点到今天 0 点之间
//   - 更早：按具体日历日期一组
//
// 分组顺序为扫描排序结果时的首次出现顺序；输入已按 updatedAt 倒序，
// 因此自然得到 今天、昨天、递减日期 的排列，组内保持排序后的相对顺序
func GroupNotesByDate(notes []*domain.Note, now time.Time) []domain.NoteGroup {
	if len(notes) == 0 {
		return nil
	}

	// 仅以 updatedAt 为键的稳定排序，相同时间戳保持输入相对顺序
	sorted := make([]*domain.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})

	startOfToday := util.GetZeroTime(now)
	startOfYesterday := startOfToday.AddDate(0, 0, -1)

	grouped := make(map[string][]*domain.Note)
	var order []string

	for _, note := range sorted {
		var label string
		switch {
		case !note.UpdatedAt.Before(startOfToday):
			label = GroupLabelToday
		case !note.UpdatedAt.Before(startOfYesterday):
			label = GroupLabelYesterday
		default:
			label = note.UpdatedAt.Format(groupDateLayout)
		}

		if _, ok := grouped[label]; !ok {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], note)
	}

	groups := make([]domain.NoteGroup, 0, len(order))
	for _, label := range order {
		groups = append(groups, domain.NoteGroup{Label: label, Notes: grouped[label]})
	}
	return groups
}
