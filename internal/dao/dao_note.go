package dao

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/model"
	"github.com/modernnotes/modern-notes-service/pkg/livestate"
	"github.com/modernnotes/modern-notes-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// noteStore 实现 domain.NoteStore
// 每个实时查询注册到对应的 map，任何写操作提交后统一重查并发布新快照；
// 已无订阅者的查询在刷新时被回收
type noteStore struct {
	dao *Dao

	mu         sync.Mutex
	all        *livestate.State[[]*domain.Note]
	byCategory map[int64]*livestate.State[[]*domain.Note]
	searches   map[string]*livestate.State[[]*domain.Note]
	counts     map[int64]*livestate.State[int64]
}

func newNoteStore(dao *Dao) *noteStore {
	return &noteStore{
		dao:        dao,
		byCategory: make(map[int64]*livestate.State[[]*domain.Note]),
		searches:   make(map[string]*livestate.State[[]*domain.Note]),
		counts:     make(map[int64]*livestate.State[int64]),
	}
}

// toDomain 将数据库模型转换为领域模型
func (s *noteStore) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		CategoryID: m.CategoryID,
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (s *noteStore) toModel(n *domain.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		CategoryID: n.CategoryID,
		CreatedAt:  timex.Time(n.CreatedAt),
		UpdatedAt:  timex.Time(n.UpdatedAt),
	}
}

func (s *noteStore) toDomainList(ms []*model.Note) []*domain.Note {
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, s.toDomain(m))
	}
	return notes
}

// Insert 插入笔记并返回分配的 ID
func (s *noteStore) Insert(ctx context.Context, note *domain.Note) (int64, error) {
	m := s.toModel(note)
	m.ID = 0
	if err := s.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	s.dao.refreshNotes()
	return m.ID, nil
}

// Update 整条替换更新
func (s *noteStore) Update(ctx context.Context, note *domain.Note) error {
	m := s.toModel(note)
	// Save 按主键整条更新，nil CategoryID 会写为 NULL
	if err := s.dao.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	s.dao.refreshNotes()
	return nil
}

// DeleteByID 按 ID 删除
func (s *noteStore) DeleteByID(ctx context.Context, id int64) error {
	if err := s.dao.db.WithContext(ctx).Delete(&model.Note{}, id).Error; err != nil {
		return err
	}
	s.dao.refreshNotes()
	return nil
}

// GetByID 按 ID 查询
func (s *noteStore) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := s.dao.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s.toDomain(&m), nil
}

// All 全部笔记实时集合
func (s *noteStore) All() *livestate.State[[]*domain.Note] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.all == nil {
		s.all = livestate.New(s.queryAll())
	}
	return s.all
}

// ByCategory 分类下笔记的实时集合
func (s *noteStore) ByCategory(categoryID int64) *livestate.State[[]*domain.Note] {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byCategory[categoryID]
	if !ok {
		st = livestate.New(s.queryByCategory(categoryID))
		s.byCategory[categoryID] = st
	}
	return st
}

// Search 子串匹配的实时集合
func (s *noteStore) Search(query string) *livestate.State[[]*domain.Note] {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.searches[query]
	if !ok {
		st = livestate.New(s.querySearch(query))
		s.searches[query] = st
	}
	return st
}

// SearchNow 一次性搜索快照，不注册实时查询
// 匹配语义与 Search 一致，供请求级调用方使用
func (s *noteStore) SearchNow(ctx context.Context, query string) ([]*domain.Note, error) {
	pattern := "%" + escapeLike(query) + "%"
	var ms []*model.Note
	err := s.dao.db.WithContext(ctx).
		Where(`title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("updated_at DESC, id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return s.toDomainList(ms), nil
}

// CountByCategory 分类下笔记数量的实时值
func (s *noteStore) CountByCategory(categoryID int64) *livestate.State[int64] {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.counts[categoryID]
	if !ok {
		st = livestate.New(s.queryCount(categoryID))
		s.counts[categoryID] = st
	}
	return st
}

// refresh 重查所有注册的实时查询并发布新快照，回收已无订阅者的查询
// 查询在写事务提交之后执行，新订阅者只会看到提交后的状态
func (s *noteStore) refresh() {
	s.mu.Lock()

	type notesPublish struct {
		st    *livestate.State[[]*domain.Note]
		value []*domain.Note
	}
	type countPublish struct {
		st    *livestate.State[int64]
		value int64
	}
	var notesOut []notesPublish
	var countsOut []countPublish

	if s.all != nil {
		notesOut = append(notesOut, notesPublish{s.all, s.queryAll()})
	}
	for id, st := range s.byCategory {
		if st.Idle() {
			delete(s.byCategory, id)
			continue
		}
		notesOut = append(notesOut, notesPublish{st, s.queryByCategory(id)})
	}
	for q, st := range s.searches {
		if st.Idle() {
			delete(s.searches, q)
			continue
		}
		notesOut = append(notesOut, notesPublish{st, s.querySearch(q)})
	}
	for id, st := range s.counts {
		if st.Idle() {
			delete(s.counts, id)
			continue
		}
		countsOut = append(countsOut, countPublish{st, s.queryCount(id)})
	}

	s.mu.Unlock()

	// 在锁外发布，订阅者回调里允许再次访问本存储。
	// 数量先于集合发布，笔记订阅者回调里读到的数量已是新值
	for _, p := range countsOut {
		p.st.Set(p.value)
	}
	for _, p := range notesOut {
		p.st.Set(p.value)
	}
}

func (s *noteStore) queryAll() []*domain.Note {
	var ms []*model.Note
	if err := s.dao.db.Order("updated_at DESC, id DESC").Find(&ms).Error; err != nil {
		s.dao.logger.Error("noteStore.queryAll err", zap.Error(err))
		return nil
	}
	return s.toDomainList(ms)
}

func (s *noteStore) queryByCategory(categoryID int64) []*domain.Note {
	var ms []*model.Note
	err := s.dao.db.Where("category_id = ?", categoryID).
		Order("updated_at DESC, id DESC").Find(&ms).Error
	if err != nil {
		s.dao.logger.Error("noteStore.queryByCategory err", zap.Int64("categoryId", categoryID), zap.Error(err))
		return nil
	}
	return s.toDomainList(ms)
}

func (s *noteStore) querySearch(query string) []*domain.Note {
	pattern := "%" + escapeLike(query) + "%"
	var ms []*model.Note
	err := s.dao.db.
		Where(`title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("updated_at DESC, id DESC").Find(&ms).Error
	if err != nil {
		s.dao.logger.Error("noteStore.querySearch err", zap.String("query", query), zap.Error(err))
		return nil
	}
	return s.toDomainList(ms)
}

func (s *noteStore) queryCount(categoryID int64) int64 {
	var count int64
	err := s.dao.db.Model(&model.Note{}).
		Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		s.dao.logger.Error("noteStore.queryCount err", zap.Int64("categoryId", categoryID), zap.Error(err))
		return 0
	}
	return count
}

// escapeLike 转义 LIKE 通配符，让查询串按字面量匹配
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}
