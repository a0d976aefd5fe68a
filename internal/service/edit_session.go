package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/repository"
	"github.com/modernnotes/modern-notes-service/pkg/livestate"
)

// EditSession 单条笔记的编辑会话
// 围绕一份草稿维护状态机：noteID 为 nil 表示新建草稿，保存走插入；
// 否则草稿来自已有笔记，保存走整条替换更新、保留 createdAt。
// 草稿字段是可观察值，消费方可订阅单个字段的变化
type EditSession struct {
	noteRepo *repository.NoteRepository
	logger   *zap.Logger
	now      func() time.Time

	title      *livestate.State[string]
	content    *livestate.State[string]
	categoryID *livestate.State[*int64]
	isSaved    *livestate.State[bool]

	// mu 保护 noteID 与 createdAt，并将 Save 串行化
	mu        sync.Mutex
	noteID    *int64
	createdAt time.Time
}

// NewEditSession 创建空白编辑会话
func NewEditSession(noteRepo *repository.NoteRepository, logger *zap.Logger) *EditSession {
	return &EditSession{
		noteRepo:   noteRepo,
		logger:     logger,
		now:        time.Now,
		title:      livestate.New(""),
		content:    livestate.New(""),
		categoryID: livestate.New[*int64](nil),
		isSaved:    livestate.New(false),
	}
}

// Load 从已有笔记装载草稿
// 笔记不存在时静默保持空白草稿，会话退化为新建流程
func (s *EditSession) Load(ctx context.Context, noteID int64) error {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		s.logger.Error("EditSession.Load err", zap.Int64("noteID", noteID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	id := note.ID
	s.noteID = &id
	s.createdAt = note.CreatedAt
	s.mu.Unlock()

	s.title.Set(note.Title)
	s.content.Set(note.Content)
	s.categoryID.Set(note.CategoryID)
	s.isSaved.Set(false)
	return nil
}

// Title 草稿标题的可观察值
func (s *EditSession) Title() *livestate.State[string] {
	return s.title
}

// Content 草稿正文的可观察值
func (s *EditSession) Content() *livestate.State[string] {
	return s.content
}

// CategoryID 草稿分类的可观察值，nil 表示未归类
func (s *EditSession) CategoryID() *livestate.State[*int64] {
	return s.categoryID
}

// IsSaved 保存完成标记，消费方据此触发"保存后离开"的流转
func (s *EditSession) IsSaved() *livestate.State[bool] {
	return s.isSaved
}

// SetTitle 更新草稿标题
func (s *EditSession) SetTitle(title string) {
	s.title.Set(title)
}

// SetContent 更新草稿正文
func (s *EditSession) SetContent(content string) {
	s.content.Set(content)
}

// SetCategory 更新草稿分类，nil 表示未归类
func (s *EditSession) SetCategory(categoryID *int64) {
	s.categoryID.Set(categoryID)
}

// HasContent 草稿是否有内容（标题或正文非空）
func (s *EditSession) HasContent() bool {
	return s.title.Get() != "" || s.content.Get() != ""
}

// Snapshot 返回草稿当前内容
func (s *EditSession) Snapshot() *domain.Note {
	s.mu.Lock()
	noteID := s.noteID
	createdAt := s.createdAt
	s.mu.Unlock()

	note := &domain.Note{
		Title:     s.title.Get(),
		Content:   s.content.Get(),
		CreatedAt: createdAt,
	}
	if noteID != nil {
		note.ID = *noteID
	}
	if categoryID := s.categoryID.Get(); categoryID != nil {
		id := *categoryID
		note.CategoryID = &id
	}
	return note
}

// Save 保存草稿
// 新建草稿插入后会话携带分配的 ID，后续保存全部走更新；
// 两条路径都把 updatedAt 刷为当前时间，更新保留原 createdAt。
// 空草稿同样允许保存，是否放行由调用方基于 HasContent 决定
func (s *EditSession) Save(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	note := &domain.Note{
		Title:      s.title.Get(),
		Content:    s.content.Get(),
		CategoryID: s.categoryID.Get(),
		UpdatedAt:  now,
	}

	if s.noteID == nil {
		note.CreatedAt = now
		id, err := s.noteRepo.Insert(ctx, note)
		if err != nil {
			s.logger.Error("EditSession.Save insert err", zap.Error(err))
			return 0, err
		}
		s.noteID = &id
		s.createdAt = now
		s.isSaved.Set(true)
		return id, nil
	}

	note.ID = *s.noteID
	note.CreatedAt = s.createdAt
	if err := s.noteRepo.Update(ctx, note); err != nil {
		s.logger.Error("EditSession.Save update err", zap.Int64("noteID", note.ID), zap.Error(err))
		return 0, err
	}
	s.isSaved.Set(true)
	return note.ID, nil
}

// Reset 清空草稿回到空白新建状态，可重复调用
func (s *EditSession) Reset() {
	s.mu.Lock()
	s.noteID = nil
	s.createdAt = time.Time{}
	s.mu.Unlock()

	s.title.Set("")
	s.content.Set("")
	s.categoryID.Set(nil)
	s.isSaved.Set(false)
}
