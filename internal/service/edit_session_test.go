package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modernnotes/modern-notes-service/internal/domain"
)

func TestEditSessionInsertOnFirstSave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewEditSession(env.noteRepo, env.logger)
	assert.False(t, s.HasContent())

	s.SetTitle("Grocery list")
	s.SetContent("buy milk")
	assert.True(t, s.HasContent())

	id, err := s.Save(ctx)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := env.noteRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Grocery list", got.Title)
	assert.Equal(t, "buy milk", got.Content)
	assert.Nil(t, got.CategoryID)
}

func TestEditSessionSecondSaveUpdates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewEditSession(env.noteRepo, env.logger)
	s.SetTitle("draft")

	firstID, err := s.Save(ctx)
	require.NoError(t, err)

	first, err := env.noteRepo.GetByID(ctx, firstID)
	require.NoError(t, err)

	// 首次保存后会话携带分配的 ID，再次保存走更新而非插入
	s.SetContent("expanded")
	secondID, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	got, err := env.noteRepo.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "expanded", got.Content)
	assert.Equal(t, first.CreatedAt.Unix(), got.CreatedAt.Unix())

	all := env.noteRepo.All().Get()
	assert.Len(t, all, 1)
}

func TestEditSessionLoadAndSave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	id, err := env.noteRepo.Insert(ctx, &domain.Note{
		Title:     "original",
		Content:   "body",
		CreatedAt: created,
		UpdatedAt: created,
	})
	require.NoError(t, err)

	s := NewEditSession(env.noteRepo, env.logger)
	require.NoError(t, s.Load(ctx, id))
	assert.True(t, s.HasContent())

	draft := s.Snapshot()
	assert.Equal(t, id, draft.ID)
	assert.Equal(t, "original", draft.Title)

	s.SetTitle("renamed")
	savedID, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, savedID)

	got, err := env.noteRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	// 更新保留原 createdAt，updatedAt 刷新为保存时间
	assert.Equal(t, created.Unix(), got.CreatedAt.Unix())
	assert.True(t, got.UpdatedAt.After(created))
}

func TestEditSessionLoadMissingNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewEditSession(env.noteRepo, env.logger)
	// 笔记不存在时静默保持空白草稿
	require.NoError(t, s.Load(ctx, 404))
	assert.False(t, s.HasContent())

	s.SetTitle("fresh")
	id, err := s.Save(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, int64(404), id)
}

func TestEditSessionSetCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	catID, err := env.categoryRepo.Insert(ctx, &domain.Category{Name: "Work", Color: domain.DefaultCategoryColor})
	require.NoError(t, err)

	s := NewEditSession(env.noteRepo, env.logger)
	s.SetTitle("standup")
	s.SetCategory(&catID)

	id, err := s.Save(ctx)
	require.NoError(t, err)

	got, err := env.noteRepo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, catID, *got.CategoryID)

	// 置回未归类
	s.SetCategory(nil)
	_, err = s.Save(ctx)
	require.NoError(t, err)

	got, err = env.noteRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestEditSessionReset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewEditSession(env.noteRepo, env.logger)
	s.SetTitle("draft")
	_, err := s.Save(ctx)
	require.NoError(t, err)

	s.Reset()
	assert.False(t, s.HasContent())

	// 重复 Reset 无副作用
	s.Reset()

	// Reset 后保存产生新笔记
	s.SetTitle("another")
	_, err = s.Save(ctx)
	require.NoError(t, err)
	assert.Len(t, env.noteRepo.All().Get(), 2)
}

func TestEditSessionSavedFlag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewEditSession(env.noteRepo, env.logger)
	assert.False(t, s.IsSaved().Get())

	var flags []bool
	unsub := s.IsSaved().Subscribe(func(v bool) {
		flags = append(flags, v)
	})
	defer unsub()

	s.SetTitle("draft")
	_, err := s.Save(ctx)
	require.NoError(t, err)
	assert.True(t, s.IsSaved().Get())

	s.Reset()
	assert.False(t, s.IsSaved().Get())

	// 订阅时投递当前值，保存与重置各推一次
	assert.Equal(t, []bool{false, true, false}, flags)
}

func TestEditSessionFieldStates(t *testing.T) {
	env := newTestEnv(t)

	s := NewEditSession(env.noteRepo, env.logger)

	var titles []string
	unsub := s.Title().Subscribe(func(v string) {
		titles = append(titles, v)
	})
	defer unsub()

	s.SetTitle("a")
	s.SetTitle("ab")
	assert.Equal(t, []string{"", "a", "ab"}, titles)

	s.SetContent("body")
	assert.Equal(t, "body", s.Content().Get())

	catID := int64(7)
	s.SetCategory(&catID)
	require.NotNil(t, s.CategoryID().Get())
	assert.Equal(t, catID, *s.CategoryID().Get())
}

func TestEditSessionManager(t *testing.T) {
	env := newTestEnv(t)

	m := NewEditSessionManager(env.noteRepo, env.logger)
	assert.Zero(t, m.Count())

	token, session := m.Open()
	require.NotEmpty(t, token)
	require.NotNil(t, session)
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(token)
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = m.Get("no-such-token")
	assert.False(t, ok)

	m.Close(token)
	_, ok = m.Get(token)
	assert.False(t, ok)
	assert.Zero(t, m.Count())

	// 重复关闭无副作用
	m.Close(token)
}
