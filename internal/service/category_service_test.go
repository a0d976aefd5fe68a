package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modernnotes/modern-notes-service/internal/domain"
)

func TestCategoryServiceAdd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewCategoryService(env.categoryRepo, env.noteRepo, env.logger)

	id, err := s.Add(ctx, "  Work  ", 0)
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	// 名称去除首尾空白，未指定颜色时使用默认值
	assert.Equal(t, "Work", got.Name)
	assert.Equal(t, domain.DefaultCategoryColor, got.Color)

	id2, err := s.Add(ctx, "Home", 0xFFE91E63)
	require.NoError(t, err)
	got2, err := s.Get(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, int64(0xFFE91E63), got2.Color)
}

func TestCategoryServiceUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewCategoryService(env.categoryRepo, env.noteRepo, env.logger)

	id, err := s.Add(ctx, "Work", 0)
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)

	got.Name = " Projects "
	got.Color = 0xFF03A9F4
	require.NoError(t, s.Update(ctx, got))

	got, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Projects", got.Name)
	assert.Equal(t, int64(0xFF03A9F4), got.Color)
}

func TestCategoryServiceDeleteDetachesNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewCategoryService(env.categoryRepo, env.noteRepo, env.logger)

	id, err := s.Add(ctx, "Work", 0)
	require.NoError(t, err)

	now := time.Now()
	noteID, err := env.noteRepo.Insert(ctx, &domain.Note{Title: "standup", CategoryID: &id, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))

	// 分类消失，笔记保留且置为未归类
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	note, err := env.noteRepo.GetByID(ctx, noteID)
	require.NoError(t, err)
	assert.Nil(t, note.CategoryID)
}

func TestCategoryServiceLiveViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewCategoryService(env.categoryRepo, env.noteRepo, env.logger)

	id, err := s.Add(ctx, "Work", 0)
	require.NoError(t, err)

	count := s.NoteCount(id)
	assert.Zero(t, count.Get())

	now := time.Now()
	_, err = env.noteRepo.Insert(ctx, &domain.Note{Title: "standup", CategoryID: &id, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Get())

	categories := s.Categories().Get()
	require.Len(t, categories, 1)
	assert.Equal(t, "Work", categories[0].Name)
}
