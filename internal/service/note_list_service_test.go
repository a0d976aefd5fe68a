package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modernnotes/modern-notes-service/internal/domain"
)

// noteAt 构造一条指定更新时间的笔记
func noteAt(id int64, title string, updatedAt time.Time) *domain.Note {
	return &domain.Note{
		ID:        id,
		Title:     title,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestGroupNotesByDateEmpty(t *testing.T) {
	assert.Nil(t, GroupNotesByDate(nil, time.Now()))
	assert.Nil(t, GroupNotesByDate([]*domain.Note{}, time.Now()))
}

func TestGroupNotesByDateBuckets(t *testing.T) {
	// 固定正午做基准，避免跨 0 点带来的偶发偏移
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	notes := []*domain.Note{
		noteAt(1, "today", now),
		noteAt(2, "yesterday", now.Add(-26*time.Hour)),
		noteAt(3, "older", now.Add(-50*time.Hour)),
	}

	groups := GroupNotesByDate(notes, now)
	require.Len(t, groups, 3)

	assert.Equal(t, GroupLabelToday, groups[0].Label)
	assert.Equal(t, GroupLabelYesterday, groups[1].Label)
	assert.Equal(t, "March 8, 2026", groups[2].Label)

	for i, g := range groups {
		require.Len(t, g.Notes, 1)
		assert.Equal(t, int64(i+1), g.Notes[0].ID)
	}
}

func TestGroupNotesByDateBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 30, 0, 0, time.Local)
	startOfToday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	notes := []*domain.Note{
		noteAt(1, "first second of today", startOfToday),
		noteAt(2, "last second of yesterday", startOfToday.Add(-time.Second)),
		noteAt(3, "first second of yesterday", startOfToday.AddDate(0, 0, -1)),
		noteAt(4, "last second before yesterday", startOfToday.AddDate(0, 0, -1).Add(-time.Second)),
	}

	groups := GroupNotesByDate(notes, now)
	require.Len(t, groups, 3)

	assert.Equal(t, GroupLabelToday, groups[0].Label)
	require.Len(t, groups[0].Notes, 1)
	assert.Equal(t, int64(1), groups[0].Notes[0].ID)

	assert.Equal(t, GroupLabelYesterday, groups[1].Label)
	require.Len(t, groups[1].Notes, 2)
	assert.Equal(t, int64(2), groups[1].Notes[0].ID)
	assert.Equal(t, int64(3), groups[1].Notes[1].ID)

	assert.Equal(t, "March 8, 2026", groups[2].Label)
	require.Len(t, groups[2].Notes, 1)
	assert.Equal(t, int64(4), groups[2].Notes[0].ID)
}

func TestGroupNotesByDateFutureTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	groups := GroupNotesByDate([]*domain.Note{
		noteAt(1, "from the future", now.Add(48*time.Hour)),
		noteAt(2, "ordinary", now),
	}, now)

	// 未来时间戳不做特殊处理，归入今天且排在最前
	require.Len(t, groups, 1)
	assert.Equal(t, GroupLabelToday, groups[0].Label)
	require.Len(t, groups[0].Notes, 2)
	assert.Equal(t, int64(1), groups[0].Notes[0].ID)
}

func TestGroupNotesByDateStableOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	sameInstant := now.Add(-time.Hour)

	groups := GroupNotesByDate([]*domain.Note{
		noteAt(7, "first in input", sameInstant),
		noteAt(3, "second in input", sameInstant),
		noteAt(9, "third in input", sameInstant),
	}, now)

	// 相同 updatedAt 保持输入相对顺序
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Notes, 3)
	assert.Equal(t, int64(7), groups[0].Notes[0].ID)
	assert.Equal(t, int64(3), groups[0].Notes[1].ID)
	assert.Equal(t, int64(9), groups[0].Notes[2].ID)
}

func TestNoteListServiceBrowse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewNoteListService(env.noteRepo, env.categoryRepo, env.logger)
	defer s.Close()

	assert.Empty(t, s.DisplayedGroups().Get())

	now := time.Now()
	_, err := env.noteRepo.Insert(ctx, &domain.Note{Title: "alpha", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = env.noteRepo.Insert(ctx, &domain.Note{Title: "beta", CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second)})
	require.NoError(t, err)

	groups := s.DisplayedGroups().Get()
	require.Len(t, groups, 1)
	assert.Equal(t, GroupLabelToday, groups[0].Label)
	require.Len(t, groups[0].Notes, 2)
	assert.Equal(t, "beta", groups[0].Notes[0].Title)
	assert.Equal(t, "alpha", groups[0].Notes[1].Title)
}

func TestNoteListServiceCategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	catID, err := env.categoryRepo.Insert(ctx, &domain.Category{Name: "Work", Color: domain.DefaultCategoryColor})
	require.NoError(t, err)

	now := time.Now()
	_, err = env.noteRepo.Insert(ctx, &domain.Note{Title: "standup", CategoryID: &catID, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = env.noteRepo.Insert(ctx, &domain.Note{Title: "groceries", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	s := NewNoteListService(env.noteRepo, env.categoryRepo, env.logger)
	defer s.Close()

	s.SetCategoryFilter(&catID)
	groups := s.DisplayedGroups().Get()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Notes, 1)
	assert.Equal(t, "standup", groups[0].Notes[0].Title)

	// 取消过滤回到全量视图
	s.SetCategoryFilter(nil)
	groups = s.DisplayedGroups().Get()
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Notes, 2)
}

func TestNoteListServiceSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	now := time.Now()
	_, err := env.noteRepo.Insert(ctx, &domain.Note{Title: "Grocery list", Content: "buy milk", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = env.noteRepo.Insert(ctx, &domain.Note{Title: "Meeting notes", Content: "agenda", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	s := NewNoteListService(env.noteRepo, env.categoryRepo, env.logger)
	defer s.Close()

	s.SetSearchQuery("milk")
	assert.True(t, s.IsSearching().Get())

	groups := s.DisplayedGroups().Get()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Notes, 1)
	assert.Equal(t, "Grocery list", groups[0].Notes[0].Title)

	// 搜索模式下新增命中的笔记，视图实时更新
	_, err = env.noteRepo.Insert(ctx, &domain.Note{Title: "milkshake recipe", CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second)})
	require.NoError(t, err)
	groups = s.DisplayedGroups().Get()
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Notes, 2)

	// 清空搜索词回到浏览模式
	s.SetSearchQuery("")
	assert.False(t, s.IsSearching().Get())
	groups = s.DisplayedGroups().Get()
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Notes, 3)
}

func TestNoteListServiceSearchWithCategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	catID, err := env.categoryRepo.Insert(ctx, &domain.Category{Name: "Work", Color: domain.DefaultCategoryColor})
	require.NoError(t, err)

	now := time.Now()
	_, err = env.noteRepo.Insert(ctx, &domain.Note{Title: "milk run", CategoryID: &catID, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = env.noteRepo.Insert(ctx, &domain.Note{Title: "milk order", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	s := NewNoteListService(env.noteRepo, env.categoryRepo, env.logger)
	defer s.Close()

	// 分类过滤对搜索结果同样生效
	s.SetSearchQuery("milk")
	s.SetCategoryFilter(&catID)

	groups := s.DisplayedGroups().Get()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Notes, 1)
	assert.Equal(t, "milk run", groups[0].Notes[0].Title)
}

func TestNoteListServiceDeleteNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	now := time.Now()
	id, err := env.noteRepo.Insert(ctx, &domain.Note{Title: "to remove", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	s := NewNoteListService(env.noteRepo, env.categoryRepo, env.logger)
	defer s.Close()

	require.NoError(t, s.DeleteNote(ctx, id))
	assert.Empty(t, s.DisplayedGroups().Get())
}

func TestNoteListServiceClose(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewNoteListService(env.noteRepo, env.categoryRepo, env.logger)
	s.Close()

	now := time.Now()
	_, err := env.noteRepo.Insert(ctx, &domain.Note{Title: "after close", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	// 关闭后不再跟随上游变化
	assert.Empty(t, s.DisplayedGroups().Get())
}

// genGroupingNotes 生成更新时间散布在 now 前后若干天内的笔记
func genGroupingNotes(now time.Time) gopter.Gen {
	return gen.SliceOf(gen.Int64Range(-14*24*3600, 24*3600)).Map(func(offsets []int64) []*domain.Note {
		notes := make([]*domain.Note, len(offsets))
		for i, off := range offsets {
			notes[i] = noteAt(int64(i+1), "note", now.Add(time.Duration(off)*time.Second))
		}
		return notes
	})
}

func TestGroupNotesByDateProperties(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every note appears exactly once", prop.ForAll(
		func(notes []*domain.Note) bool {
			seen := make(map[int64]int)
			for _, g := range GroupNotesByDate(notes, now) {
				for _, n := range g.Notes {
					seen[n.ID]++
				}
			}
			if len(seen) != len(notes) {
				return false
			}
			for _, c := range seen {
				if c != 1 {
					return false
				}
			}
			return true
		},
		genGroupingNotes(now),
	))

	properties.Property("labels are unique and groups non-empty", prop.ForAll(
		func(notes []*domain.Note) bool {
			labels := make(map[string]bool)
			for _, g := range GroupNotesByDate(notes, now) {
				if len(g.Notes) == 0 || labels[g.Label] {
					return false
				}
				labels[g.Label] = true
			}
			return true
		},
		genGroupingNotes(now),
	))

	properties.Property("flattened output is sorted by updatedAt desc", prop.ForAll(
		func(notes []*domain.Note) bool {
			var flat []*domain.Note
			for _, g := range GroupNotesByDate(notes, now) {
				flat = append(flat, g.Notes...)
			}
			return sort.SliceIsSorted(flat, func(i, j int) bool {
				return flat[i].UpdatedAt.After(flat[j].UpdatedAt)
			})
		},
		genGroupingNotes(now),
	))

	properties.TestingRun(t)
}
