package dao

import (
	"context"
	"testing"
	"time"

	"github.com/modernnotes/modern-notes-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDao 创建基于内存库的 Dao
// 内存库必须限制为单连接，否则每个连接拿到的是独立的库
func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := NewDBEngine(&DatabaseConfig{
		Path:         ":memory:",
		AutoMigrate:  true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	return New(db)
}

func testTime(offset time.Duration) time.Time {
	return time.Now().Add(offset).Truncate(time.Second)
}

func TestNoteInsertAndGet(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	now := testTime(0)
	src := &domain.Note{
		Title:     "Grocery list",
		Content:   "buy milk",
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := d.Notes().Insert(ctx, src)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := d.Notes().GetByID(ctx, id)
	require.NoError(t, err)

	// 取回的记录与插入内容一致，仅 ID 为新分配值
	assert.Equal(t, id, got.ID)
	assert.Equal(t, src.Title, got.Title)
	assert.Equal(t, src.Content, got.Content)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, now.Unix(), got.CreatedAt.Unix())
	assert.Equal(t, now.Unix(), got.UpdatedAt.Unix())
}

func TestNoteGetByIDNotFound(t *testing.T) {
	d := newTestDao(t)

	_, err := d.Notes().GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteUpdateReplacesRecord(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	created := testTime(-time.Hour)
	id, err := d.Notes().Insert(ctx, &domain.Note{
		Title:     "draft",
		Content:   "v1",
		CreatedAt: created,
		UpdatedAt: created,
	})
	require.NoError(t, err)

	updated := testTime(0)
	err = d.Notes().Update(ctx, &domain.Note{
		ID:        id,
		Title:     "draft",
		Content:   "v2",
		CreatedAt: created,
		UpdatedAt: updated,
	})
	require.NoError(t, err)

	// 更新而非插入：行数不变
	assert.Len(t, d.Notes().All().Get(), 1)

	got, err := d.Notes().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
	assert.Equal(t, created.Unix(), got.CreatedAt.Unix())
	assert.Equal(t, updated.Unix(), got.UpdatedAt.Unix())
	assert.Greater(t, got.UpdatedAt.Unix(), got.CreatedAt.Unix())
}

func TestNoteDeleteByID(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	now := testTime(0)
	id, err := d.Notes().Insert(ctx, &domain.Note{Title: "gone", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	require.NoError(t, d.Notes().DeleteByID(ctx, id))

	_, err = d.Notes().GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, d.Notes().All().Get())
}

func TestNoteAllLiveAndOrdered(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	var snapshots [][]*domain.Note
	unsub := d.Notes().All().Subscribe(func(notes []*domain.Note) {
		snapshots = append(snapshots, notes)
	})
	defer unsub()

	// 新订阅者立即收到当前快照（空）
	require.Len(t, snapshots, 1)
	assert.Empty(t, snapshots[0])

	older := testTime(-time.Hour)
	newer := testTime(0)
	_, err := d.Notes().Insert(ctx, &domain.Note{Title: "older", CreatedAt: older, UpdatedAt: older})
	require.NoError(t, err)
	_, err = d.Notes().Insert(ctx, &domain.Note{Title: "newer", CreatedAt: newer, UpdatedAt: newer})
	require.NoError(t, err)

	require.Len(t, snapshots, 3)

	// 按 updatedAt 倒序
	last := snapshots[len(snapshots)-1]
	require.Len(t, last, 2)
	assert.Equal(t, "newer", last[0].Title)
	assert.Equal(t, "older", last[1].Title)
}

func TestNoteSearch(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	now := testTime(0)
	for _, n := range []*domain.Note{
		{Title: "Grocery list", CreatedAt: now, UpdatedAt: now},
		{Content: "buy milk", CreatedAt: now, UpdatedAt: now},
		{Title: "Unrelated", CreatedAt: now, UpdatedAt: now},
	} {
		_, err := d.Notes().Insert(ctx, n)
		require.NoError(t, err)
	}

	got := d.Notes().Search("milk").Get()
	require.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Content)
}

func TestNoteSearchNow(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	now := testTime(0)
	_, err := d.Notes().Insert(ctx, &domain.Note{Content: "buy milk", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	got, err := d.Notes().SearchNow(ctx, "milk")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Content)

	// 一次性快照不注册实时查询
	assert.Empty(t, d.notes.searches)
}

func TestNoteSearchLiveUpdates(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	var last []*domain.Note
	unsub := d.Notes().Search("milk").Subscribe(func(notes []*domain.Note) {
		last = notes
	})
	defer unsub()
	assert.Empty(t, last)

	now := testTime(0)
	_, err := d.Notes().Insert(ctx, &domain.Note{Content: "buy milk", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	require.Len(t, last, 1)
	assert.Equal(t, "buy milk", last[0].Content)
}

func TestNoteSearchWildcardsAreLiteral(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	now := testTime(0)
	_, err := d.Notes().Insert(ctx, &domain.Note{Content: "progress 100%", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = d.Notes().Insert(ctx, &domain.Note{Content: "progress 100x", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	// % 按字面量匹配，不作为通配符
	got := d.Notes().Search("100%").Get()
	require.Len(t, got, 1)
	assert.Equal(t, "progress 100%", got[0].Content)

	// _ 同理
	assert.Empty(t, d.Notes().Search("10_%").Get())
}

func TestNoteCountByCategory(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	catID, err := d.Categories().Insert(ctx, &domain.Category{Name: "Work", Color: domain.DefaultCategoryColor, CreatedAt: testTime(0)})
	require.NoError(t, err)

	var counts []int64
	unsub := d.Notes().CountByCategory(catID).Subscribe(func(c int64) {
		counts = append(counts, c)
	})
	defer unsub()
	assert.Equal(t, []int64{0}, counts)

	now := testTime(0)
	_, err = d.Notes().Insert(ctx, &domain.Note{Title: "task", CategoryID: &catID, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	assert.Equal(t, int64(1), counts[len(counts)-1])
}

func TestNoteIdleLiveQueriesPruned(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	unsub := d.Notes().Search("milk").Subscribe(func([]*domain.Note) {})
	unsub()

	// 写操作触发刷新，已退订的查询被回收
	now := testTime(0)
	_, err := d.Notes().Insert(ctx, &domain.Note{Title: "x", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	d.notes.mu.Lock()
	defer d.notes.mu.Unlock()
	assert.Empty(t, d.notes.searches)
}
