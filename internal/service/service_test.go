package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/dao"
	"github.com/modernnotes/modern-notes-service/internal/repository"
)

// testEnv 基于内存库的服务层测试环境
type testEnv struct {
	dao          *dao.Dao
	noteRepo     *repository.NoteRepository
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

// newTestEnv 创建测试环境
// 内存库必须限制为单连接，否则每个连接拿到的是独立的库
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := dao.NewDBEngine(&dao.DatabaseConfig{
		Path:         ":memory:",
		AutoMigrate:  true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	d := dao.New(db)
	return &testEnv{
		dao:          d,
		noteRepo:     repository.NewNoteRepository(d.Notes()),
		categoryRepo: repository.NewCategoryRepository(d.Categories()),
		logger:       zap.NewNop(),
	}
}
