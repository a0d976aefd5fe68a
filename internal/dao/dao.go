// Package dao 实现数据访问层
package dao

import (
	"os"
	"time"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/model"
	"github.com/modernnotes/modern-notes-service/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	// Path SQLite 数据库文件路径，":memory:" 表示内存库
	Path string
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int
	// ConnMaxLifetime 连接可复用的最大时间，零值按 10 分钟处理
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime 空闲连接的最大存活时间
	ConnMaxIdleTime time.Duration
	// RunMode 运行模式，debug 时输出 SQL 日志
	RunMode string
	// TracerEnabled 是否启用 GORM 链路追踪插件
	TracerEnabled bool
}

// Dao 数据访问对象，聚合各实体的存储实现
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger

	notes       *noteStore
	categories  *categoryStore
	preferences *preferenceStore
}

// Option Dao 选项
type Option func(*Dao)

// WithLogger 注入日志器
func WithLogger(l *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = l
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{
		db:     db,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.notes = newNoteStore(d)
	d.categories = newCategoryStore(d)
	d.preferences = newPreferenceStore(d)

	return d
}

// DB 返回底层 GORM 连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// Notes 返回笔记存储
func (d *Dao) Notes() domain.NoteStore {
	return d.notes
}

// Categories 返回分类存储
func (d *Dao) Categories() domain.CategoryStore {
	return d.categories
}

// Preferences 返回偏好存储
func (d *Dao) Preferences() domain.PreferenceStore {
	return d.preferences
}

// refreshNotes 重新发布全部笔记实时查询的快照
func (d *Dao) refreshNotes() {
	d.notes.refresh()
}

// refreshCategories 重新发布全部分类实时查询的快照
func (d *Dao) refreshCategories() {
	d.categories.refresh()
}

// NewDBEngine 创建数据库引擎
func NewDBEngine(c *DatabaseConfig) (*gorm.DB, error) {

	if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
		if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(c.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	// SetMaxOpenConns 设置打开数据库连接的最大数量
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	// SetConnMaxLifetime 设置了连接可复用的最大时间
	lifetime := c.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = time.Minute * 10
	}
	sqlDB.SetConnMaxLifetime(lifetime)
	if c.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)
	}

	if c.TracerEnabled {
		_ = db.Use(&gormTracing.OpentracingPlugin{})
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}
