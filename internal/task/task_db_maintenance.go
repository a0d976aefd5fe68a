package task

import (
	"context"
	"time"

	"github.com/modernnotes/modern-notes-service/internal/app"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DbMaintenanceTask SQLite 维护任务
// 按调度表达式执行查询计划优化与 WAL 检查点收缩
type DbMaintenanceTask struct {
	app      *app.App
	schedule cron.Schedule
}

// Name 返回任务名称
func (t *DbMaintenanceTask) Name() string {
	return "DbMaintenance"
}

// LoopInterval 返回执行间隔，cron 任务不使用
func (t *DbMaintenanceTask) LoopInterval() time.Duration {
	return 0
}

// IsStartupRun 是否立即执行一次
func (t *DbMaintenanceTask) IsStartupRun() bool {
	return false
}

// Schedule 返回 cron 调度
func (t *DbMaintenanceTask) Schedule() cron.Schedule {
	return t.schedule
}

// Run 执行维护任务
func (t *DbMaintenanceTask) Run(ctx context.Context) error {
	db := t.app.Dao.DB().WithContext(ctx)

	statements := []string{
		"PRAGMA optimize",
		"PRAGMA wal_checkpoint(TRUNCATE)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.app.Logger().Error("task log",
				zap.String("task", t.Name()),
				zap.String("statement", stmt),
				zap.String("msg", "failed"),
				zap.Error(err))
			return err
		}
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.String("msg", "success"))

	return nil
}

// NewDbMaintenanceTask 创建维护任务
// 调度表达式为空表示禁用
func NewDbMaintenanceTask(appContainer *app.App) (Task, error) {
	spec := appContainer.Config().App.MaintenanceSchedule
	if spec == "" {
		return nil, nil
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}

	return &DbMaintenanceTask{app: appContainer, schedule: schedule}, nil
}

// init 自动注册维护任务
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewDbMaintenanceTask(appContainer)
	})
}
