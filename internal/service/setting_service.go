package service

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/pkg/livestate"
)

// ErrInvalidThemeMode 主题模式取值不合法
var ErrInvalidThemeMode = errors.New("invalid theme mode")

// SettingService 应用偏好管理
// 主题模式以整数持久化，启动时读回并发布为实时值；
// 键缺失或值损坏时回退到跟随系统
type SettingService struct {
	preferences domain.PreferenceStore
	logger      *zap.Logger

	themeMode *livestate.State[int]
}

// NewSettingService 创建 SettingService 并装载持久化的主题模式
func NewSettingService(ctx context.Context, preferences domain.PreferenceStore, logger *zap.Logger) *SettingService {
	s := &SettingService{
		preferences: preferences,
		logger:      logger,
		themeMode:   livestate.New(domain.ThemeSystem),
	}

	value, err := preferences.Get(ctx, domain.ThemeModeKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("SettingService load theme mode err", zap.Error(err))
		}
		return s
	}
	mode, err := strconv.Atoi(value)
	if err != nil || !domain.IsValidThemeMode(mode) {
		logger.Warn("SettingService discards corrupt theme mode", zap.String("value", value))
		return s
	}
	s.themeMode.Set(mode)
	return s
}

// ThemeMode 当前主题模式实时值
func (s *SettingService) ThemeMode() *livestate.State[int] {
	return s.themeMode
}

// SetThemeMode 设置主题模式并持久化
// 取值限定浅色、深色、跟随系统，非法值拒绝且不触碰存储
func (s *SettingService) SetThemeMode(ctx context.Context, mode int) error {
	if !domain.IsValidThemeMode(mode) {
		return errors.WithStack(ErrInvalidThemeMode)
	}
	if err := s.preferences.Set(ctx, domain.ThemeModeKey, strconv.Itoa(mode)); err != nil {
		s.logger.Error("SettingService.SetThemeMode err", zap.Int("mode", mode), zap.Error(err))
		return err
	}
	s.themeMode.Set(mode)
	return nil
}
