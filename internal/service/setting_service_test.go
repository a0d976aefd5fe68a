package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modernnotes/modern-notes-service/internal/domain"
)

func TestSettingServiceDefaultThemeMode(t *testing.T) {
	env := newTestEnv(t)

	s := NewSettingService(context.Background(), env.dao.Preferences(), env.logger)
	assert.Equal(t, domain.ThemeSystem, s.ThemeMode().Get())
}

func TestSettingServiceSetAndReload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewSettingService(ctx, env.dao.Preferences(), env.logger)

	var modes []int
	unsub := s.ThemeMode().Subscribe(func(mode int) {
		modes = append(modes, mode)
	})
	defer unsub()

	require.NoError(t, s.SetThemeMode(ctx, domain.ThemeDark))
	assert.Equal(t, []int{domain.ThemeSystem, domain.ThemeDark}, modes)

	// 重新构建服务读回持久化的值
	again := NewSettingService(ctx, env.dao.Preferences(), env.logger)
	assert.Equal(t, domain.ThemeDark, again.ThemeMode().Get())
}

func TestSettingServiceRejectsInvalidMode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewSettingService(ctx, env.dao.Preferences(), env.logger)

	err := s.SetThemeMode(ctx, 9)
	require.ErrorIs(t, err, ErrInvalidThemeMode)
	assert.Equal(t, domain.ThemeSystem, s.ThemeMode().Get())

	// 非法值未触碰存储
	_, err = env.dao.Preferences().Get(ctx, domain.ThemeModeKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingServiceCorruptStoredValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.dao.Preferences().Set(ctx, domain.ThemeModeKey, "banana"))

	s := NewSettingService(ctx, env.dao.Preferences(), env.logger)
	assert.Equal(t, domain.ThemeSystem, s.ThemeMode().Get())

	require.NoError(t, env.dao.Preferences().Set(ctx, domain.ThemeModeKey, "7"))
	s = NewSettingService(ctx, env.dao.Preferences(), env.logger)
	assert.Equal(t, domain.ThemeSystem, s.ThemeMode().Get())
}
