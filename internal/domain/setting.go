package domain

// 主题模式取值
const (
	ThemeLight  = 0
	ThemeDark   = 1
	ThemeSystem = 2
)

// ThemeModeKey 主题偏好的存储键
const ThemeModeKey = "theme_mode"

// IsValidThemeMode 判断主题模式取值是否合法
func IsValidThemeMode(mode int) bool {
	return mode == ThemeLight || mode == ThemeDark || mode == ThemeSystem
}
