package api_router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/app"
	"github.com/modernnotes/modern-notes-service/internal/dto"
	pkgapp "github.com/modernnotes/modern-notes-service/pkg/app"
	"github.com/modernnotes/modern-notes-service/pkg/code"
)

// SettingHandler 应用偏好 API 路由处理器
type SettingHandler struct {
	*Handler
}

// NewSettingHandler 创建 SettingHandler 实例
func NewSettingHandler(a *app.App) *SettingHandler {
	return &SettingHandler{
		Handler: NewHandler(a),
	}
}

// GetTheme 获取当前主题模式
func (h *SettingHandler) GetTheme(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.WithData(&dto.ThemeModeDTO{
		Mode: h.App.SettingService.ThemeMode().Get(),
	}))
}

// UpdateTheme 设置主题模式并持久化
func (h *SettingHandler) UpdateTheme(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ThemeModeUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SettingHandler.UpdateTheme.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.SettingService.SetThemeMode(c.Request.Context(), *params.Mode); err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	response.ToResponse(code.Success.WithData(&dto.ThemeModeDTO{Mode: *params.Mode}))
}
