// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/pkg/errors"

	"github.com/modernnotes/modern-notes-service/internal/app"
	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/service"
	"github.com/modernnotes/modern-notes-service/pkg/code"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// toErrorCode 把业务错误映射为响应状态码
func (h *Handler) toErrorCode(err error) *code.Code {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return code.ErrorNotFound
	case errors.Is(err, service.ErrInvalidThemeMode):
		return code.ErrorInvalidThemeMode
	default:
		return code.ErrorDBQuery
	}
}
