// Package routers 组装 HTTP 路由与中间件
package routers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modernnotes/modern-notes-service/internal/app"
	"github.com/modernnotes/modern-notes-service/internal/middleware"
	"github.com/modernnotes/modern-notes-service/internal/routers/api_router"
	"github.com/modernnotes/modern-notes-service/internal/routers/websocket_router"
	"github.com/modernnotes/modern-notes-service/pkg/limiter"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/sessions",
		FillInterval: time.Second,
		Capacity:     50,
		Quantum:      50,
	},
	limiter.BucketRule{
		Key:          "/api/notes/view/search",
		FillInterval: time.Second,
		Capacity:     20,
		Quantum:      20,
	},
)

// NewRouter 创建 API 路由
func NewRouter(appContainer *app.App) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()
	r.NoRoute(middleware.NoFound())

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)
		sessionHandler := api_router.NewSessionHandler(appContainer)
		categoryHandler := api_router.NewCategoryHandler(appContainer)
		settingHandler := api_router.NewSettingHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		liveHandler := websocket_router.NewLiveHandler(appContainer)

		api.GET("/version", versionHandler.ServerVersion)

		// 笔记视图
		api.GET("/notes", noteHandler.List)
		api.GET("/notes/groups", noteHandler.Groups)
		api.GET("/notes/view/search", noteHandler.Search)
		api.GET("/notes/:id", noteHandler.Get)
		api.DELETE("/notes/:id", noteHandler.Delete)

		// 编辑会话
		api.POST("/sessions", sessionHandler.Open)
		api.GET("/sessions/:token", sessionHandler.Get)
		api.PUT("/sessions/:token", sessionHandler.Update)
		api.POST("/sessions/:token/save", sessionHandler.Save)
		api.POST("/sessions/:token/reset", sessionHandler.Reset)
		api.DELETE("/sessions/:token", sessionHandler.Close)

		// 分类
		api.GET("/categories", categoryHandler.List)
		api.POST("/categories", categoryHandler.Create)
		api.PUT("/categories/:id", categoryHandler.Update)
		api.DELETE("/categories/:id", categoryHandler.Delete)

		// 偏好
		api.GET("/settings/theme", settingHandler.GetTheme)
		api.PUT("/settings/theme", settingHandler.UpdateTheme)

		// 实时推送
		api.GET("/live", liveHandler.Serve())
	}

	return r
}
