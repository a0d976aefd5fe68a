package api_router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/app"
	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/dto"
	"github.com/modernnotes/modern-notes-service/internal/service"
	pkgapp "github.com/modernnotes/modern-notes-service/pkg/app"
	"github.com/modernnotes/modern-notes-service/pkg/code"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// Groups 获取按日期分组的笔记视图
// q 非空走搜索模式，category 非空时按分类过滤，两者可叠加
func (h *NoteHandler) Groups(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGroupsRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Groups.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	var source []*domain.Note
	if params.Query != "" {
		var err error
		source, err = h.App.NoteRepo.SearchNow(c.Request.Context(), params.Query)
		if err != nil {
			response.ToResponse(h.toErrorCode(err))
			return
		}
	} else {
		source = h.App.NoteRepo.All().Get()
	}

	if params.Category != nil {
		filtered := make([]*domain.Note, 0, len(source))
		for _, n := range source {
			if n.CategoryID != nil && *n.CategoryID == *params.Category {
				filtered = append(filtered, n)
			}
		}
		source = filtered
	}

	groups := service.GroupNotesByDate(source, time.Now())

	groupViewCounter.Inc()
	response.ToResponse(code.Success.WithData(dto.GroupsToDTO(groups)))
}

// List 获取全部笔记，按更新时间倒序
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.WithData(dto.NotesToDTO(h.App.NoteRepo.All().Get())))
}

// Search 搜索笔记，标题或正文包含子串即命中
func (h *NoteHandler) Search(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteSearchRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Search.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	results, err := h.App.NoteRepo.SearchNow(c.Request.Context(), params.Query)
	if err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}
	if params.Category != nil {
		filtered := make([]*domain.Note, 0, len(results))
		for _, n := range results {
			if n.CategoryID != nil && *n.CategoryID == *params.Category {
				filtered = append(filtered, n)
			}
		}
		results = filtered
	}

	searchCounter.Inc()
	response.ToResponse(code.Success.WithData(dto.NotesToDTO(results)))
}

// Get 获取单条笔记详情
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteIDRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	note, err := h.App.NoteRepo.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	response.ToResponse(code.Success.WithData(dto.NoteToDTO(note)))
}

// Delete 删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteIDRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.NoteListService.DeleteNote(c.Request.Context(), params.ID); err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	noteDeleteCounter.Inc()
	response.ToResponse(code.Success)
}
