package api_router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/app"
	"github.com/modernnotes/modern-notes-service/internal/dto"
	"github.com/modernnotes/modern-notes-service/internal/service"
	pkgapp "github.com/modernnotes/modern-notes-service/pkg/app"
	"github.com/modernnotes/modern-notes-service/pkg/code"
)

// SessionHandler 编辑会话 API 路由处理器
type SessionHandler struct {
	*Handler
}

// NewSessionHandler 创建 SessionHandler 实例
func NewSessionHandler(a *app.App) *SessionHandler {
	return &SessionHandler{
		Handler: NewHandler(a),
	}
}

// sessionDTO 组装会话状态响应
func sessionDTO(token string, s *service.EditSession) *dto.SessionDTO {
	return &dto.SessionDTO{
		Token:      token,
		Draft:      dto.NoteToDTO(s.Snapshot()),
		HasContent: s.HasContent(),
		IsSaved:    s.IsSaved().Get(),
	}
}

// Open 打开编辑会话
// noteId 为空时创建空白草稿；指定的笔记不存在时同样得到空白草稿
func (h *SessionHandler) Open(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SessionOpenRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.Open.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	token, session := h.App.EditSessionManager.Open()

	if params.NoteID != nil {
		if err := session.Load(c.Request.Context(), *params.NoteID); err != nil {
			h.App.EditSessionManager.Close(token)
			response.ToResponse(h.toErrorCode(err))
			return
		}
	}

	response.ToResponse(code.Success.WithData(sessionDTO(token, session)))
}

// Get 获取会话当前草稿
func (h *SessionHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	token, session, ok := h.bindSession(c)
	if !ok {
		return
	}

	response.ToResponse(code.Success.WithData(sessionDTO(token, session)))
}

// Update 更新会话草稿
// 指针字段为 nil 表示不动该字段，clearCategory 显式置回未归类
func (h *SessionHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	token, session, ok := h.bindSession(c)
	if !ok {
		return
	}

	params := &dto.SessionDraftRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if params.Title != nil {
		session.SetTitle(*params.Title)
	}
	if params.Content != nil {
		session.SetContent(*params.Content)
	}
	if params.ClearCategory {
		session.SetCategory(nil)
	} else if params.CategoryID != nil {
		session.SetCategory(params.CategoryID)
	}

	response.ToResponse(code.Success.WithData(sessionDTO(token, session)))
}

// Save 保存会话草稿
// 空白草稿直接保存会落一条空笔记，客户端用 hasContent 决定按钮可用性
func (h *SessionHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	_, session, ok := h.bindSession(c)
	if !ok {
		return
	}

	id, err := session.Save(c.Request.Context())
	if err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	noteSaveCounter.Inc()
	response.ToResponse(code.Success.WithData(&dto.SessionSaveDTO{ID: id}))
}

// Reset 清空会话草稿，回到空白新建状态
func (h *SessionHandler) Reset(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	token, session, ok := h.bindSession(c)
	if !ok {
		return
	}

	session.Reset()
	response.ToResponse(code.Success.WithData(sessionDTO(token, session)))
}

// Close 关闭会话并丢弃草稿
func (h *SessionHandler) Close(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SessionTokenRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	h.App.EditSessionManager.Close(params.Token)
	response.ToResponse(code.Success)
}

// bindSession 解析令牌并取会话，失败时已写响应
func (h *SessionHandler) bindSession(c *gin.Context) (string, *service.EditSession, bool) {
	response := pkgapp.NewResponse(c)
	params := &dto.SessionTokenRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return "", nil, false
	}

	session, ok := h.App.EditSessionManager.Get(params.Token)
	if !ok {
		response.ToResponse(code.ErrorSessionNotFound)
		return "", nil, false
	}

	return params.Token, session, true
}
