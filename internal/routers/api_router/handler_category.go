package api_router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/modernnotes/modern-notes-service/internal/app"
	"github.com/modernnotes/modern-notes-service/internal/dto"
	pkgapp "github.com/modernnotes/modern-notes-service/pkg/app"
	"github.com/modernnotes/modern-notes-service/pkg/code"
	"github.com/modernnotes/modern-notes-service/pkg/convert"
)

// CategoryHandler 分类 API 路由处理器
type CategoryHandler struct {
	*Handler
}

// NewCategoryHandler 创建 CategoryHandler 实例
func NewCategoryHandler(a *app.App) *CategoryHandler {
	return &CategoryHandler{
		Handler: NewHandler(a),
	}
}

// List 获取全部分类，附带各分类下的笔记数量
func (h *CategoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	categories := h.App.CategoryService.Categories().Get()
	out := make([]*dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		count := h.App.CategoryService.NoteCount(category.ID).Get()
		out = append(out, dto.CategoryToDTO(category, count))
	}

	response.ToResponse(code.Success.WithData(out))
}

// Create 新建分类
func (h *CategoryHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CategoryCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CategoryHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	id, err := h.App.CategoryService.Add(c.Request.Context(), params.Name, params.Color)
	if err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	category, err := h.App.CategoryService.Get(c.Request.Context(), id)
	if err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	response.ToResponse(code.Success.WithData(dto.CategoryToDTO(category, 0)))
}

// Update 更新分类名称与颜色
func (h *CategoryHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uriParams := &dto.CategoryIDRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, uriParams)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	params := &dto.CategoryUpdateRequest{}
	valid, errs = pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CategoryHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	category, err := h.App.CategoryService.Get(ctx, uriParams.ID)
	if err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	convert.StructAssign(params, category)
	if err := h.App.CategoryService.Update(ctx, category); err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	count := h.App.CategoryService.NoteCount(category.ID).Get()
	response.ToResponse(code.Success.WithData(dto.CategoryToDTO(category, count)))
}

// Delete 删除分类
// 引用该分类的笔记置为未归类，笔记本身保留
func (h *CategoryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CategoryIDRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	if err := h.App.CategoryService.Delete(c.Request.Context(), params.ID); err != nil {
		response.ToResponse(h.toErrorCode(err))
		return
	}

	response.ToResponse(code.Success)
}
