// Package app 提供 HTTP 层的统一响应与参数校验工具
package app

import (
	"github.com/modernnotes/modern-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// Response 响应包装器
type Response struct {
	Ctx *gin.Context
}

// Res is the unified response structure: Code/Status/Msg/Data
// Res 是统一的响应结构：Code/Status/Msg/Data
// 可选字段使用 omitempty（nil 则不会被序列化）
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// NewResponse 创建响应包装器
func NewResponse(ctx *gin.Context) *Response {
	return &Response{Ctx: ctx}
}

// ToResponse 将状态码渲染为 JSON 响应
func (r *Response) ToResponse(c *code.Code) {
	res := Res{
		Code:    c.Code(),
		Status:  c.Status(),
		Message: c.Msg(),
	}
	if c.HaveData() {
		res.Data = c.Data()
	}
	if c.HaveDetails() {
		res.Details = c.Details()
	}
	r.Ctx.JSON(c.HttpStatusCode(), res)
}
