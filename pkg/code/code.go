// Package code 定义统一的业务状态码
package code

import (
	"fmt"
	"net/http"
)

// Code 业务状态码，携带消息与可选数据
type Code struct {
	code       int
	status     bool
	msg        string
	httpStatus int
	data       interface{}
	haveData   bool
	details    []string
}

var codes = map[int]string{}

// NewSuccess 注册一个成功状态码
func NewSuccess(code int, msg string) *Code {
	register(code, msg)
	return &Code{code: code, status: true, msg: msg, httpStatus: http.StatusOK}
}

// NewError 注册一个错误状态码
func NewError(code int, msg string) *Code {
	register(code, msg)
	return &Code{code: code, status: false, msg: msg, httpStatus: http.StatusOK}
}

func register(code int, msg string) {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("状态码 %d 已经存在，请更换一个", code))
	}
	codes[code] = msg
}

// Code 返回状态码数值
func (c *Code) Code() int {
	return c.code
}

// Status 返回状态标记
func (c *Code) Status() bool {
	return c.status
}

// Msg 返回状态消息
func (c *Code) Msg() string {
	return c.msg
}

// HttpStatusCode 返回 HTTP 状态码
func (c *Code) HttpStatusCode() int {
	return c.httpStatus
}

// Data 返回附加数据
func (c *Code) Data() interface{} {
	return c.data
}

// HaveData 判断是否携带数据
func (c *Code) HaveData() bool {
	return c.haveData
}

// Details 返回错误详情
func (c *Code) Details() []string {
	return c.details
}

// HaveDetails 判断是否携带详情
func (c *Code) HaveDetails() bool {
	return len(c.details) > 0
}

// WithData 返回携带数据的副本
func (c *Code) WithData(data interface{}) *Code {
	n := *c
	n.data = data
	n.haveData = true
	return &n
}

// WithDetails 返回携带详情的副本
func (c *Code) WithDetails(details ...string) *Code {
	n := *c
	n.details = append([]string{}, details...)
	return &n
}

// WithHttpStatus 返回携带指定 HTTP 状态码的副本
func (c *Code) WithHttpStatus(status int) *Code {
	n := *c
	n.httpStatus = status
	return &n
}
