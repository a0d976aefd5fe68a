package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidError 单个参数校验错误
type ValidError struct {
	Key     string
	Message string
}

func (v *ValidError) Error() string {
	return v.Message
}

// ValidErrors 参数校验错误集合
type ValidErrors []*ValidError

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

// Errors 返回全部错误消息
func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Key+": "+err.Message)
	}
	return errs
}

// BindAndValid 绑定请求参数并校验
// 返回是否通过与具体的校验错误
func BindAndValid(c *gin.Context, obj interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	if err := c.ShouldBind(obj); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				errs = append(errs, &ValidError{
					Key:     verr.Field(),
					Message: verr.Tag(),
				})
			}
		} else {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
		}
		return false, errs
	}
	return true, nil
}

// BindUriAndValid 绑定 URI 参数并校验
func BindUriAndValid(c *gin.Context, obj interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	if err := c.ShouldBindUri(obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "uri",
			Message: err.Error(),
		})
		return false, errs
	}
	return true, nil
}
