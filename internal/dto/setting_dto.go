package dto

// ThemeModeUpdateRequest 设置主题模式请求参数
// 指针承接 0 值，取值合法性由业务层校验
type ThemeModeUpdateRequest struct {
	Mode *int `json:"mode" form:"mode" binding:"required"`
}

// ThemeModeDTO 当前主题模式
type ThemeModeDTO struct {
	Mode int `json:"mode"`
}
