package dto

// SessionOpenRequest 打开编辑会话的请求参数
// noteId 为空表示新建草稿，否则从已有笔记装载
type SessionOpenRequest struct {
	NoteID *int64 `json:"noteId" form:"noteId"`
}

// SessionTokenRequest 会话令牌路径参数
type SessionTokenRequest struct {
	Token string `uri:"token" binding:"required,uuid"`
}

// SessionDraftRequest 更新草稿的请求参数
// 指针字段为 nil 表示该字段不动；clearCategory 显式把分类置回未归类
type SessionDraftRequest struct {
	Title         *string `json:"title" form:"title"`
	Content       *string `json:"content" form:"content"`
	CategoryID    *int64  `json:"categoryId" form:"categoryId"`
	ClearCategory bool    `json:"clearCategory" form:"clearCategory"`
}

// SessionDTO 编辑会话当前状态
type SessionDTO struct {
	Token      string   `json:"token"`
	Draft      *NoteDTO `json:"draft"`
	HasContent bool     `json:"hasContent"`
	IsSaved    bool     `json:"isSaved"`
}

// SessionSaveDTO 保存结果
type SessionSaveDTO struct {
	ID int64 `json:"id"`
}
