// Package domain 定义领域模型和接口
package domain

import "time"

// Note 笔记领域模型
// CategoryID 为 nil 表示未归类；分类删除时由存储层置空
type Note struct {
	ID         int64
	Title      string
	Content    string
	CategoryID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasContent 判断笔记是否有内容（标题或正文非空）
// UI 用同一谓词决定保存按钮是否可用
func (n *Note) HasContent() bool {
	return n.Title != "" || n.Content != ""
}

// Clone 返回笔记的浅拷贝
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	if n.CategoryID != nil {
		id := *n.CategoryID
		c.CategoryID = &id
	}
	return &c
}

// NoteGroup 按日期分组后的笔记视图
// 派生数据，随输入变化重算，从不落库
type NoteGroup struct {
	Label string  `json:"label"`
	Notes []*Note `json:"notes"`
}
