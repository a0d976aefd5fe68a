package model

import "github.com/modernnotes/modern-notes-service/pkg/timex"

const TableNameNote = "notes"

// Note mapped from table <notes>
// 外键约束由 DAO 事务保证（分类删除时置空），不依赖数据库级联
type Note struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title      string     `gorm:"column:title" json:"title"`
	Content    string     `gorm:"column:content" json:"content"`
	CategoryID *int64     `gorm:"column:category_id;index:idx_category_id" json:"categoryId"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
