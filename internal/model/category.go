package model

import "github.com/modernnotes/modern-notes-service/pkg/timex"

const TableNameCategory = "categories"

// Category mapped from table <categories>
type Category struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"column:name" json:"name"`
	Color     int64      `gorm:"column:color" json:"color"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
}

// TableName Category's table name
func (*Category) TableName() string {
	return TableNameCategory
}
