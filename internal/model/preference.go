package model

const TableNamePreference = "preferences"

// Preference mapped from table <preferences>
// 简单键值偏好存储（如主题模式）
type Preference struct {
	Key   string `gorm:"column:key;primaryKey" json:"key"`
	Value string `gorm:"column:value" json:"value"`
}

// TableName Preference's table name
func (*Preference) TableName() string {
	return TableNamePreference
}
