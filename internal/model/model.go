// Package model 定义数据库模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移全部表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Category{}, Note{}, Preference{})
}
