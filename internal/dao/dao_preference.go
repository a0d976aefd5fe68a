package dao

import (
	"context"
	"errors"

	"github.com/modernnotes/modern-notes-service/internal/domain"
	"github.com/modernnotes/modern-notes-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// preferenceStore 实现 domain.PreferenceStore
type preferenceStore struct {
	dao *Dao
}

func newPreferenceStore(dao *Dao) *preferenceStore {
	return &preferenceStore{dao: dao}
}

// Get 读取偏好值
func (s *preferenceStore) Get(ctx context.Context, key string) (string, error) {
	var m model.Preference
	err := s.dao.db.WithContext(ctx).Where("key = ?", key).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return m.Value, nil
}

// Set 写入偏好值，键已存在时覆盖
func (s *preferenceStore) Set(ctx context.Context, key string, value string) error {
	m := &model.Preference{Key: key, Value: value}
	return s.dao.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(m).Error
}
