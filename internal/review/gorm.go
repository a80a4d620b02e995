package review

import (
	"context"
	"errors"
	"time"

	"github.com/readcoach/api/internal/model"
	"gorm.io/gorm"
)

// GormStore is the gorm-backed Store used in production and in tests (via
// the sqlite driver).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByOwnerAndWord(ctx context.Context, ownerID int64, word string) (*model.VocabularyItem, error) {
	var item model.VocabularyItem
	result := s.db.WithContext(ctx).Where("owner_id = ? AND word = ?", ownerID, word).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

func (s *GormStore) FindByID(ctx context.Context, ownerID int64, id string) (*model.VocabularyItem, error) {
	var item model.VocabularyItem
	result := s.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

func (s *GormStore) Insert(ctx context.Context, item *model.VocabularyItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *GormStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.VocabularyItem{}).Where("id = ?", id).Updates(fields).Error
}

func (s *GormStore) QueryDue(ctx context.Context, ownerID int64, now time.Time) ([]model.VocabularyItem, error) {
	var items []model.VocabularyItem
	result := s.db.WithContext(ctx).
		Where("owner_id = ? AND (next_review_at IS NULL OR next_review_at <= ?)", ownerID, now).
		Order("next_review_at").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (s *GormStore) QueryAll(ctx context.Context, ownerID int64) ([]model.VocabularyItem, error) {
	var items []model.VocabularyItem
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("add_count DESC, word ASC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}
