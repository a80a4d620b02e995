package review

import (
	"context"
	"errors"
	"time"

	"github.com/readcoach/api/internal/model"
)

// ErrNotFound is returned when the referenced vocabulary item does not exist
// for the given owner. Any other error from a Store is a storage failure and
// is passed through to the caller unchanged.
var ErrNotFound = errors.New("vocabulary item not found")

// Store is the persistence contract the scheduler runs on. Find methods
// return ErrNotFound when no matching item exists; QueryDue must treat a
// NULL next_review_at as due.
type Store interface {
	FindByOwnerAndWord(ctx context.Context, ownerID int64, word string) (*model.VocabularyItem, error)
	FindByID(ctx context.Context, ownerID int64, id string) (*model.VocabularyItem, error)
	Insert(ctx context.Context, item *model.VocabularyItem) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	QueryDue(ctx context.Context, ownerID int64, now time.Time) ([]model.VocabularyItem, error)
	QueryAll(ctx context.Context, ownerID int64) ([]model.VocabularyItem, error)
}
