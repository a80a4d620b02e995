package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/readcoach/api/internal/model"
)

// Scheduler owns the vocabulary-item lifecycle: dedup on add, review-count
// increments and due-date computation. It holds no state of its own; all
// reads and writes go through the Store.
type Scheduler struct {
	store Store
	now   func() time.Time
}

func NewScheduler(store Store) *Scheduler {
	return &Scheduler{
		store: store,
		now:   time.Now,
	}
}

// AddOrUpdate records a submission of word for the given owner. The first
// submission creates the item; later submissions increment AddCount and
// overwrite the content fields only where the new submission supplies a
// non-empty value. An empty value never clears a stored one.
func (s *Scheduler) AddOrUpdate(ctx context.Context, ownerID int64, word, definition string, examples []string, sourcePassage, sourceQuestion string) (*model.VocabularyItem, error) {
	now := s.now()

	existing, err := s.store.FindByOwnerAndWord(ctx, ownerID, word)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		item := &model.VocabularyItem{
			ID:             uuid.NewString(),
			OwnerID:        ownerID,
			Word:           word,
			Definition:     definition,
			Examples:       pq.StringArray(examples),
			SourcePassage:  sourcePassage,
			SourceQuestion: sourceQuestion,
			AddCount:       1,
			ReviewCount:    0,
			CreatedAt:      now,
			LastAddDate:    now,
		}
		if err := s.store.Insert(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	fields := map[string]interface{}{
		"add_count":     existing.AddCount + 1,
		"last_add_date": now,
	}
	if definition != "" {
		fields["definition"] = definition
	}
	if len(examples) > 0 {
		fields["examples"] = pq.StringArray(examples)
	}
	if sourcePassage != "" {
		fields["source_passage"] = sourcePassage
	}
	if sourceQuestion != "" {
		fields["source_question"] = sourceQuestion
	}

	if err := s.store.UpdateFields(ctx, existing.ID, fields); err != nil {
		return nil, err
	}

	return s.store.FindByID(ctx, ownerID, existing.ID)
}

// MarkReviewed records a completed review: it bumps ReviewCount and pushes
// NextReviewAt out per the fixed interval table. This is the only code path
// that mutates review state. Returns ErrNotFound, without writing anything,
// when the item does not exist or belongs to a different owner.
func (s *Scheduler) MarkReviewed(ctx context.Context, ownerID int64, itemID string) (*model.VocabularyItem, error) {
	item, err := s.store.FindByID(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	newCount := item.ReviewCount + 1
	nextReview := now.AddDate(0, 0, NextIntervalDays(newCount))

	fields := map[string]interface{}{
		"review_count":     newCount,
		"last_reviewed_at": now,
		"next_review_at":   nextReview,
	}
	if err := s.store.UpdateFields(ctx, item.ID, fields); err != nil {
		return nil, err
	}

	return s.store.FindByID(ctx, ownerID, itemID)
}

// ListDue returns every item for the owner whose NextReviewAt is nil or has
// passed. Never-reviewed items carry a nil NextReviewAt and are therefore
// always due. Order is unspecified; callers sort if they care.
func (s *Scheduler) ListDue(ctx context.Context, ownerID int64) ([]model.VocabularyItem, error) {
	return s.store.QueryDue(ctx, ownerID, s.now())
}

// ListAll returns the owner's vocabulary ordered by AddCount descending then
// word ascending, so the most re-added words surface first.
func (s *Scheduler) ListAll(ctx context.Context, ownerID int64) ([]model.VocabularyItem, error) {
	return s.store.QueryAll(ctx, ownerID)
}
