package review

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/readcoach/api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	// Unique shared-cache URI per test so gorm's connection pool sees one
	// database and tests stay isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.VocabularyItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewScheduler(NewGormStore(db))
}

func TestAddOrUpdate_CreatesItem(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	item, err := s.AddOrUpdate(ctx, 1, "ubiquitous", "present everywhere", []string{"Smartphones are ubiquitous."}, "a passage", "a question")
	if err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}
	if item.ID == "" {
		t.Fatalf("expected generated id")
	}
	if item.AddCount != 1 || item.ReviewCount != 0 {
		t.Fatalf("unexpected counters: add=%d review=%d", item.AddCount, item.ReviewCount)
	}
	if item.LastReviewedAt != nil || item.NextReviewAt != nil {
		t.Fatalf("expected nil review timestamps on a fresh item")
	}

	all, err := s.ListAll(ctx, 1)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one item, got %d", len(all))
	}
	if all[0].Word != "ubiquitous" || all[0].AddCount != 1 {
		t.Fatalf("unexpected item: %+v", all[0])
	}
}

func TestAddOrUpdate_DedupMergesNonEmptyFields(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	first, err := s.AddOrUpdate(ctx, 1, "pragmatic", "dealing with things sensibly", []string{"She took a pragmatic approach."}, "passage one", "question one")
	if err != nil {
		t.Fatalf("first AddOrUpdate failed: %v", err)
	}

	// Resubmission with empty definition/examples must not clear them.
	second, err := s.AddOrUpdate(ctx, 1, "pragmatic", "", nil, "passage two", "")
	if err != nil {
		t.Fatalf("second AddOrUpdate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("dedup should reuse the existing item: %s vs %s", second.ID, first.ID)
	}
	if second.AddCount != 2 {
		t.Fatalf("expected add_count 2, got %d", second.AddCount)
	}
	if second.Definition != "dealing with things sensibly" {
		t.Fatalf("empty definition overwrote stored value: %q", second.Definition)
	}
	if len(second.Examples) != 1 || second.Examples[0] != "She took a pragmatic approach." {
		t.Fatalf("empty examples overwrote stored value: %v", second.Examples)
	}
	if second.SourcePassage != "passage two" {
		t.Fatalf("non-empty source passage should win: %q", second.SourcePassage)
	}
	if second.SourceQuestion != "question one" {
		t.Fatalf("empty source question overwrote stored value: %q", second.SourceQuestion)
	}

	// Non-empty values overwrite.
	third, err := s.AddOrUpdate(ctx, 1, "pragmatic", "practical rather than idealistic", []string{"A pragmatic solution."}, "", "question three")
	if err != nil {
		t.Fatalf("third AddOrUpdate failed: %v", err)
	}
	if third.AddCount != 3 {
		t.Fatalf("expected add_count 3, got %d", third.AddCount)
	}
	if third.Definition != "practical rather than idealistic" {
		t.Fatalf("expected overwritten definition, got %q", third.Definition)
	}
	if len(third.Examples) != 1 || third.Examples[0] != "A pragmatic solution." {
		t.Fatalf("expected overwritten examples, got %v", third.Examples)
	}
	if third.SourcePassage != "passage two" {
		t.Fatalf("empty source passage overwrote stored value: %q", third.SourcePassage)
	}
	if third.ReviewCount != 0 || third.NextReviewAt != nil {
		t.Fatalf("dedup path must not touch review state")
	}
}

func TestAddOrUpdate_WordIsCaseSensitive(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	if _, err := s.AddOrUpdate(ctx, 1, "Polish", "relating to Poland", nil, "", ""); err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}
	if _, err := s.AddOrUpdate(ctx, 1, "polish", "to make smooth and shiny", nil, "", ""); err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}

	all, err := s.ListAll(ctx, 1)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected two distinct items, got %d", len(all))
	}
}

func TestListDue_NeverReviewedIsDue(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	item, err := s.AddOrUpdate(ctx, 1, "ephemeral", "lasting a very short time", nil, "", "")
	if err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}

	due, err := s.ListDue(ctx, 1)
	if err != nil {
		t.Fatalf("ListDue failed: %v", err)
	}
	if len(due) != 1 || due[0].ID != item.ID {
		t.Fatalf("never-reviewed item should be due, got %d items", len(due))
	}
}

func TestMarkReviewed_FollowsIntervalTable(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	item, err := s.AddOrUpdate(ctx, 1, "resilient", "able to recover quickly", nil, "", "")
	if err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}

	expectedDays := []int{1, 3, 7, 14, 30, 30}
	for i, days := range expectedDays {
		updated, err := s.MarkReviewed(ctx, 1, item.ID)
		if err != nil {
			t.Fatalf("MarkReviewed #%d failed: %v", i+1, err)
		}
		if updated.ReviewCount != i+1 {
			t.Fatalf("review #%d: expected count %d, got %d", i+1, i+1, updated.ReviewCount)
		}
		if updated.NextReviewAt == nil {
			t.Fatalf("review #%d: next_review_at not set", i+1)
		}
		want := now.AddDate(0, 0, days)
		if diff := updated.NextReviewAt.Sub(want); diff < -time.Second || diff > time.Second {
			t.Fatalf("review #%d: expected next review %v, got %v", i+1, want, *updated.NextReviewAt)
		}
		if updated.LastReviewedAt == nil {
			t.Fatalf("review #%d: last_reviewed_at not set", i+1)
		}
	}
}

func TestListDue_ScheduledItemReappearsAfterDueDate(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	item, err := s.AddOrUpdate(ctx, 1, "tenacious", "holding firmly", nil, "", "")
	if err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}
	if _, err := s.MarkReviewed(ctx, 1, item.ID); err != nil {
		t.Fatalf("MarkReviewed failed: %v", err)
	}

	// Scheduled one day out: not due an hour later.
	now = now.Add(time.Hour)
	due, err := s.ListDue(ctx, 1)
	if err != nil {
		t.Fatalf("ListDue failed: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("item should not be due before its review date, got %d items", len(due))
	}

	// Past the due date it comes back.
	now = now.Add(25 * time.Hour)
	due, err = s.ListDue(ctx, 1)
	if err != nil {
		t.Fatalf("ListDue failed: %v", err)
	}
	if len(due) != 1 || due[0].ID != item.ID {
		t.Fatalf("item should reappear once its review date passes, got %d items", len(due))
	}
}

func TestMarkReviewed_NotFound(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	if _, err := s.MarkReviewed(ctx, 1, "2f3c9a40-0000-0000-0000-000000000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkReviewed_WrongOwnerDoesNotMutate(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	item, err := s.AddOrUpdate(ctx, 1, "candid", "truthful and straightforward", nil, "", "")
	if err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}

	if _, err := s.MarkReviewed(ctx, 2, item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner's item, got %v", err)
	}

	reloaded, err := s.store.FindByID(ctx, 1, item.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if reloaded.ReviewCount != 0 || reloaded.NextReviewAt != nil || reloaded.LastReviewedAt != nil {
		t.Fatalf("failed MarkReviewed must not mutate the item: %+v", reloaded)
	}
}

func TestListAll_OrderedByAddCountThenWord(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	submissions := map[string]int{"apple": 3, "banana": 3, "cherry": 1}
	for word, count := range submissions {
		for i := 0; i < count; i++ {
			if _, err := s.AddOrUpdate(ctx, 1, word, "", nil, "", ""); err != nil {
				t.Fatalf("AddOrUpdate(%q) failed: %v", word, err)
			}
		}
	}

	all, err := s.ListAll(ctx, 1)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	want := []string{"apple", "banana", "cherry"}
	if len(all) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(all))
	}
	for i, word := range want {
		if all[i].Word != word {
			t.Fatalf("position %d: expected %q, got %q", i, word, all[i].Word)
		}
	}
	if all[0].AddCount != 3 || all[2].AddCount != 1 {
		t.Fatalf("unexpected add counts: %d, %d", all[0].AddCount, all[2].AddCount)
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	s := newTestScheduler(t)
	ctx := context.Background()

	if _, err := s.AddOrUpdate(ctx, 1, "shared", "owned by user one", nil, "", ""); err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}
	other, err := s.AddOrUpdate(ctx, 2, "shared", "owned by user two", nil, "", "")
	if err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}
	if other.AddCount != 1 {
		t.Fatalf("same word for another owner must create a fresh item, add_count=%d", other.AddCount)
	}

	due, err := s.ListDue(ctx, 2)
	if err != nil {
		t.Fatalf("ListDue failed: %v", err)
	}
	if len(due) != 1 || due[0].OwnerID != 2 {
		t.Fatalf("ListDue leaked items across owners: %+v", due)
	}
}
