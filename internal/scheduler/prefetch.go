package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/readcoach/api/internal/llm"
	"github.com/readcoach/api/internal/model"
	"gorm.io/gorm"
)

// DefinitionPrefetcher fills in definitions for vocabulary items that were
// saved without one (for example while the LLM was unreachable). It only ever
// writes content fields; review state stays untouched.
type DefinitionPrefetcher struct {
	db        *gorm.DB
	llmClient *llm.Client
	interval  time.Duration
	batchSize int
	running   bool
	processed int
	mu        sync.Mutex
	stopChan  chan struct{}
}

type PrefetchConfig struct {
	Interval  time.Duration
	BatchSize int
}

func NewDefinitionPrefetcher(db *gorm.DB, llmClient *llm.Client, cfg PrefetchConfig) *DefinitionPrefetcher {
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 5
	}

	return &DefinitionPrefetcher{
		db:        db,
		llmClient: llmClient,
		interval:  cfg.Interval,
		batchSize: cfg.BatchSize,
		stopChan:  make(chan struct{}),
	}
}

func (p *DefinitionPrefetcher) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	log.Printf("[Prefetch] Starting with interval %v", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Prefetch] Context cancelled, stopping")
			return
		case <-p.stopChan:
			log.Println("[Prefetch] Stop signal received")
			return
		case <-ticker.C:
			p.processBatch(ctx)
		}
	}
}

func (p *DefinitionPrefetcher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		close(p.stopChan)
		p.running = false
		log.Println("[Prefetch] Stopped")
	}
}

func (p *DefinitionPrefetcher) processBatch(ctx context.Context) {
	var items []model.VocabularyItem
	result := p.db.WithContext(ctx).
		Where("definition = ''").
		Order("last_add_date ASC").
		Limit(p.batchSize).
		Find(&items)
	if result.Error != nil {
		log.Printf("[Prefetch] Failed to query items: %v", result.Error)
		return
	}

	for _, item := range items {
		def, err := p.llmClient.DefineWord(ctx, item.Word)
		if err != nil {
			log.Printf("[Prefetch] Failed to define %q: %v", item.Word, err)
			continue
		}

		fields := map[string]interface{}{
			"definition": def.Definition,
		}
		if len(def.Examples) > 0 {
			fields["examples"] = pq.StringArray(def.Examples)
		}
		if err := p.db.WithContext(ctx).Model(&model.VocabularyItem{}).Where("id = ?", item.ID).Updates(fields).Error; err != nil {
			log.Printf("[Prefetch] Failed to update %q: %v", item.Word, err)
			continue
		}

		p.mu.Lock()
		p.processed++
		p.mu.Unlock()
		log.Printf("[Prefetch] Filled definition for %q", item.Word)
	}
}

func (p *DefinitionPrefetcher) GetStatus() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	return map[string]interface{}{
		"enabled":   true,
		"running":   p.running,
		"interval":  p.interval.String(),
		"processed": p.processed,
	}
}
