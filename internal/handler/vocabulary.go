package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/readcoach/api/internal/cache"
	"github.com/readcoach/api/internal/llm"
	"github.com/readcoach/api/internal/middleware"
	"github.com/readcoach/api/internal/review"
	"github.com/readcoach/api/internal/validator"
)

type VocabularyHandler struct {
	scheduler     *review.Scheduler
	llmClient     *llm.Client
	cache         *cache.RedisCache
	wordValidator *validator.WordValidator
}

func NewVocabularyHandler(scheduler *review.Scheduler, llmClient *llm.Client, redisCache *cache.RedisCache, wordValidator *validator.WordValidator) *VocabularyHandler {
	return &VocabularyHandler{
		scheduler:     scheduler,
		llmClient:     llmClient,
		cache:         redisCache,
		wordValidator: wordValidator,
	}
}

type AddVocabularyRequest struct {
	Word           string   `json:"word" binding:"required"`
	Definition     string   `json:"definition"`
	Examples       []string `json:"examples"`
	SourcePassage  string   `json:"sourcePassage"`
	SourceQuestion string   `json:"sourceQuestion"`
}

// Add saves a word for the current user. When the request carries no
// definition, one is looked up (cache first, then LLM); lookup failures do
// not block the save; the item is stored without a definition and the
// prefetcher fills it in later.
func (h *VocabularyHandler) Add(c *gin.Context) {
	var req AddVocabularyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	word := strings.TrimSpace(req.Word)
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}
	if h.wordValidator != nil && !h.wordValidator.IsValid(word) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not recognized as an English word"})
		return
	}

	userID := c.GetInt64("userID")

	definition := req.Definition
	examples := req.Examples
	if definition == "" {
		if def := h.lookupDefinition(c.Request.Context(), word); def != nil {
			definition = def.Definition
			if len(examples) == 0 {
				examples = def.Examples
			}
		}
	}

	item, err := h.scheduler.AddOrUpdate(c.Request.Context(), userID, word, definition, examples, req.SourcePassage, req.SourceQuestion)
	if err != nil {
		log.Printf("Failed to save vocabulary item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save vocabulary item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// List returns all of the user's vocabulary, most re-added words first.
func (h *VocabularyHandler) List(c *gin.Context) {
	userID := c.GetInt64("userID")

	items, err := h.scheduler.ListAll(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list vocabulary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vocabulary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Due returns the items currently due for review.
func (h *VocabularyHandler) Due(c *gin.Context) {
	userID := c.GetInt64("userID")

	items, err := h.scheduler.ListDue(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list due vocabulary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list due vocabulary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Review marks one item as reviewed and schedules the next review.
func (h *VocabularyHandler) Review(c *gin.Context) {
	userID := c.GetInt64("userID")
	itemID := c.Param("id")

	item, err := h.scheduler.MarkReviewed(c.Request.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vocabulary item not found"})
			return
		}
		log.Printf("Failed to mark item reviewed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark item reviewed"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Export downloads the user's vocabulary as CSV or JSON.
func (h *VocabularyHandler) Export(c *gin.Context) {
	userID := c.GetInt64("userID")
	format := c.DefaultQuery("format", "csv")

	items, err := h.scheduler.ListAll(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to export vocabulary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export vocabulary"})
		return
	}

	switch format {
	case "json":
		c.Header("Content-Disposition", "attachment; filename=vocabulary.json")
		c.JSON(http.StatusOK, items)
	case "csv":
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)

		writer.Write([]string{"Word", "Definition", "Examples", "Times Added", "Times Reviewed", "Next Review"})
		for _, item := range items {
			nextReview := ""
			if item.NextReviewAt != nil {
				nextReview = item.NextReviewAt.Format(time.RFC3339)
			}
			writer.Write([]string{
				item.Word,
				item.Definition,
				strings.Join(item.Examples, " | "),
				strconv.Itoa(item.AddCount),
				strconv.Itoa(item.ReviewCount),
				nextReview,
			})
		}
		writer.Flush()

		c.Header("Content-Disposition", "attachment; filename=vocabulary.csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format. Use csv or json"})
	}
}

// lookupDefinition checks the Redis cache before asking the LLM. Returns nil
// when neither can supply a definition.
func (h *VocabularyHandler) lookupDefinition(ctx context.Context, word string) *llm.WordDefinition {
	key := cache.DefinitionKey(word)

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, key); err == nil {
			var def llm.WordDefinition
			if err := json.Unmarshal(cached, &def); err == nil {
				middleware.RecordDefinitionCache(true)
				return &def
			}
		}
	}
	middleware.RecordDefinitionCache(false)

	if h.llmClient == nil {
		return nil
	}

	start := time.Now()
	def, err := h.llmClient.DefineWord(ctx, word)
	middleware.RecordLLMCall("define", err == nil, time.Since(start))
	if err != nil {
		log.Printf("Failed to define %q: %v", word, err)
		return nil
	}

	if h.cache != nil {
		if data, err := json.Marshal(def); err == nil {
			if err := h.cache.Set(ctx, key, data); err != nil {
				log.Printf("Warning: failed to cache definition for %q: %v", word, err)
			}
		}
	}

	return def
}
