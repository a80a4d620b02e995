package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/readcoach/api/internal/model"
	"github.com/readcoach/api/internal/scoring"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionHandler struct {
	db *gorm.DB
}

func NewSessionHandler(db *gorm.DB) *SessionHandler {
	return &SessionHandler{db: db}
}

type CreateSessionRequest struct {
	Passage   string                 `json:"passage" binding:"required"`
	Questions []string               `json:"questions" binding:"required"`
	Answers   map[string]string      `json:"answers"`
	Feedback  map[string]interface{} `json:"feedback"`
	Score     *int                   `json:"score"`
}

// Create saves a completed practice round. The score is taken from the
// request when supplied, otherwise computed from the feedback.
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passage and questions are required"})
		return
	}

	userID := c.GetInt64("userID")

	score := scoring.SessionScore(req.Feedback)
	if req.Score != nil {
		score = *req.Score
	}

	questions, err := json.Marshal(req.Questions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid questions"})
		return
	}
	answers, err := json.Marshal(req.Answers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid answers"})
		return
	}
	feedback, err := json.Marshal(req.Feedback)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback"})
		return
	}

	session := model.LearningSession{
		UserID:    userID,
		Passage:   req.Passage,
		Questions: datatypes.JSON(questions),
		Answers:   datatypes.JSON(answers),
		Feedback:  datatypes.JSON(feedback),
		Score:     score,
		CreatedAt: time.Now(),
	}

	if err := h.db.Create(&session).Error; err != nil {
		log.Printf("Failed to save learning session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// List returns the user's sessions, newest first.
func (h *SessionHandler) List(c *gin.Context) {
	userID := c.GetInt64("userID")

	var sessions []model.LearningSession
	result := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions)
	if result.Error != nil {
		log.Printf("Failed to list sessions: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// Get returns one session, refusing access to other users' sessions.
func (h *SessionHandler) Get(c *gin.Context) {
	userID := c.GetInt64("userID")

	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	var session model.LearningSession
	result := h.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session)
	if result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, session)
}
