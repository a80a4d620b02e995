package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/readcoach/api/internal/llm"
	"github.com/readcoach/api/internal/middleware"
)

const (
	DefaultQuestionCount = 3
	MaxQuestionCount     = 10
)

type PassageHandler struct {
	llmClient *llm.Client
}

func NewPassageHandler(llmClient *llm.Client) *PassageHandler {
	return &PassageHandler{llmClient: llmClient}
}

type GenerateQuestionsRequest struct {
	Passage string `json:"passage" binding:"required"`
	Count   int    `json:"count"`
}

type AnalyzeAnswerRequest struct {
	Passage  string `json:"passage" binding:"required"`
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// GenerateQuestions produces comprehension questions for a passage.
func (h *PassageHandler) GenerateQuestions(c *gin.Context) {
	var req GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passage is required"})
		return
	}

	count := req.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}
	if count > MaxQuestionCount {
		count = MaxQuestionCount
	}

	start := time.Now()
	questions, err := h.llmClient.GenerateQuestions(c.Request.Context(), req.Passage, count)
	middleware.RecordLLMCall("questions", err == nil, time.Since(start))
	if err != nil {
		log.Printf("Failed to generate questions: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// AnalyzeAnswer scores a typed or transcribed answer against the passage.
func (h *PassageHandler) AnalyzeAnswer(c *gin.Context) {
	var req AnalyzeAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passage, question and answer are required"})
		return
	}

	start := time.Now()
	feedback, err := h.llmClient.AnalyzeAnswer(c.Request.Context(), req.Question, req.Answer, req.Passage)
	middleware.RecordLLMCall("analyze", err == nil, time.Since(start))
	if err != nil {
		log.Printf("Failed to analyze answer: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to analyze answer"})
		return
	}

	c.JSON(http.StatusOK, feedback)
}
