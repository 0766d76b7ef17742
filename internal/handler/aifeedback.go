package handler

import (
	"net/http"

	"ai-diary/internal/ai"
	"ai-diary/internal/logger"
	"ai-diary/internal/model"

	"github.com/gin-gonic/gin"
)

// AIHandler exposes the stateless feedback endpoints. They hold no account
// state; persona and content travel in the request body.
type AIHandler struct {
	ai *ai.Service
}

func NewAIHandler(svc *ai.Service) *AIHandler { return &AIHandler{ai: svc} }

// POST /api/ai/feedback
func (h *AIHandler) Feedback(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	content, err := validateContent(req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	personality, customInstruction, err := normalizePersona(req.Personality, req.CustomInstruction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, mood, err := h.ai.DailyFeedback(c.Request.Context(), personality, customInstruction, content)
	if err != nil {
		logger.Error("daily feedback failed", "err", err)
		writeAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.FeedbackResponse{Feedback: feedback, Mood: mood})
}

// POST /api/ai/milestone
func (h *AIHandler) Milestone(c *gin.Context) {
	var req model.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Streak <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "streak is required (number > 0)"})
		return
	}
	personality, customInstruction, err := normalizePersona(req.Personality, req.CustomInstruction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.ai.MilestoneFeedback(c.Request.Context(), personality, customInstruction, req.Streak)
	if err != nil {
		logger.Error("milestone feedback failed", "streak", req.Streak, "err", err)
		writeAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.PeriodicResponse{Feedback: feedback})
}

// POST /api/ai/weekly
func (h *AIHandler) Weekly(c *gin.Context) {
	h.periodic(c, "week")
}

// POST /api/ai/monthly
func (h *AIHandler) Monthly(c *gin.Context) {
	h.periodic(c, "month")
}

func (h *AIHandler) periodic(c *gin.Context, period string) {
	var req model.PeriodicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entries is required (array)"})
		return
	}
	if len(req.Entries) > model.MaxPeriodicEntries {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many entries (max 100)"})
		return
	}
	personality, customInstruction, err := normalizePersona(req.Personality, req.CustomInstruction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.ai.PeriodicFeedback(c.Request.Context(), personality, customInstruction, period, req.Entries)
	if err != nil {
		logger.Error("periodic feedback failed", "period", period, "entries", len(req.Entries), "err", err)
		writeAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.PeriodicResponse{Feedback: feedback})
}
