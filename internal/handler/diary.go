package handler

import (
	"errors"
	"net/http"

	"ai-diary/internal/datekey"
	"ai-diary/internal/logger"
	"ai-diary/internal/model"
	"ai-diary/internal/orchestrator"
	"ai-diary/internal/service"
	"ai-diary/internal/streak"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DiaryHandler struct {
	orch  *orchestrator.Orchestrator
	diary *service.DiaryService
	auth  *service.AuthService
}

func NewDiaryHandler(orch *orchestrator.Orchestrator, diary *service.DiaryService, auth *service.AuthService) *DiaryHandler {
	return &DiaryHandler{orch: orch, diary: diary, auth: auth}
}

// POST /api/entries
func (h *DiaryHandler) Submit(c *gin.Context) {
	var req model.SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	content, err := validateContent(req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date != "" {
		if !datekey.Valid(req.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		if datekey.Compare(req.Date, datekey.Today()) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date cannot be in the future"})
			return
		}
	}

	accountID := c.GetInt("account_id")
	email := c.GetString("account_email")
	logger.Info("entry.submit", "account_id", accountID, "date", req.Date, "content_len", len(content))

	res, err := h.orch.Submit(c.Request.Context(), accountID, email, req.ID, req.Date, content)
	if err != nil {
		if errors.Is(err, orchestrator.ErrBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": "a submission is already in flight"})
			return
		}
		writeAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SubmitEntryResponse{
		Entry:             res.Entry,
		Streak:            res.Streak,
		MilestoneFeedback: res.MilestoneFeedback,
		Warning:           res.Warning,
	})
}

// GET /api/entries
func (h *DiaryHandler) List(c *gin.Context) {
	entries, err := h.diary.List(c.Request.Context(), c.GetInt("account_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []model.DiaryEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// GET /api/streak
func (h *DiaryHandler) Streak(c *gin.Context) {
	dates, err := h.diary.Dates(c.Request.Context(), c.GetInt("account_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak.Compute(dates)})
}

// DELETE /api/entries/:id
func (h *DiaryHandler) Delete(c *gin.Context) {
	err := h.diary.Delete(c.Request.Context(), c.GetInt("account_id"), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/entries — destructive, requires password re-auth.
func (h *DiaryHandler) DeleteAll(c *gin.Context) {
	var req model.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	accountID := c.GetInt("account_id")
	if err := h.auth.VerifyPassword(c.Request.Context(), accountID, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "password is incorrect"})
		return
	}
	if err := h.diary.DeleteAll(c.Request.Context(), accountID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("entries.deleted_all", "account_id", accountID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
