package handler

import (
	"net/http"

	"ai-diary/internal/logger"
	"ai-diary/internal/model"
	"ai-diary/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	diary    *service.DiaryService
	auth     *service.AuthService
}

func NewProfileHandler(profiles *service.ProfileService, diary *service.DiaryService, auth *service.AuthService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, diary: diary, auth: auth}
}

// GET /api/profile — auto-provisions a default profile on first access.
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profiles.GetOrCreate(c.Request.Context(), c.GetInt("account_id"), c.GetString("account_email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req model.UserProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	personality, customInstruction, err := normalizePersona(req.Personality, req.CustomInstruction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID := c.GetInt("account_id")
	if req.Name == "" {
		// Keep the provisioned default instead of blanking the name.
		if existing, err := h.profiles.GetOrCreate(c.Request.Context(), accountID, c.GetString("account_email")); err == nil {
			req.Name = existing.Name
		}
	}

	p := model.UserProfile{
		AccountID:         accountID,
		Name:              req.Name,
		Nickname:          req.Nickname,
		Personality:       personality,
		CustomInstruction: customInstruction,
		ProfilePicture:    req.ProfilePicture,
	}
	if err := h.profiles.Save(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("profile.saved", "account_id", accountID, "personality", personality)
	c.JSON(http.StatusOK, p)
}

// DELETE /api/account — re-auth, drop entries, soft-delete the profile. The
// auth record itself stays.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	var req model.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	ctx := c.Request.Context()
	accountID := c.GetInt("account_id")
	if err := h.auth.VerifyPassword(ctx, accountID, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "password is incorrect"})
		return
	}
	if err := h.diary.DeleteAll(ctx, accountID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.profiles.MarkDeleted(ctx, accountID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("account.deleted", "account_id", accountID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
