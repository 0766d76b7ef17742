package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"ai-diary/internal/ai"
	"ai-diary/internal/model"

	"github.com/gin-gonic/gin"
)

// normalizePersona validates the persona selection the same way on every AI
// boundary: an empty personality falls back to supportive, the custom
// instruction is required and bounded only for the custom persona and
// cleared otherwise.
func normalizePersona(personality, customInstruction string) (string, string, error) {
	if personality == "" {
		personality = model.PersonalitySupportive
	}
	if !model.ValidPersonality(personality) {
		return "", "", errors.New("invalid personality")
	}
	if personality != model.PersonalityCustom {
		return personality, "", nil
	}

	customInstruction = strings.TrimSpace(customInstruction)
	if customInstruction == "" {
		return "", "", errors.New("customInstruction is required when personality is custom")
	}
	if utf8.RuneCountInString(customInstruction) > model.MaxCustomInstructionChars {
		return "", "", errors.New("customInstruction is too long (max 500 characters)")
	}
	return personality, customInstruction, nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errors.New("content is required")
	}
	if utf8.RuneCountInString(content) > model.MaxContentChars {
		return "", errors.New("content is too long (max 10000 characters)")
	}
	return content, nil
}

// writeAIError maps AI-layer failures to the documented status codes: 502
// with the raw model text when the reply could not be parsed, 500 for
// configuration/transport failures.
func writeAIError(c *gin.Context, err error) {
	var fe *ai.FormatError
	if errors.As(err, &fe) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "model reply was not valid JSON",
			"raw":   fe.Raw,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
