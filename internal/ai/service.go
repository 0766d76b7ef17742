// Package ai turns diary submissions into model feedback: it builds the
// role-conditioned prompt, calls the model once, and reduces the free-text
// reply to the required JSON shape.
package ai

import (
	"context"
	"fmt"

	"ai-diary/internal/model"
)

// ModelClient is the upstream text generator. Satisfied by GeminiClient and
// by test fakes.
type ModelClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// MoodUnknown is the sentinel used when the model omits a mood.
const MoodUnknown = "unknown"

// FormatError means the model replied, but the reply could not be reduced to
// the required JSON shape. Raw carries the unparsed text for diagnostics.
// It is never retried at this layer.
type FormatError struct {
	Raw string
}

func (e *FormatError) Error() string {
	return "model reply is not the required JSON shape"
}

type Service struct {
	model ModelClient
}

func NewService(model ModelClient) *Service {
	return &Service{model: model}
}

// DailyFeedback generates an empathetic comment and mood label for one entry.
// A missing or non-string mood falls back to MoodUnknown; a missing feedback
// field is a *FormatError.
func (s *Service) DailyFeedback(ctx context.Context, personality, customInstruction, content string) (feedback, mood string, err error) {
	raw, err := s.model.GenerateContent(ctx, BuildDailyPrompt(personality, customInstruction, content))
	if err != nil {
		return "", "", fmt.Errorf("daily feedback: %w", err)
	}

	obj := ExtractJSONObject(raw)
	feedback, ok := stringField(obj, "feedback")
	if !ok {
		return "", "", &FormatError{Raw: raw}
	}
	mood, ok = stringField(obj, "mood")
	if !ok || mood == "" {
		mood = MoodUnknown
	}
	return feedback, mood, nil
}

// MilestoneFeedback generates a celebratory message for a streak milestone.
func (s *Service) MilestoneFeedback(ctx context.Context, personality, customInstruction string, streakDays int) (string, error) {
	raw, err := s.model.GenerateContent(ctx, BuildMilestonePrompt(personality, customInstruction, streakDays))
	if err != nil {
		return "", fmt.Errorf("milestone feedback: %w", err)
	}

	obj := ExtractJSONObject(raw)
	feedback, ok := stringField(obj, "feedback")
	if !ok {
		return "", &FormatError{Raw: raw}
	}
	return feedback, nil
}

// PeriodicFeedback generates a reflective summary over a week or month of
// entries. period is "week" or "month".
func (s *Service) PeriodicFeedback(ctx context.Context, personality, customInstruction, period string, entries []model.PeriodicEntry) (string, error) {
	raw, err := s.model.GenerateContent(ctx, BuildPeriodicPrompt(personality, customInstruction, period, entries))
	if err != nil {
		return "", fmt.Errorf("%s feedback: %w", period, err)
	}

	obj := ExtractJSONObject(raw)
	feedback, ok := stringField(obj, "feedback")
	if !ok {
		return "", &FormatError{Raw: raw}
	}
	return feedback, nil
}

func stringField(obj map[string]any, key string) (string, bool) {
	if obj == nil {
		return "", false
	}
	s, ok := obj[key].(string)
	return s, ok
}
