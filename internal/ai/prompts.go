package ai

import (
	"fmt"
	"strings"

	"ai-diary/internal/model"
)

// personaRoles maps the fixed personalities to their natural-language roles.
var personaRoles = map[string]string{
	model.PersonalitySupportive:    "supportive close friend",
	model.PersonalityStrict:        "passionate coach",
	model.PersonalityPhilosophical: "quiet sage",
}

// personaLine renders the role preamble. A custom personality uses the
// caller-validated custom instruction verbatim; anything else falls back to
// the supportive role.
func personaLine(personality, customInstruction string) string {
	if personality == model.PersonalityCustom && strings.TrimSpace(customInstruction) != "" {
		return strings.TrimSpace(customInstruction)
	}
	role, ok := personaRoles[personality]
	if !ok {
		role = personaRoles[model.PersonalitySupportive]
	}
	return fmt.Sprintf("You are the user's %s.", role)
}

// BuildDailyPrompt asks for a short empathetic comment on one entry, replied
// as {"feedback": ..., "mood": ...} and nothing else.
func BuildDailyPrompt(personality, customInstruction, content string) string {
	var sb strings.Builder
	sb.WriteString(personaLine(personality, customInstruction))
	sb.WriteString("\n\nThe user's diary entry:\n")
	sb.WriteString(fmt.Sprintf("%q\n\n", content))
	sb.WriteString("Write an empathetic comment of at most 150 characters that meets the user where they are.\n")
	sb.WriteString("You must reply with only a JSON object in exactly this form:\n\n")
	sb.WriteString(`{"feedback":"your comment","mood":"one-word mood"}`)
	return sb.String()
}

// BuildMilestonePrompt asks for a celebratory message for a streak milestone,
// replied as {"feedback": ...}.
func BuildMilestonePrompt(personality, customInstruction string, streakDays int) string {
	var sb strings.Builder
	sb.WriteString(personaLine(personality, customInstruction))
	sb.WriteString(fmt.Sprintf("\n\nThe user has now written a diary entry %d days in a row!\n\n", streakDays))
	sb.WriteString("Write a message that celebrates this milestone and lifts their motivation.\n")
	sb.WriteString("- around 200 to 400 characters\n")
	sb.WriteString("- congratulate the achievement\n")
	sb.WriteString("- speak to the value of keeping the habit going\n")
	sb.WriteString("- warm and encouraging\n")
	sb.WriteString("- reply with only JSON\n\n")
	sb.WriteString(`{"feedback":"your message"}`)
	return sb.String()
}

// BuildPeriodicPrompt asks for a reflective summary over a week or month of
// entries, each rendered as a dated block, replied as {"feedback": ...}.
// period is a human phrase such as "week" or "month".
func BuildPeriodicPrompt(personality, customInstruction, period string, entries []model.PeriodicEntry) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", e.Date, e.Content))
	}

	var sb strings.Builder
	sb.WriteString(personaLine(personality, customInstruction))
	sb.WriteString(fmt.Sprintf("\n\nBelow is the user's diary log for the past %s. ", period))
	sb.WriteString(fmt.Sprintf("Write a reflective look back over the %s that lifts their motivation.\n", period))
	sb.WriteString("- around 300 to 600 characters\n")
	sb.WriteString(fmt.Sprintf("- acknowledge the growth and change you see across the %s\n", period))
	sb.WriteString("- warm and encouraging\n")
	sb.WriteString("- reply with only JSON\n\n")
	sb.WriteString("Diary log:\n")
	sb.WriteString(strings.Join(blocks, "\n\n"))
	sb.WriteString("\n\n")
	sb.WriteString(`{"feedback":"your reflection"}`)
	return sb.String()
}
