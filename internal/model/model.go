package model

const (
	PersonalitySupportive    = "supportive"
	PersonalityStrict        = "strict"
	PersonalityPhilosophical = "philosophical"
	PersonalityCustom        = "custom"
)

// ValidPersonality reports whether s is one of the four persona presets.
func ValidPersonality(s string) bool {
	switch s {
	case PersonalitySupportive, PersonalityStrict, PersonalityPhilosophical, PersonalityCustom:
		return true
	}
	return false
}

const (
	// MaxContentChars bounds diary content at the feedback-request boundary.
	MaxContentChars = 10000
	// MaxCustomInstructionChars bounds the custom persona instruction.
	MaxCustomInstructionChars = 500
	// MaxPeriodicEntries bounds a weekly/monthly feedback batch.
	MaxPeriodicEntries = 100
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type SubmitEntryRequest struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content" binding:"required"`
}

type SubmitEntryResponse struct {
	Entry             DiaryEntry `json:"entry"`
	Streak            int        `json:"streak"`
	MilestoneFeedback string     `json:"milestone_feedback,omitempty"`
	Warning           string     `json:"warning,omitempty"`
}

type FeedbackRequest struct {
	Content           string `json:"content"`
	Personality       string `json:"personality"`
	CustomInstruction string `json:"customInstruction"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
	Mood     string `json:"mood"`
}

type MilestoneRequest struct {
	Streak            int    `json:"streak"`
	Personality       string `json:"personality"`
	CustomInstruction string `json:"customInstruction"`
}

type PeriodicEntry struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

type PeriodicRequest struct {
	Entries           []PeriodicEntry `json:"entries"`
	Personality       string          `json:"personality"`
	CustomInstruction string          `json:"customInstruction"`
}

type PeriodicResponse struct {
	Feedback string `json:"feedback"`
}

type PasswordRequest struct {
	Password string `json:"password" binding:"required"`
}
