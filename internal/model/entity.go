package model

import (
	"encoding/json"
	"time"
)

type Account struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserProfile struct {
	ID        int `gorm:"primaryKey" json:"-"`
	AccountID int `gorm:"uniqueIndex" json:"-"`
	// Name defaults to the local part of the account email when the profile
	// is auto-provisioned.
	Name                 string    `json:"name"`
	Nickname             string    `json:"nickname,omitempty"`
	Personality          string    `gorm:"default:supportive" json:"personality"`
	CustomInstruction    string    `gorm:"size:500" json:"customInstruction,omitempty"`
	ProfilePicture       string    `gorm:"type:longtext" json:"profilePicture,omitempty"`
	CelebratedMilestones string    `gorm:"type:text" json:"-"`
	IsDeleted            bool      `json:"-"`
	UpdatedAt            time.Time `json:"-"`
}

type DiaryEntry struct {
	// ID is client-generated when the client supplies one, otherwise a
	// server-side uuid. Resubmission with the same id is an idempotent upsert.
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	AccountID int       `gorm:"index" json:"-"`
	// Date is stored as a plain 10-char string, not a SQL DATE: with
	// parseTime enabled the driver hands DATE columns back as time.Time,
	// which scans into string as RFC3339 and no longer equals a day key.
	Date      string    `gorm:"size:10;index" json:"date"`
	Content   string    `json:"content"`
	Feedback  string    `json:"feedback"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

func (Account) TableName() string     { return "accounts" }
func (UserProfile) TableName() string { return "user_profiles" }
func (DiaryEntry) TableName() string  { return "diary_entries" }

// Celebrated decodes the celebrated-milestones column into a set. The set is
// append-only for the lifetime of the account.
func (p *UserProfile) Celebrated() map[int]bool {
	set := make(map[int]bool)
	if p.CelebratedMilestones == "" {
		return set
	}
	var values []int
	if json.Unmarshal([]byte(p.CelebratedMilestones), &values) != nil {
		return set
	}
	for _, v := range values {
		set[v] = true
	}
	return set
}

// AddCelebrated records a milestone value into the encoded column. Adding a
// value that is already present is a no-op.
func (p *UserProfile) AddCelebrated(value int) {
	set := p.Celebrated()
	if set[value] {
		return
	}
	var values []int
	if p.CelebratedMilestones != "" {
		json.Unmarshal([]byte(p.CelebratedMilestones), &values)
	}
	values = append(values, value)
	data, _ := json.Marshal(values)
	p.CelebratedMilestones = string(data)
}
