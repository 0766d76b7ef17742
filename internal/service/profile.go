package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-diary/internal/model"

	"gorm.io/gorm"
)

type ProfileService struct{ db *gorm.DB }

func NewProfileService(db *gorm.DB) *ProfileService { return &ProfileService{db: db} }

// GetOrCreate loads the account's profile, provisioning a default on first
// access: name taken from the email local part, supportive personality.
func (s *ProfileService) GetOrCreate(ctx context.Context, accountID int, email string) (*model.UserProfile, error) {
	var p model.UserProfile
	err := s.db.WithContext(ctx).Where("account_id = ?", accountID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	p = model.UserProfile{
		AccountID:   accountID,
		Name:        defaultName(email),
		Personality: model.PersonalitySupportive,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &p, nil
}

// Save upserts the profile fields owned by the user. The celebrated-milestones
// column is left to AddCelebrated so a profile edit cannot clobber it.
func (s *ProfileService) Save(ctx context.Context, p *model.UserProfile) error {
	var existing model.UserProfile
	err := s.db.WithContext(ctx).Where("account_id = ?", p.AccountID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("query profile: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"name":               p.Name,
		"nickname":           p.Nickname,
		"personality":        p.Personality,
		"custom_instruction": p.CustomInstruction,
		"profile_picture":    p.ProfilePicture,
	}).Error
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// AddCelebrated appends a milestone value to the account's celebrated set.
func (s *ProfileService) AddCelebrated(ctx context.Context, accountID, value int) error {
	var p model.UserProfile
	if err := s.db.WithContext(ctx).Where("account_id = ?", accountID).First(&p).Error; err != nil {
		return fmt.Errorf("query profile: %w", err)
	}
	p.AddCelebrated(value)
	err := s.db.WithContext(ctx).Model(&p).
		Update("celebrated_milestones", p.CelebratedMilestones).Error
	if err != nil {
		return fmt.Errorf("update celebrated milestones: %w", err)
	}
	return nil
}

// MarkDeleted soft-deletes the account: the profile row stays but the flag
// blocks future logins.
func (s *ProfileService) MarkDeleted(ctx context.Context, accountID int) error {
	err := s.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("account_id = ?", accountID).
		Update("is_deleted", true).Error
	if err != nil {
		return fmt.Errorf("mark profile deleted: %w", err)
	}
	return nil
}

func defaultName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	if email != "" {
		return email
	}
	return "user"
}
