package service

import (
	"context"
	"fmt"

	"ai-diary/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DiaryService struct{ db *gorm.DB }

func NewDiaryService(db *gorm.DB) *DiaryService { return &DiaryService{db: db} }

// Upsert writes the entry keyed by its id. Resubmitting the same id replaces
// the row (last write wins per row; no cross-row transaction).
func (s *DiaryService) Upsert(ctx context.Context, e *model.DiaryEntry) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "content", "feedback", "mood"}),
	}).Create(e).Error
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

// List returns the account's entries newest-date first, ties broken by
// creation time. Multiple entries may share a date.
func (s *DiaryService) List(ctx context.Context, accountID int) ([]model.DiaryEntry, error) {
	var entries []model.DiaryEntry
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC").Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return entries, nil
}

// Dates returns the distinct entry dates for the account, for streak
// computation.
func (s *DiaryService) Dates(ctx context.Context, accountID int) ([]string, error) {
	var dates []string
	err := s.db.WithContext(ctx).
		Model(&model.DiaryEntry{}).
		Where("account_id = ?", accountID).
		Distinct().Pluck("date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("query entry dates: %w", err)
	}
	return dates, nil
}

// Delete removes one entry, scoped to the owning account.
func (s *DiaryService) Delete(ctx context.Context, accountID int, id string) error {
	res := s.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&model.DiaryEntry{})
	if res.Error != nil {
		return fmt.Errorf("delete entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAll removes every entry owned by the account.
func (s *DiaryService) DeleteAll(ctx context.Context, accountID int) error {
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.DiaryEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	return nil
}
