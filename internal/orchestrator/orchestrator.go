// Package orchestrator runs the end-to-end submission flow: daily feedback
// from the model, entry persistence, streak recomputation, and the one-shot
// milestone celebration.
package orchestrator

import (
	"context"
	"errors"
	"sync"

	"ai-diary/internal/datekey"
	"ai-diary/internal/logger"
	"ai-diary/internal/model"
	"ai-diary/internal/streak"

	"github.com/google/uuid"
)

// ErrBusy means a submission for this account is already in flight. The
// caller gets a no-op, not a queue slot.
var ErrBusy = errors.New("a submission is already in flight")

// EntryStore is the persistence collaborator for diary rows.
type EntryStore interface {
	Upsert(ctx context.Context, e *model.DiaryEntry) error
	Dates(ctx context.Context, accountID int) ([]string, error)
}

// ProfileStore is the persistence collaborator for the account profile,
// which owns the celebrated-milestones set.
type ProfileStore interface {
	GetOrCreate(ctx context.Context, accountID int, email string) (*model.UserProfile, error)
	AddCelebrated(ctx context.Context, accountID, value int) error
}

// FeedbackGenerator produces the two model calls the flow can make.
type FeedbackGenerator interface {
	DailyFeedback(ctx context.Context, personality, customInstruction, content string) (feedback, mood string, err error)
	MilestoneFeedback(ctx context.Context, personality, customInstruction string, streakDays int) (string, error)
}

type Orchestrator struct {
	feedback FeedbackGenerator
	entries  EntryStore
	profiles ProfileStore
	busy     sync.Map // account id -> in-flight marker
}

func New(feedback FeedbackGenerator, entries EntryStore, profiles ProfileStore) *Orchestrator {
	return &Orchestrator{feedback: feedback, entries: entries, profiles: profiles}
}

type Result struct {
	Entry             model.DiaryEntry
	Streak            int
	MilestoneFeedback string
	Warning           string
}

// Submit runs one submission. Model or format failure on the daily-feedback
// call aborts with nothing persisted. A failed entry write downgrades to a
// warning: the entry is still returned and counted into the streak. The
// milestone call is best-effort and can never fail the submission.
func (o *Orchestrator) Submit(ctx context.Context, accountID int, email, id, date, content string) (*Result, error) {
	if _, inFlight := o.busy.LoadOrStore(accountID, struct{}{}); inFlight {
		return nil, ErrBusy
	}
	defer o.busy.Delete(accountID)

	prof, err := o.profiles.GetOrCreate(ctx, accountID, email)
	if err != nil {
		return nil, err
	}

	feedback, mood, err := o.feedback.DailyFeedback(ctx, prof.Personality, prof.CustomInstruction, content)
	if err != nil {
		return nil, err
	}

	if id == "" {
		id = uuid.NewString()
	}
	if date == "" {
		date = datekey.Today()
	}
	entry := model.DiaryEntry{
		ID: id, AccountID: accountID,
		Date: date, Content: content,
		Feedback: feedback, Mood: mood,
	}

	res := &Result{Entry: entry}
	if err := o.entries.Upsert(ctx, &entry); err != nil {
		logger.Error("entry upsert failed", "account_id", accountID, "entry_id", id, "err", err)
		res.Warning = "entry could not be saved durably"
	}
	res.Entry = entry

	dates, err := o.entries.Dates(ctx, accountID)
	if err != nil {
		logger.Warn("entry dates query failed, streak from this entry only", "account_id", accountID, "err", err)
	}
	// The just-submitted entry counts even when the durable write failed.
	dates = append(dates, entry.Date)
	res.Streak = streak.Compute(dates)

	if streak.IsMilestone(res.Streak, prof.Celebrated()) {
		msg, err := o.feedback.MilestoneFeedback(ctx, prof.Personality, prof.CustomInstruction, res.Streak)
		if err != nil {
			// Non-critical enhancement to an already-successful submission.
			logger.Warn("milestone feedback failed", "account_id", accountID, "streak", res.Streak, "err", err)
			return res, nil
		}
		res.MilestoneFeedback = msg
		if err := o.profiles.AddCelebrated(ctx, accountID, res.Streak); err != nil {
			logger.Warn("record celebrated milestone failed", "account_id", accountID, "streak", res.Streak, "err", err)
		}
	}
	return res, nil
}
