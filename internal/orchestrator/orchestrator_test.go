package orchestrator

import (
	"context"
	"errors"
	"testing"

	"ai-diary/internal/ai"
	"ai-diary/internal/datekey"
	"ai-diary/internal/model"
)

// scriptedFeedback counts calls and can be made to fail either path.
type scriptedFeedback struct {
	dailyErr       error
	milestoneErr   error
	dailyCalls     int
	milestoneCalls int
	block          chan struct{} // when set, DailyFeedback waits on it
	started        chan struct{}
}

func (f *scriptedFeedback) DailyFeedback(context.Context, string, string, string) (string, string, error) {
	f.dailyCalls++
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.dailyErr != nil {
		return "", "", f.dailyErr
	}
	return "nice entry", "calm", nil
}

func (f *scriptedFeedback) MilestoneFeedback(context.Context, string, string, int) (string, error) {
	f.milestoneCalls++
	if f.milestoneErr != nil {
		return "", f.milestoneErr
	}
	return "congrats on the streak", nil
}

type memEntries struct {
	rows       map[string]model.DiaryEntry
	failUpsert bool
}

func newMemEntries() *memEntries { return &memEntries{rows: make(map[string]model.DiaryEntry)} }

func (m *memEntries) Upsert(_ context.Context, e *model.DiaryEntry) error {
	if m.failUpsert {
		return errors.New("write failed")
	}
	m.rows[e.ID] = *e
	return nil
}

func (m *memEntries) Dates(context.Context, int) ([]string, error) {
	seen := make(map[string]struct{})
	var dates []string
	for _, e := range m.rows {
		if _, ok := seen[e.Date]; ok {
			continue
		}
		seen[e.Date] = struct{}{}
		dates = append(dates, e.Date)
	}
	return dates, nil
}

type memProfiles struct {
	prof model.UserProfile
}

func (m *memProfiles) GetOrCreate(context.Context, int, string) (*model.UserProfile, error) {
	p := m.prof
	return &p, nil
}

func (m *memProfiles) AddCelebrated(_ context.Context, _ int, value int) error {
	m.prof.AddCelebrated(value)
	return nil
}

func newOrchestrator(f *scriptedFeedback, e *memEntries, p *memProfiles) *Orchestrator {
	return New(f, e, p)
}

func TestSubmitTenDaysTriggersMilestoneOnce(t *testing.T) {
	f := &scriptedFeedback{}
	entries := newMemEntries()
	profiles := &memProfiles{prof: model.UserProfile{AccountID: 1, Personality: model.PersonalitySupportive}}
	o := newOrchestrator(f, entries, profiles)
	ctx := context.Background()

	// Oldest first: today-9 through today.
	for i := 9; i >= 0; i-- {
		date := datekey.AddDays(datekey.Today(), -i)
		res, err := o.Submit(ctx, 1, "a@b.c", "", date, "wrote something")
		if err != nil {
			t.Fatalf("submit day -%d: %v", i, err)
		}
		if i == 0 && res.Streak != 10 {
			t.Fatalf("final streak = %d, want 10", res.Streak)
		}
		if i == 0 && res.MilestoneFeedback == "" {
			t.Fatal("expected milestone feedback on the 10th day")
		}
		if i > 0 && res.MilestoneFeedback != "" {
			t.Fatalf("unexpected milestone feedback on day -%d", i)
		}
	}
	if f.milestoneCalls != 1 {
		t.Fatalf("milestone calls = %d, want 1", f.milestoneCalls)
	}
	if !profiles.prof.Celebrated()[10] {
		t.Fatal("milestone 10 not recorded as celebrated")
	}

	// An 11th entry for today must not re-trigger.
	res, err := o.Submit(ctx, 1, "a@b.c", "", datekey.Today(), "one more thought")
	if err != nil {
		t.Fatalf("11th submit: %v", err)
	}
	if res.Streak != 10 {
		t.Fatalf("streak after 11th entry = %d, want 10", res.Streak)
	}
	if res.MilestoneFeedback != "" {
		t.Fatal("milestone re-triggered for an already-celebrated streak")
	}
	if f.milestoneCalls != 1 {
		t.Fatalf("milestone calls after 11th entry = %d, want 1", f.milestoneCalls)
	}
}

func TestSubmitFormatErrorPersistsNothing(t *testing.T) {
	f := &scriptedFeedback{dailyErr: &ai.FormatError{Raw: "not json"}}
	entries := newMemEntries()
	profiles := &memProfiles{prof: model.UserProfile{AccountID: 1}}
	o := newOrchestrator(f, entries, profiles)

	_, err := o.Submit(context.Background(), 1, "a@b.c", "", "", "hello")
	var fe *ai.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected format error, got %v", err)
	}
	if len(entries.rows) != 0 {
		t.Fatalf("expected nothing persisted, found %d rows", len(entries.rows))
	}
}

func TestSubmitMilestoneFailureIsSwallowed(t *testing.T) {
	f := &scriptedFeedback{milestoneErr: errors.New("model down")}
	entries := newMemEntries()
	profiles := &memProfiles{prof: model.UserProfile{AccountID: 1}}
	o := newOrchestrator(f, entries, profiles)
	ctx := context.Background()

	for i := 9; i >= 0; i-- {
		date := datekey.AddDays(datekey.Today(), -i)
		res, err := o.Submit(ctx, 1, "a@b.c", "", date, "entry")
		if err != nil {
			t.Fatalf("submit day -%d: %v", i, err)
		}
		if i == 0 {
			if res.Streak != 10 {
				t.Fatalf("streak = %d, want 10", res.Streak)
			}
			if res.MilestoneFeedback != "" {
				t.Fatal("expected no milestone feedback when the call fails")
			}
		}
	}
	// A failed call does not mark the milestone celebrated.
	if profiles.prof.Celebrated()[10] {
		t.Fatal("failed milestone call must not be recorded as celebrated")
	}
}

func TestSubmitUpsertFailureDowngradesToWarning(t *testing.T) {
	f := &scriptedFeedback{}
	entries := newMemEntries()
	entries.failUpsert = true
	profiles := &memProfiles{prof: model.UserProfile{AccountID: 1}}
	o := newOrchestrator(f, entries, profiles)

	res, err := o.Submit(context.Background(), 1, "a@b.c", "", "", "hello")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Warning == "" {
		t.Fatal("expected a persistence warning")
	}
	if res.Entry.Feedback != "nice entry" {
		t.Fatal("entry should still carry its feedback")
	}
	// The entry stays visible to the streak even though the write failed.
	if res.Streak != 1 {
		t.Fatalf("streak = %d, want 1", res.Streak)
	}
}

func TestSubmitGeneratesIDAndDate(t *testing.T) {
	f := &scriptedFeedback{}
	entries := newMemEntries()
	profiles := &memProfiles{prof: model.UserProfile{AccountID: 1}}
	o := newOrchestrator(f, entries, profiles)

	res, err := o.Submit(context.Background(), 1, "a@b.c", "", "", "hello")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Entry.ID == "" {
		t.Fatal("expected a generated entry id")
	}
	if res.Entry.Date != datekey.Today() {
		t.Fatalf("date = %q, want today", res.Entry.Date)
	}

	// A caller-supplied id is kept, and resubmitting it stays one row.
	res2, err := o.Submit(context.Background(), 1, "a@b.c", "client-id-1", datekey.Today(), "edited")
	if err != nil {
		t.Fatalf("submit with id: %v", err)
	}
	if res2.Entry.ID != "client-id-1" {
		t.Fatalf("id = %q, want client-id-1", res2.Entry.ID)
	}
	if _, err := o.Submit(context.Background(), 1, "a@b.c", "client-id-1", datekey.Today(), "edited again"); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if got := len(entries.rows); got != 2 {
		t.Fatalf("rows = %d, want 2 (generated + upserted client id)", got)
	}
}

func TestSubmitBusyIsNoOp(t *testing.T) {
	f := &scriptedFeedback{block: make(chan struct{}), started: make(chan struct{}, 1)}
	entries := newMemEntries()
	profiles := &memProfiles{prof: model.UserProfile{AccountID: 1}}
	o := newOrchestrator(f, entries, profiles)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(ctx, 1, "a@b.c", "", "", "first")
		done <- err
	}()
	<-f.started

	if _, err := o.Submit(ctx, 1, "a@b.c", "", "", "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	// A different account is not blocked by account 1's in-flight submission.
	done2 := make(chan error, 1)
	go func() {
		_, err := o.Submit(ctx, 2, "x@y.z", "", "", "other account")
		done2 <- err
	}()
	<-f.started

	close(f.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := <-done2; err != nil {
		t.Fatalf("other account submit: %v", err)
	}
	if f.dailyCalls != 2 {
		t.Fatalf("daily calls = %d, want 2 (busy submit must not reach the model)", f.dailyCalls)
	}
}
