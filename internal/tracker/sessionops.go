package tracker

import (
	"context"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/session"
)

// DraftView is a read-only snapshot of the in-progress session draft.
type DraftView struct {
	PersonID     string                `json:"personId"`
	Person       string                `json:"person"`
	Notes        []models.SessionEntry `json:"notes"`
	Actions      []models.Action       `json:"actions"`
	Objectives   []models.SessionEntry `json:"objectives"`
	Minimized    bool                  `json:"minimized"`
	DiscardArmed bool                  `json:"discardArmed"`
}

// StartSession begins a draft one-on-one for the given person, replacing
// any draft already in progress.
func (t *Tracker) StartSession(personID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.personLocked(personID); err != nil {
		return err
	}
	t.runner = session.New(personID, t.clock)
	return nil
}

// SetSessionNotes replaces the draft notes from the full notes text.
func (t *Tracker) SetSessionNotes(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	t.runner.SetNotes(text)
	return nil
}

// SetSessionActions replaces the draft actions from the full actions text.
func (t *Tracker) SetSessionActions(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	t.runner.SetActions(text)
	return nil
}

// SetSessionObjectives replaces the draft objectives from the full
// objectives text.
func (t *Tracker) SetSessionObjectives(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	t.runner.SetObjectives(text)
	return nil
}

// MinimizeSession hides the draft without discarding it; time keeps
// accruing against entry dates as edits occur.
func (t *Tracker) MinimizeSession() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	t.runner.Minimize()
	return nil
}

// ResumeSession shows a minimized draft again.
func (t *Tracker) ResumeSession() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	t.runner.Resume()
	return nil
}

// ArmSessionDiscard arms the close-without-saving confirmation.
func (t *Tracker) ArmSessionDiscard() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	t.runner.ArmDiscard()
	return nil
}

// CancelSessionDiscard disarms the close-without-saving confirmation.
func (t *Tracker) CancelSessionDiscard() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	t.runner.CancelDiscard()
	return nil
}

// DiscardSession drops the draft unconditionally once the two-step guard
// has been armed. No session is recorded.
func (t *Tracker) DiscardSession() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	if err := t.runner.ConfirmDiscard(); err != nil {
		return err
	}
	if t.prompt != nil && t.prompt.key == "" {
		t.prompt = nil
	}
	t.runner = nil
	return nil
}

// CompleteSession appends the draft as a new session on the target person
// and discards the draft. The draft is dropped even when the person has
// been deleted in the meantime; nothing is recorded then.
func (t *Tracker) CompleteSession(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return apperr.ErrNoSession
	}
	runner := t.runner
	t.runner = nil
	if t.prompt != nil && t.prompt.key == "" {
		t.prompt = nil
	}
	p, err := t.personLocked(runner.PersonID())
	if err != nil {
		return err
	}
	p.Sessions = append(p.Sessions, runner.Complete())
	t.saveLocked(ctx, KeyOneOnOnes)
	t.notify(KeyOneOnOnes)
	return nil
}

// SessionDraft returns a snapshot of the in-progress draft.
func (t *Tracker) SessionDraft() (DraftView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return DraftView{}, apperr.ErrNoSession
	}
	person := ""
	if p, err := t.personLocked(t.runner.PersonID()); err == nil {
		person = p.Person
	}
	return DraftView{
		PersonID:     t.runner.PersonID(),
		Person:       person,
		Notes:        append([]models.SessionEntry{}, t.runner.Notes()...),
		Actions:      append([]models.Action{}, t.runner.Actions()...),
		Objectives:   append([]models.SessionEntry{}, t.runner.Objectives()...),
		Minimized:    t.runner.Minimized(),
		DiscardArmed: t.runner.DiscardArmed(),
	}, nil
}
