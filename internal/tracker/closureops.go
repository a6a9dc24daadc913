package tracker

import (
	"context"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/closure"
	"github.com/starford/raido/internal/models"
)

// promptTarget binds the single active closure prompt to the item it was
// opened for. The item is re-resolved by id at confirm time rather than
// pinned by pointer, so collection growth between toggle and confirm is
// harmless and a deleted owner surfaces as not-found.
type promptTarget struct {
	prompt *closure.Prompt
	// key is the collection persisted on confirm; empty for draft actions,
	// which live only in the session runner.
	key     string
	resolve func() (models.Closable, error)
}

func (t *Tracker) streamTaskLocked(streamID, taskID string) (models.Closable, error) {
	s, err := t.streamLocked(streamID)
	if err != nil {
		return nil, err
	}
	for i := range s.Tasks {
		if s.Tasks[i].ID == taskID {
			return &s.Tasks[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (t *Tracker) initiativeTaskLocked(initiativeID, taskID string) (models.Closable, error) {
	in, err := t.initiativeLocked(initiativeID)
	if err != nil {
		return nil, err
	}
	for i := range in.Tasks {
		if in.Tasks[i].ID == taskID {
			return &in.Tasks[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (t *Tracker) sessionActionLocked(personID string, sessionIdx, actionIdx int) (models.Closable, error) {
	p, err := t.personLocked(personID)
	if err != nil {
		return nil, err
	}
	if sessionIdx < 0 || sessionIdx >= len(p.Sessions) {
		return nil, apperr.ErrNotFound
	}
	s := &p.Sessions[sessionIdx]
	if actionIdx < 0 || actionIdx >= len(s.Actions) {
		return nil, apperr.ErrNotFound
	}
	return &s.Actions[actionIdx], nil
}

// toggleLocked runs the shared toggle logic: reopen immediately, or arm the
// comment prompt with no mutation.
func (t *Tracker) toggleLocked(ctx context.Context, key string, target models.Closable, resolve func() (models.Closable, error)) bool {
	p := closure.Toggle(target, t.clock)
	if p == nil {
		// Reopened in place; stale closure metadata is kept by design of
		// the workflow (see closure package).
		if key != "" {
			t.saveLocked(ctx, key)
			t.notify(key)
		}
		return false
	}
	t.prompt = &promptTarget{prompt: p, key: key, resolve: resolve}
	return true
}

// ToggleStreamTask drives the closure workflow for a value stream task.
// It reports pending=true when a comment prompt was armed (no mutation
// yet) and pending=false when a closed task was reopened in place.
func (t *Tracker) ToggleStreamTask(ctx context.Context, streamID, taskID string) (pending bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, err := t.streamTaskLocked(streamID, taskID)
	if err != nil {
		return false, err
	}
	resolve := func() (models.Closable, error) { return t.streamTaskLocked(streamID, taskID) }
	return t.toggleLocked(ctx, KeyValueStreams, task, resolve), nil
}

// ToggleInitiativeTask drives the closure workflow for an initiative task.
func (t *Tracker) ToggleInitiativeTask(ctx context.Context, initiativeID, taskID string) (pending bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, err := t.initiativeTaskLocked(initiativeID, taskID)
	if err != nil {
		return false, err
	}
	resolve := func() (models.Closable, error) { return t.initiativeTaskLocked(initiativeID, taskID) }
	return t.toggleLocked(ctx, KeyInitiatives, task, resolve), nil
}

// ToggleSessionAction drives the closure workflow for an action inside a
// recorded session.
func (t *Tracker) ToggleSessionAction(ctx context.Context, personID string, sessionIdx, actionIdx int) (pending bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	action, err := t.sessionActionLocked(personID, sessionIdx, actionIdx)
	if err != nil {
		return false, err
	}
	resolve := func() (models.Closable, error) {
		return t.sessionActionLocked(personID, sessionIdx, actionIdx)
	}
	return t.toggleLocked(ctx, KeyOneOnOnes, action, resolve), nil
}

// ToggleDraftAction drives the closure workflow for an action in the
// in-progress session draft. Draft state is never persisted, so neither
// branch triggers a save.
func (t *Tracker) ToggleDraftAction(ctx context.Context, actionIdx int) (pending bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return false, apperr.ErrNoSession
	}
	action, err := t.runner.Action(actionIdx)
	if err != nil {
		return false, err
	}
	runner := t.runner
	resolve := func() (models.Closable, error) {
		if t.runner != runner {
			return nil, apperr.ErrNotFound
		}
		return runner.Action(actionIdx)
	}
	return t.toggleLocked(ctx, "", action, resolve), nil
}

// ClosurePending reports whether a closure prompt is awaiting its comment.
func (t *Tracker) ClosurePending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prompt != nil
}

// ConfirmClosure closes the prompted item with the given comment. The
// empty-comment guard leaves the prompt armed and the item unchanged. If
// the item's owner was deleted while the prompt was open, the prompt is
// dropped and not-found is returned.
func (t *Tracker) ConfirmClosure(ctx context.Context, comment string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.prompt == nil {
		return apperr.ErrNoPrompt
	}
	target, err := t.prompt.resolve()
	if err != nil {
		t.prompt = nil
		return err
	}
	t.prompt.prompt.SetComment(comment)
	if err := t.prompt.prompt.Confirm(target); err != nil {
		return err
	}
	if t.prompt.key != "" {
		t.saveLocked(ctx, t.prompt.key)
		t.notify(t.prompt.key)
	}
	t.prompt = nil
	return nil
}

// CancelClosure discards the pending prompt without mutating anything.
func (t *Tracker) CancelClosure() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.prompt == nil {
		return apperr.ErrNoPrompt
	}
	t.prompt.prompt.Cancel()
	t.prompt = nil
	return nil
}
