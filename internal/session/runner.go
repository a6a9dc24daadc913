// Package session manages the ephemeral draft of an in-progress one-on-one.
// Exactly one draft exists at a time system-wide; it is merged into a
// person's session history only on explicit completion.
package session

import (
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// Clock supplies the current time; injectable for tests.
type Clock func() time.Time

// Runner holds the draft notes, actions, and objectives for one in-progress
// one-on-one. Each list is re-parsed from its full text on every edit; the
// text box is the authoritative source. Re-parsing the actions text resets
// every done flag to false, which is the carried behavior of list
// replacement, not an accident of this implementation.
type Runner struct {
	personID     string
	notes        []models.SessionEntry
	actions      []models.Action
	objectives   []models.SessionEntry
	minimized    bool
	discardArmed bool
	clock        Clock
}

// New creates an empty draft for the given person.
func New(personID string, clock Clock) *Runner {
	if clock == nil {
		clock = time.Now
	}
	return &Runner{
		personID:   personID,
		notes:      []models.SessionEntry{},
		actions:    []models.Action{},
		objectives: []models.SessionEntry{},
		clock:      clock,
	}
}

// PersonID returns the id of the person this draft belongs to.
func (r *Runner) PersonID() string { return r.personID }

// SetNotes replaces the notes list from the full text of the notes box.
func (r *Runner) SetNotes(text string) {
	r.notes = ParseLines(text, r.clock())
}

// SetActions replaces the actions list from the full text of the actions
// box. All done flags reset to false.
func (r *Runner) SetActions(text string) {
	r.actions = ParseActions(text, r.clock())
}

// SetObjectives replaces the objectives list from the full text of the
// objectives box.
func (r *Runner) SetObjectives(text string) {
	r.objectives = ParseLines(text, r.clock())
}

// Notes returns the current draft notes.
func (r *Runner) Notes() []models.SessionEntry { return r.notes }

// Actions returns the current draft actions.
func (r *Runner) Actions() []models.Action { return r.actions }

// Objectives returns the current draft objectives.
func (r *Runner) Objectives() []models.SessionEntry { return r.objectives }

// Action returns a pointer to the draft action at index i, so that the
// closure workflow can mutate it in place.
func (r *Runner) Action(i int) (*models.Action, error) {
	if i < 0 || i >= len(r.actions) {
		return nil, apperr.ErrNotFound
	}
	return &r.actions[i], nil
}

// Minimize hides the editing surface. The draft is untouched and time keeps
// accruing against entry dates as edits occur.
func (r *Runner) Minimize() { r.minimized = true }

// Resume shows the editing surface again.
func (r *Runner) Resume() { r.minimized = false }

// Minimized reports whether the editing surface is hidden.
func (r *Runner) Minimized() bool { return r.minimized }

// ArmDiscard arms the close-without-saving confirmation.
func (r *Runner) ArmDiscard() { r.discardArmed = true }

// CancelDiscard disarms the close-without-saving confirmation.
func (r *Runner) CancelDiscard() { r.discardArmed = false }

// DiscardArmed reports whether discard confirmation is armed.
func (r *Runner) DiscardArmed() bool { return r.discardArmed }

// ConfirmDiscard verifies the two-step guard. The caller drops the draft on
// nil return; nothing is recorded.
func (r *Runner) ConfirmDiscard() error {
	if !r.discardArmed {
		return apperr.ErrNotArmed
	}
	return nil
}

// Complete snapshots the draft as a finished session dated now. The caller
// appends it to the person's history and discards the draft.
func (r *Runner) Complete() models.OneOnOneSession {
	return models.OneOnOneSession{
		Date:       r.clock(),
		Notes:      r.notes,
		Actions:    r.actions,
		Objectives: r.objectives,
	}
}
