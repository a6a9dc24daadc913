// Package closure implements the guarded open-to-closed transition shared
// by tasks and one-on-one actions.
//
// The workflow has three states. Toggling an open item does not mutate it;
// it produces a pending prompt that collects a mandatory comment. Toggling
// a closed item reopens it immediately, with no confirmation and without
// clearing the metadata of its last closure.
package closure

import (
	"strings"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// State is the position of an item in the closure workflow.
type State int

const (
	Open State = iota
	PendingClose
	Closed
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case PendingClose:
		return "pending-close"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Clock supplies the current time; injectable for tests.
type Clock func() time.Time

// Prompt is the comment-collection step between Open and Closed. It holds
// workflow state only; the target item is resolved again when the prompt is
// confirmed, so a prompt never pins a pointer into a live collection.
type Prompt struct {
	state   State
	comment string
	clock   Clock
}

// Toggle drives the workflow from a checkbox-style event. An open target
// yields a PendingClose prompt and leaves the target unchanged. A closed
// target is reopened in place and nil is returned.
func Toggle(target models.Closable, clock Clock) *Prompt {
	if clock == nil {
		clock = time.Now
	}
	if target.IsDone() {
		target.MarkOpen()
		return nil
	}
	return &Prompt{state: PendingClose, clock: clock}
}

// State returns the prompt's current workflow state.
func (p *Prompt) State() State { return p.state }

// SetComment records the comment typed so far.
func (p *Prompt) SetComment(comment string) { p.comment = comment }

// Comment returns the comment typed so far.
func (p *Prompt) Comment() string { return p.comment }

// CanConfirm reports whether the confirm guard would pass: the prompt is
// still pending and the comment is non-empty after trimming.
func (p *Prompt) CanConfirm() bool {
	return p.state == PendingClose && strings.TrimSpace(p.comment) != ""
}

// Confirm closes target with the recorded comment. An empty or
// whitespace-only comment is a guard failure, not a transition: the error
// is returned and both the prompt and the target are left unchanged. The
// stored comment is the raw string as typed.
func (p *Prompt) Confirm(target models.Closable) error {
	if p.state != PendingClose {
		return apperr.ErrNoPrompt
	}
	if strings.TrimSpace(p.comment) == "" {
		return apperr.ErrEmptyComment
	}
	target.MarkClosed(p.comment, p.clock())
	p.state = Closed
	return nil
}

// Cancel discards a pending prompt without mutating anything.
func (p *Prompt) Cancel() {
	if p.state == PendingClose {
		p.state = Open
	}
}

// StateOf reports the persisted state of an item outside any prompt.
func StateOf(target models.Closable) State {
	if target.IsDone() {
		return Closed
	}
	return Open
}
