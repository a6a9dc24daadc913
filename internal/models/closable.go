package models

import "time"

// Closable is implemented by items that pass through the closure workflow.
// MarkOpen intentionally leaves CloseComment and CloseDate untouched: a
// reopened item keeps the metadata of its last closure until it is closed
// again, which overwrites both fields.
type Closable interface {
	IsDone() bool
	MarkClosed(comment string, at time.Time)
	MarkOpen()
}

// IsDone reports whether the task is closed.
func (t *Task) IsDone() bool { return t.Done }

// MarkClosed closes the task with the given comment and timestamp.
func (t *Task) MarkClosed(comment string, at time.Time) {
	t.Done = true
	t.CloseComment = comment
	t.CloseDate = &at
}

// MarkOpen reopens the task. Prior closure metadata is preserved.
func (t *Task) MarkOpen() { t.Done = false }

// IsDone reports whether the action is closed.
func (a *Action) IsDone() bool { return a.Done }

// MarkClosed closes the action with the given comment and timestamp.
func (a *Action) MarkClosed(comment string, at time.Time) {
	a.Done = true
	a.CloseComment = comment
	a.CloseDate = &at
}

// MarkOpen reopens the action. Prior closure metadata is preserved.
func (a *Action) MarkOpen() { a.Done = false }
