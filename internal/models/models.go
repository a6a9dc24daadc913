// Package models defines the domain types for Raido.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a dated unit of work owned by a value stream or initiative.
type Task struct {
	ID           string     `json:"id"`
	Content      string     `json:"content"`
	Done         bool       `json:"done"`
	Created      time.Time  `json:"created"`
	CloseComment string     `json:"closeComment,omitempty"`
	CloseDate    *time.Time `json:"closeDate,omitempty"`
}

// Note is a free-form dated remark owned by a value stream or initiative.
type Note struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// ValueStream is a named bucket of tasks and notes for an ongoing area of work.
type ValueStream struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
	Notes []Note `json:"notes"`
}

// Initiative is a named, emoji-tagged bucket of tasks and notes for a
// discrete project.
type Initiative struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Tasks []Task `json:"tasks"`
	Notes []Note `json:"notes"`
}

// SessionEntry is a single timestamped line captured during a one-on-one.
type SessionEntry struct {
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// Action is a follow-up item captured during a one-on-one session.
type Action struct {
	Text         string     `json:"text"`
	Date         time.Time  `json:"date"`
	Done         bool       `json:"done"`
	CloseComment string     `json:"closeComment,omitempty"`
	CloseDate    *time.Time `json:"closeDate,omitempty"`
}

// OneOnOneSession is one dated check-in snapshot. Its lists are captured at
// completion time and are immutable afterwards, except for the closure
// fields on Actions.
type OneOnOneSession struct {
	Date       time.Time      `json:"date"`
	Notes      []SessionEntry `json:"notes"`
	Actions    []Action       `json:"actions"`
	Objectives []SessionEntry `json:"objectives"`
}

// OneOnOne is a person's running history of check-in sessions.
// Sessions are append-only, ordered by append.
type OneOnOne struct {
	ID       string            `json:"id"`
	Person   string            `json:"person"`
	Sessions []OneOnOneSession `json:"sessions"`
}

// NewValueStream creates a value stream with a fresh id and empty lists.
func NewValueStream(name string, _ time.Time) ValueStream {
	return ValueStream{ID: uuid.NewString(), Name: name, Tasks: []Task{}, Notes: []Note{}}
}

// NewInitiative creates an initiative with a fresh id and empty lists.
func NewInitiative(name, emoji string, _ time.Time) Initiative {
	return Initiative{ID: uuid.NewString(), Name: name, Emoji: emoji, Tasks: []Task{}, Notes: []Note{}}
}

// NewOneOnOne creates a one-on-one record with no sessions yet.
func NewOneOnOne(person string) OneOnOne {
	return OneOnOne{ID: uuid.NewString(), Person: person, Sessions: []OneOnOneSession{}}
}

// NewTask creates an open task timestamped at now.
func NewTask(content string, now time.Time) Task {
	return Task{ID: uuid.NewString(), Content: content, Created: now}
}

// NewNote creates a note timestamped at now.
func NewNote(text string, now time.Time) Note {
	return Note{ID: uuid.NewString(), Text: text, Created: now}
}

// OpenActions returns every not-done action across all sessions, in
// session order.
func (o *OneOnOne) OpenActions() []Action {
	var out []Action
	for _, s := range o.Sessions {
		for _, a := range s.Actions {
			if !a.Done {
				out = append(out, a)
			}
		}
	}
	return out
}
