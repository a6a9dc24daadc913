package tracker

import (
	"context"
	"strings"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// Validation guards mirror the original disabled-affordance rule: an empty
// required field blocks the operation instead of producing partial state.
// Accepted values are stored as typed, untrimmed.

// AddValueStream appends a new value stream.
func (t *Tracker) AddValueStream(ctx context.Context, name string) (models.ValueStream, error) {
	if strings.TrimSpace(name) == "" {
		return models.ValueStream{}, apperr.ErrEmptyName
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	vs := models.NewValueStream(name, t.clock())
	t.valueStreams = append(t.valueStreams, vs)
	t.saveLocked(ctx, KeyValueStreams)
	t.notify(KeyValueStreams)
	return vs, nil
}

// DeleteValueStream removes a value stream and everything it owns. A
// selection pointing at it is cleared; siblings are untouched.
func (t *Tracker) DeleteValueStream(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := -1
	for i := range t.valueStreams {
		if t.valueStreams[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.ErrNotFound
	}
	t.valueStreams = append(t.valueStreams[:idx], t.valueStreams[idx+1:]...)
	if t.selectedStream == id {
		t.selectedStream = ""
	}
	t.saveLocked(ctx, KeyValueStreams)
	t.notify(KeyValueStreams)
	return nil
}

// AddInitiative appends a new initiative. Both the name and the emoji glyph
// are required on the normal add path.
func (t *Tracker) AddInitiative(ctx context.Context, name, emoji string) (models.Initiative, error) {
	if strings.TrimSpace(name) == "" {
		return models.Initiative{}, apperr.ErrEmptyName
	}
	if emoji == "" {
		return models.Initiative{}, apperr.ErrEmptyEmoji
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	in := models.NewInitiative(name, emoji, t.clock())
	t.initiatives = append(t.initiatives, in)
	t.saveLocked(ctx, KeyInitiatives)
	t.notify(KeyInitiatives)
	return in, nil
}

// DeleteInitiative removes an initiative and everything it owns.
func (t *Tracker) DeleteInitiative(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := -1
	for i := range t.initiatives {
		if t.initiatives[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.ErrNotFound
	}
	t.initiatives = append(t.initiatives[:idx], t.initiatives[idx+1:]...)
	if t.selectedInitiative == id {
		t.selectedInitiative = ""
	}
	t.saveLocked(ctx, KeyInitiatives)
	t.notify(KeyInitiatives)
	return nil
}

// AddPerson appends a new one-on-one record.
func (t *Tracker) AddPerson(ctx context.Context, person string) (models.OneOnOne, error) {
	if strings.TrimSpace(person) == "" {
		return models.OneOnOne{}, apperr.ErrEmptyName
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	oo := models.NewOneOnOne(person)
	t.oneOnOnes = append(t.oneOnOnes, oo)
	t.saveLocked(ctx, KeyOneOnOnes)
	t.notify(KeyOneOnOnes)
	return oo, nil
}

// DeletePerson removes a one-on-one record with its whole session history.
// An in-progress session draft for that person is discarded outright.
func (t *Tracker) DeletePerson(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := -1
	for i := range t.oneOnOnes {
		if t.oneOnOnes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.ErrNotFound
	}
	t.oneOnOnes = append(t.oneOnOnes[:idx], t.oneOnOnes[idx+1:]...)
	if t.selectedPerson == id {
		t.selectedPerson = ""
	}
	if t.runner != nil && t.runner.PersonID() == id {
		t.runner = nil
	}
	t.saveLocked(ctx, KeyOneOnOnes)
	t.notify(KeyOneOnOnes)
	return nil
}

// AddStreamTask appends an open task to a value stream.
func (t *Tracker) AddStreamTask(ctx context.Context, streamID, content string) (models.Task, error) {
	if strings.TrimSpace(content) == "" {
		return models.Task{}, apperr.ErrEmptyContent
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.streamLocked(streamID)
	if err != nil {
		return models.Task{}, err
	}
	task := models.NewTask(content, t.clock())
	s.Tasks = append(s.Tasks, task)
	t.saveLocked(ctx, KeyValueStreams)
	t.notify(KeyValueStreams)
	return task, nil
}

// AddStreamNote appends a note to a value stream.
func (t *Tracker) AddStreamNote(ctx context.Context, streamID, text string) (models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return models.Note{}, apperr.ErrEmptyContent
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.streamLocked(streamID)
	if err != nil {
		return models.Note{}, err
	}
	note := models.NewNote(text, t.clock())
	s.Notes = append(s.Notes, note)
	t.saveLocked(ctx, KeyValueStreams)
	t.notify(KeyValueStreams)
	return note, nil
}

// AddInitiativeTask appends an open task to an initiative.
func (t *Tracker) AddInitiativeTask(ctx context.Context, initiativeID, content string) (models.Task, error) {
	if strings.TrimSpace(content) == "" {
		return models.Task{}, apperr.ErrEmptyContent
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	in, err := t.initiativeLocked(initiativeID)
	if err != nil {
		return models.Task{}, err
	}
	task := models.NewTask(content, t.clock())
	in.Tasks = append(in.Tasks, task)
	t.saveLocked(ctx, KeyInitiatives)
	t.notify(KeyInitiatives)
	return task, nil
}

// AddInitiativeNote appends a note to an initiative.
func (t *Tracker) AddInitiativeNote(ctx context.Context, initiativeID, text string) (models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return models.Note{}, apperr.ErrEmptyContent
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	in, err := t.initiativeLocked(initiativeID)
	if err != nil {
		return models.Note{}, err
	}
	note := models.NewNote(text, t.clock())
	in.Notes = append(in.Notes, note)
	t.saveLocked(ctx, KeyInitiatives)
	t.notify(KeyInitiatives)
	return note, nil
}

// AppendAction is the week-view quick add: it appends an open action to the
// person's latest session, creating a first session when none exists.
func (t *Tracker) AppendAction(ctx context.Context, personID, text string) (models.Action, error) {
	if strings.TrimSpace(text) == "" {
		return models.Action{}, apperr.ErrEmptyContent
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := t.personLocked(personID)
	if err != nil {
		return models.Action{}, err
	}
	now := t.clock()
	action := models.Action{Text: text, Date: now}
	if len(p.Sessions) == 0 {
		p.Sessions = append(p.Sessions, models.OneOnOneSession{
			Date:       now,
			Notes:      []models.SessionEntry{},
			Actions:    []models.Action{action},
			Objectives: []models.SessionEntry{},
		})
	} else {
		last := &p.Sessions[len(p.Sessions)-1]
		last.Actions = append(last.Actions, action)
	}
	t.saveLocked(ctx, KeyOneOnOnes)
	t.notify(KeyOneOnOnes)
	return action, nil
}

func (t *Tracker) streamLocked(id string) (*models.ValueStream, error) {
	for i := range t.valueStreams {
		if t.valueStreams[i].ID == id {
			return &t.valueStreams[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (t *Tracker) initiativeLocked(id string) (*models.Initiative, error) {
	for i := range t.initiatives {
		if t.initiatives[i].ID == id {
			return &t.initiatives[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (t *Tracker) personLocked(id string) (*models.OneOnOne, error) {
	for i := range t.oneOnOnes {
		if t.oneOnOnes[i].ID == id {
			return &t.oneOnOnes[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}
