package tracker

import (
	"github.com/starford/raido/internal/models"
)

// Snapshot accessors copy the collections so that readers never observe a
// collection mid-mutation.

// ValueStreams returns a copy of the value stream collection.
func (t *Tracker) ValueStreams() []models.ValueStream {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.ValueStream, len(t.valueStreams))
	for i, s := range t.valueStreams {
		out[i] = s
		out[i].Tasks = append([]models.Task{}, s.Tasks...)
		out[i].Notes = append([]models.Note{}, s.Notes...)
	}
	return out
}

// Initiatives returns a copy of the initiative collection.
func (t *Tracker) Initiatives() []models.Initiative {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Initiative, len(t.initiatives))
	for i, in := range t.initiatives {
		out[i] = in
		out[i].Tasks = append([]models.Task{}, in.Tasks...)
		out[i].Notes = append([]models.Note{}, in.Notes...)
	}
	return out
}

// OneOnOnes returns a copy of the one-on-one collection.
func (t *Tracker) OneOnOnes() []models.OneOnOne {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.OneOnOne, len(t.oneOnOnes))
	for i, o := range t.oneOnOnes {
		out[i] = o
		sessions := make([]models.OneOnOneSession, len(o.Sessions))
		for j, s := range o.Sessions {
			sessions[j] = s
			sessions[j].Notes = append([]models.SessionEntry{}, s.Notes...)
			sessions[j].Actions = append([]models.Action{}, s.Actions...)
			sessions[j].Objectives = append([]models.SessionEntry{}, s.Objectives...)
		}
		out[i].Sessions = sessions
	}
	return out
}

// Stream returns a copy of one value stream.
func (t *Tracker) Stream(id string) (models.ValueStream, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.streamLocked(id)
	if err != nil {
		return models.ValueStream{}, err
	}
	out := *s
	out.Tasks = append([]models.Task{}, s.Tasks...)
	out.Notes = append([]models.Note{}, s.Notes...)
	return out, nil
}

// Initiative returns a copy of one initiative.
func (t *Tracker) Initiative(id string) (models.Initiative, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	in, err := t.initiativeLocked(id)
	if err != nil {
		return models.Initiative{}, err
	}
	out := *in
	out.Tasks = append([]models.Task{}, in.Tasks...)
	out.Notes = append([]models.Note{}, in.Notes...)
	return out, nil
}

// Person returns a copy of one one-on-one record.
func (t *Tracker) Person(id string) (models.OneOnOne, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := t.personLocked(id)
	if err != nil {
		return models.OneOnOne{}, err
	}
	out := *p
	sessions := make([]models.OneOnOneSession, len(p.Sessions))
	for j, s := range p.Sessions {
		sessions[j] = s
		sessions[j].Notes = append([]models.SessionEntry{}, s.Notes...)
		sessions[j].Actions = append([]models.Action{}, s.Actions...)
		sessions[j].Objectives = append([]models.SessionEntry{}, s.Objectives...)
	}
	out.Sessions = sessions
	return out, nil
}

// OpenActions returns every not-done action for a person across all
// recorded sessions.
func (t *Tracker) OpenActions(personID string) ([]models.Action, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := t.personLocked(personID)
	if err != nil {
		return nil, err
	}
	actions := p.OpenActions()
	if actions == nil {
		actions = []models.Action{}
	}
	return actions, nil
}
