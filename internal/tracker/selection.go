package tracker

// Selection is the transient UI selection. At most one entity is selected
// at a time; deleting the selected entity clears it. Selection is never
// persisted.

// SelectStream selects a value stream, clearing any other selection.
func (t *Tracker) SelectStream(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.streamLocked(id); err != nil {
		return err
	}
	t.selectedStream, t.selectedInitiative, t.selectedPerson = id, "", ""
	return nil
}

// SelectInitiative selects an initiative, clearing any other selection.
func (t *Tracker) SelectInitiative(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.initiativeLocked(id); err != nil {
		return err
	}
	t.selectedStream, t.selectedInitiative, t.selectedPerson = "", id, ""
	return nil
}

// SelectPerson selects a team member, clearing any other selection.
func (t *Tracker) SelectPerson(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.personLocked(id); err != nil {
		return err
	}
	t.selectedStream, t.selectedInitiative, t.selectedPerson = "", "", id
	return nil
}

// ClearSelection drops any selection.
func (t *Tracker) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selectedStream, t.selectedInitiative, t.selectedPerson = "", "", ""
}

// Selection returns the currently selected stream, initiative, and person
// ids; at most one is non-empty.
func (t *Tracker) Selection() (streamID, initiativeID, personID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectedStream, t.selectedInitiative, t.selectedPerson
}
