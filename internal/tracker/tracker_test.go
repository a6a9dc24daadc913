package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/storage"
)

// spyStore records every Load and Save so tests can assert on ordering and
// payloads without a real database.
type spyStore struct {
	mu      sync.Mutex
	docs    map[string][]byte
	loadErr map[string]error
	saveErr error
	saves   []string
}

func newSpyStore() *spyStore {
	return &spyStore{
		docs:    make(map[string][]byte),
		loadErr: make(map[string]error),
	}
}

func (s *spyStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadErr[key]; err != nil {
		return nil, err
	}
	return s.docs[key], nil
}

func (s *spyStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, key)
	s.docs[key] = append([]byte(nil), value...)
	return nil
}

func (s *spyStore) Close() error { return nil }

func (s *spyStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

var _ storage.Provider = (*spyStore)(nil)

func TestNoSaveBeforeLoadResolves(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()

	// Mutations before Load must never write: the gate is shut.
	if _, err := trk.AddValueStream(ctx, "Platform"); err != nil {
		t.Fatal(err)
	}
	if store.saveCount() != 0 {
		t.Fatalf("saves before load = %d, want 0", store.saveCount())
	}

	if err := trk.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := trk.AddValueStream(ctx, "Delivery"); err != nil {
		t.Fatal(err)
	}
	if store.saveCount() != 1 {
		t.Fatalf("saves after load = %d, want 1", store.saveCount())
	}
}

func TestLoadErrorKeepsGateShut(t *testing.T) {
	store := newSpyStore()
	store.loadErr[KeyValueStreams] = errors.New("disk gone")
	store.docs[KeyOneOnOnes] = []byte(`[]`)
	trk := New(store, nil)
	ctx := context.Background()

	if err := trk.Load(ctx); err == nil {
		t.Fatal("expected load error")
	}

	// The failed collection never saves; the healthy ones do.
	if trk.Loaded(KeyValueStreams) {
		t.Error("valueStreams gate should be shut")
	}
	if !trk.Loaded(KeyOneOnOnes) || !trk.Loaded(KeyInitiatives) {
		t.Error("independent collections should have loaded")
	}

	_, _ = trk.AddValueStream(ctx, "Platform")
	_, _ = trk.AddPerson(ctx, "Alex")
	for _, key := range store.saves {
		if key == KeyValueStreams {
			t.Fatal("a failed collection must never be written back")
		}
	}
	if store.saveCount() != 1 {
		t.Errorf("saves = %v, want only %s", store.saves, KeyOneOnOnes)
	}
}

func TestLoadMissingDocumentOpensGate(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)

	if err := trk.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{KeyValueStreams, KeyOneOnOnes, KeyInitiatives} {
		if !trk.Loaded(key) {
			t.Errorf("gate for %s should be open after a missing document", key)
		}
	}
	if len(trk.ValueStreams()) != 0 {
		t.Error("missing document should leave the empty default")
	}
}

func TestSaveFailureKeepsStateInMemory(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	if err := trk.Load(ctx); err != nil {
		t.Fatal(err)
	}

	store.saveErr = errors.New("disk full")
	if _, err := trk.AddValueStream(ctx, "Platform"); err != nil {
		t.Fatalf("mutation must not surface the save error, got %v", err)
	}
	if len(trk.ValueStreams()) != 1 {
		t.Error("in-memory state should stay ahead of the store")
	}
}

func TestEmojiMigrationOnLoad(t *testing.T) {
	store := newSpyStore()
	store.docs[KeyInitiatives] = []byte(`[
		{"id":"i1","name":"🚀 Launch","tasks":null,"notes":null},
		{"id":"i2","name":"Plain","tasks":[],"notes":[]},
		{"id":"i3","name":"🎯 Goals","emoji":"🎯","tasks":[],"notes":[]}
	]`)
	trk := New(store, nil)
	if err := trk.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	ins := trk.Initiatives()
	if len(ins) != 3 {
		t.Fatalf("initiatives = %d", len(ins))
	}
	if ins[0].Emoji != "🚀" || ins[0].Name != "Launch" {
		t.Errorf("migrated = %q / %q, want 🚀 / Launch", ins[0].Emoji, ins[0].Name)
	}
	if ins[0].Tasks == nil || ins[0].Notes == nil {
		t.Error("nil lists should be replaced with empty slices")
	}
	if ins[1].Emoji != "" || ins[1].Name != "Plain" {
		t.Errorf("no-emoji record = %q / %q", ins[1].Emoji, ins[1].Name)
	}
	// A record already carrying the emoji field passes through untouched.
	if ins[2].Emoji != "🎯" || ins[2].Name != "🎯 Goals" {
		t.Errorf("already-migrated record = %q / %q", ins[2].Emoji, ins[2].Name)
	}
	if store.saveCount() != 0 {
		t.Error("migration must not re-persist on load")
	}
}

func TestClosureEndToEnd(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	if err := trk.Load(ctx); err != nil {
		t.Fatal(err)
	}

	vs, _ := trk.AddValueStream(ctx, "Platform")
	task, _ := trk.AddStreamTask(ctx, vs.ID, "Migrate DB")

	pending, err := trk.ToggleStreamTask(ctx, vs.ID, task.ID)
	if err != nil || !pending {
		t.Fatalf("toggle = (%v, %v), want pending", pending, err)
	}
	if !trk.ClosurePending() {
		t.Fatal("prompt should be armed")
	}

	// Empty comment: guard failure, prompt stays armed, task untouched.
	if err := trk.ConfirmClosure(ctx, "   "); !errors.Is(err, apperr.ErrEmptyComment) {
		t.Fatalf("empty comment = %v", err)
	}
	if !trk.ClosurePending() {
		t.Fatal("prompt must survive a guard failure")
	}
	got, _ := trk.Stream(vs.ID)
	if got.Tasks[0].Done {
		t.Fatal("task must be unchanged after guard failure")
	}

	if err := trk.ConfirmClosure(ctx, "done in prod"); err != nil {
		t.Fatal(err)
	}
	got, _ = trk.Stream(vs.ID)
	if !got.Tasks[0].Done || got.Tasks[0].CloseComment != "done in prod" {
		t.Errorf("task = %+v", got.Tasks[0])
	}
	if trk.ClosurePending() {
		t.Error("prompt should be cleared")
	}

	// Persisted payload carries the closure fields.
	var persisted []models.ValueStream
	if err := json.Unmarshal(store.docs[KeyValueStreams], &persisted); err != nil {
		t.Fatal(err)
	}
	if !persisted[0].Tasks[0].Done || persisted[0].Tasks[0].CloseComment != "done in prod" {
		t.Errorf("persisted task = %+v", persisted[0].Tasks[0])
	}
}

func TestToggleSurvivesCollectionGrowth(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	vs, _ := trk.AddValueStream(ctx, "Platform")
	task, _ := trk.AddStreamTask(ctx, vs.ID, "Migrate DB")

	if _, err := trk.ToggleStreamTask(ctx, vs.ID, task.ID); err != nil {
		t.Fatal(err)
	}
	// Grow the tasks slice while the prompt is open; confirm must still
	// land on the right task.
	for i := 0; i < 16; i++ {
		if _, err := trk.AddStreamTask(ctx, vs.ID, "filler"); err != nil {
			t.Fatal(err)
		}
	}
	if err := trk.ConfirmClosure(ctx, "done"); err != nil {
		t.Fatal(err)
	}
	got, _ := trk.Stream(vs.ID)
	if !got.Tasks[0].Done {
		t.Error("original task should be the closed one")
	}
	for _, task := range got.Tasks[1:] {
		if task.Done {
			t.Error("filler tasks must stay open")
		}
	}
}

func TestConfirmAfterOwnerDeleted(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	vs, _ := trk.AddValueStream(ctx, "Platform")
	task, _ := trk.AddStreamTask(ctx, vs.ID, "Migrate DB")
	_, _ = trk.ToggleStreamTask(ctx, vs.ID, task.ID)

	if err := trk.DeleteValueStream(ctx, vs.ID); err != nil {
		t.Fatal(err)
	}
	if err := trk.ConfirmClosure(ctx, "done"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("confirm after delete = %v, want ErrNotFound", err)
	}
	if trk.ClosurePending() {
		t.Error("prompt should be dropped when its target vanished")
	}
}

func TestReopenKeepsMetadata(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	vs, _ := trk.AddValueStream(ctx, "Platform")
	task, _ := trk.AddStreamTask(ctx, vs.ID, "Migrate DB")
	_, _ = trk.ToggleStreamTask(ctx, vs.ID, task.ID)
	_ = trk.ConfirmClosure(ctx, "done in prod")

	pending, err := trk.ToggleStreamTask(ctx, vs.ID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if pending {
		t.Fatal("reopen must not arm a prompt")
	}
	got, _ := trk.Stream(vs.ID)
	if got.Tasks[0].Done {
		t.Fatal("task should be open")
	}
	if got.Tasks[0].CloseComment != "done in prod" || got.Tasks[0].CloseDate == nil {
		t.Error("stale closure metadata must be preserved")
	}
}

func TestDraftActionClosureDoesNotSave(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	oo, _ := trk.AddPerson(ctx, "Alex")
	saves := store.saveCount()

	if err := trk.StartSession(oo.ID); err != nil {
		t.Fatal(err)
	}
	_ = trk.SetSessionActions("review PR")
	pending, err := trk.ToggleDraftAction(ctx, 0)
	if err != nil || !pending {
		t.Fatalf("toggle draft = (%v, %v)", pending, err)
	}
	if err := trk.ConfirmClosure(ctx, "reviewed"); err != nil {
		t.Fatal(err)
	}
	if store.saveCount() != saves {
		t.Error("draft mutations must not persist")
	}

	draft, _ := trk.SessionDraft()
	if !draft.Actions[0].Done || draft.Actions[0].CloseComment != "reviewed" {
		t.Errorf("draft action = %+v", draft.Actions[0])
	}
}

func TestCompleteSessionAppends(t *testing.T) {
	store := newSpyStore()
	clock := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)
	trk := New(store, nil, WithClock(func() time.Time { return clock }))
	ctx := context.Background()
	_ = trk.Load(ctx)

	oo, _ := trk.AddPerson(ctx, "Alex")
	_ = trk.StartSession(oo.ID)
	_ = trk.SetSessionNotes("went well")
	_ = trk.SetSessionActions("follow up")
	if err := trk.CompleteSession(ctx); err != nil {
		t.Fatal(err)
	}

	got, _ := trk.Person(oo.ID)
	if len(got.Sessions) != 1 {
		t.Fatalf("sessions = %d", len(got.Sessions))
	}
	if !got.Sessions[0].Date.Equal(clock) {
		t.Errorf("session date = %v", got.Sessions[0].Date)
	}
	if _, err := trk.SessionDraft(); !errors.Is(err, apperr.ErrNoSession) {
		t.Error("draft should be gone after complete")
	}
}

func TestDeletePersonDropsDraft(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	oo, _ := trk.AddPerson(ctx, "Alex")
	_ = trk.StartSession(oo.ID)
	if err := trk.DeletePerson(ctx, oo.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := trk.SessionDraft(); !errors.Is(err, apperr.ErrNoSession) {
		t.Error("draft for a deleted person should be discarded")
	}
}

func TestDeleteClearsMatchingSelection(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	vs, _ := trk.AddValueStream(ctx, "Platform")
	other, _ := trk.AddValueStream(ctx, "Delivery")
	_ = trk.SelectStream(vs.ID)

	// Deleting a sibling keeps the selection.
	_ = trk.DeleteValueStream(ctx, other.ID)
	streamID, _, _ := trk.Selection()
	if streamID != vs.ID {
		t.Fatal("selection should survive sibling deletion")
	}

	_ = trk.DeleteValueStream(ctx, vs.ID)
	streamID, _, _ = trk.Selection()
	if streamID != "" {
		t.Error("selection should be cleared with its target")
	}
}

func TestSelectionIsExclusive(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	vs, _ := trk.AddValueStream(ctx, "Platform")
	in, _ := trk.AddInitiative(ctx, "Launch", "🚀")

	_ = trk.SelectStream(vs.ID)
	_ = trk.SelectInitiative(in.ID)
	streamID, initiativeID, personID := trk.Selection()
	if streamID != "" || initiativeID != in.ID || personID != "" {
		t.Errorf("selection = (%q, %q, %q)", streamID, initiativeID, personID)
	}
}

func TestAppendActionQuickAdd(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	oo, _ := trk.AddPerson(ctx, "Alex")

	// First quick add creates an initial session.
	if _, err := trk.AppendAction(ctx, oo.ID, "review PR"); err != nil {
		t.Fatal(err)
	}
	// Second lands in the same session.
	if _, err := trk.AppendAction(ctx, oo.ID, "send doc"); err != nil {
		t.Fatal(err)
	}
	got, _ := trk.Person(oo.ID)
	if len(got.Sessions) != 1 || len(got.Sessions[0].Actions) != 2 {
		t.Errorf("sessions = %+v", got.Sessions)
	}
}

func TestEmptyInputsRejected(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	if _, err := trk.AddValueStream(ctx, "  "); !errors.Is(err, apperr.ErrEmptyName) {
		t.Errorf("blank stream name = %v", err)
	}
	if _, err := trk.AddInitiative(ctx, "Launch", ""); !errors.Is(err, apperr.ErrEmptyEmoji) {
		t.Errorf("missing emoji = %v", err)
	}
	vs, _ := trk.AddValueStream(ctx, "Platform")
	if _, err := trk.AddStreamTask(ctx, vs.ID, " \t"); !errors.Is(err, apperr.ErrEmptyContent) {
		t.Errorf("blank task = %v", err)
	}

	// Accepted values keep their whitespace.
	task, err := trk.AddStreamTask(ctx, vs.ID, "  padded  ")
	if err != nil {
		t.Fatal(err)
	}
	if task.Content != "  padded  " {
		t.Errorf("content = %q, must be stored as typed", task.Content)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	store := newSpyStore()
	trk := New(store, nil)
	ctx := context.Background()
	_ = trk.Load(ctx)

	vs, _ := trk.AddValueStream(ctx, "Platform")
	_, _ = trk.AddStreamTask(ctx, vs.ID, "Migrate DB")

	snap := trk.ValueStreams()
	snap[0].Name = "hacked"
	snap[0].Tasks[0].Content = "hacked"

	got, _ := trk.Stream(vs.ID)
	if got.Name != "Platform" || got.Tasks[0].Content != "Migrate DB" {
		t.Error("mutating a snapshot must not touch the tracker state")
	}
}
