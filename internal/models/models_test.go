package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSplitLeadingEmoji(t *testing.T) {
	tests := []struct {
		name  string
		emoji string
		rest  string
		ok    bool
	}{
		{"🚀 Launch", "🚀", "Launch", true},
		{"🚀Launch", "🚀", "Launch", true},
		{"✈️ Travel", "✈️", "Travel", true},
		{"☀ Sunny", "☀", "Sunny", true},
		{"Launch", "", "Launch", false},
		{"", "", "", false},
		{"1 Launch", "", "1 Launch", false},
	}
	for _, tt := range tests {
		emoji, rest, ok := SplitLeadingEmoji(tt.name)
		if emoji != tt.emoji || rest != tt.rest || ok != tt.ok {
			t.Errorf("SplitLeadingEmoji(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.name, emoji, rest, ok, tt.emoji, tt.rest, tt.ok)
		}
	}
}

func TestMarkClosedAndOpen(t *testing.T) {
	task := NewTask("Migrate DB", time.Now())
	at := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)

	task.MarkClosed("  done in prod  ", at)
	if !task.Done {
		t.Fatal("task should be done")
	}
	if task.CloseComment != "  done in prod  " {
		t.Errorf("closeComment = %q, comment must be stored untrimmed", task.CloseComment)
	}
	if task.CloseDate == nil || !task.CloseDate.Equal(at) {
		t.Errorf("closeDate = %v", task.CloseDate)
	}

	// Reopening keeps the stale closure metadata.
	task.MarkOpen()
	if task.Done {
		t.Fatal("task should be open")
	}
	if task.CloseComment != "  done in prod  " || task.CloseDate == nil {
		t.Error("reopen must not clear closure metadata")
	}
}

func TestOpenActions(t *testing.T) {
	oo := NewOneOnOne("Alex")
	now := time.Now()
	oo.Sessions = []OneOnOneSession{
		{Date: now, Actions: []Action{{Text: "a", Date: now}, {Text: "b", Done: true, Date: now}}},
		{Date: now, Actions: []Action{{Text: "c", Date: now}}},
	}

	open := oo.OpenActions()
	if len(open) != 2 {
		t.Fatalf("open actions = %d, want 2", len(open))
	}
	if open[0].Text != "a" || open[1].Text != "c" {
		t.Errorf("open = %+v", open)
	}
}

func TestTaskJSONShape(t *testing.T) {
	task := NewTask("x", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	_ = json.Unmarshal(data, &m)
	for _, key := range []string{"id", "content", "done", "created"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	// Closure fields are omitted while the task is open.
	if _, ok := m["closeComment"]; ok {
		t.Error("closeComment should be omitted for open tasks")
	}
	if _, ok := m["closeDate"]; ok {
		t.Error("closeDate should be omitted for open tasks")
	}
}
