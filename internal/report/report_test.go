package report

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/week"
)

func TestFilename(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if got := Filename(monday); got != "Weekly-Report-2025-06-02.pdf" {
		t.Errorf("Filename = %q", got)
	}
}

func weekGroups() []week.OriginGroup {
	created := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	task := models.NewTask("Migrate DB", created)
	task.MarkClosed("done in prod", created)
	return []week.OriginGroup{{
		Name: "Platform",
		Type: week.OriginValueStream,
		Entries: []week.Entry{{
			OriginType: week.OriginValueStream,
			OriginName: "Platform",
			Task:       task,
		}},
	}}
}

func TestGenerateWritesPDF(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "")

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	path, err := r.Generate(weekGroups(), start, end)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "Weekly-Report-2025-06-02.pdf" {
		t.Errorf("path = %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty pdf")
	}
}

func TestGenerateEmptyWeek(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "")

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	path, err := r.Generate(nil, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}

func TestGenerateOverwritesSameWeek(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "")

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	first, err := r.Generate(nil, start, end)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Generate(weekGroups(), start, end)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("paths differ: %q vs %q", first, second)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("files in dir = %d, want 1", len(entries))
	}
}

func TestGenerateSkipsMissingLogo(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, filepath.Join(dir, "nope.png"))

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	if _, err := r.Generate(weekGroups(), start, end); err != nil {
		t.Fatalf("missing logo must not fail generation: %v", err)
	}
}

func TestWatchReportsNewPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, slog.Default(), func(filename string) {
			select {
			case got <- filename:
			default:
			}
		})
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "Weekly-Report-2025-06-02.pdf"), []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-got:
		if name != "Weekly-Report-2025-06-02.pdf" {
			t.Errorf("filename = %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for watcher callback")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watch returned %v", err)
	}
}

func TestWatchIgnoresNonPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 4)
	go func() {
		_ = Watch(ctx, dir, slog.Default(), func(filename string) { got <- filename })
	}()

	time.Sleep(100 * time.Millisecond)
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	select {
	case name := <-got:
		t.Errorf("unexpected callback for %q", name)
	case <-time.After(300 * time.Millisecond):
	}
}
