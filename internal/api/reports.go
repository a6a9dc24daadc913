package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ReportHandler serves generated report PDFs from the output directory.
type ReportHandler struct {
	reportsDir string
}

// NewReportHandler creates a handler rooted at the reports directory.
// The directory is resolved to an absolute path once so the containment
// check in safeName holds for relative configured paths like "./reports".
func NewReportHandler(reportsDir string) *ReportHandler {
	if abs, err := filepath.Abs(reportsDir); err == nil {
		reportsDir = abs
	} else {
		reportsDir = filepath.Clean(reportsDir)
	}
	return &ReportHandler{reportsDir: reportsDir}
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns the absolute path under the reports dir.
func (h *ReportHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	// Reject anything with path separators or traversal.
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	abs := filepath.Join(h.reportsDir, cleaned)
	// Double-check the resolved path is under the reports dir.
	if !strings.HasPrefix(abs, h.reportsDir+string(os.PathSeparator)) && abs != h.reportsDir {
		return "", fmt.Errorf("path escapes reports directory")
	}
	return abs, nil
}

// List handles GET /api/reports, newest first by filename.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.reportsDir)
	if err != nil && !os.IsNotExist(err) {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to read reports dir"))
		return
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	writeJSON(w, http.StatusOK, map[string]any{"reports": names})
}

// ServeFile handles GET /reports/{filename}.
func (h *ReportHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, abs)
}
