package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/raido/internal/report"
	"github.com/starford/raido/internal/tracker"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// reportsDir is the directory report PDFs are written to and served from.
func NewRouter(trk *tracker.Tracker, renderer *report.Renderer, authEnabled bool, token string, sseHandler http.Handler, reportsDir string) chi.Router {
	h := NewHandler(trk, renderer)
	rh := NewReportHandler(reportsDir)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Value streams.
	r.Get("/streams", h.ListStreams)
	r.Post("/streams", h.CreateStream)
	r.Delete("/streams/{id}", h.DeleteStream)
	r.Post("/streams/{id}/tasks", h.AddStreamTask)
	r.Post("/streams/{id}/notes", h.AddStreamNote)
	r.Post("/streams/{id}/tasks/{taskID}/toggle", h.ToggleStreamTask)
	r.Get("/streams/{id}/days", h.StreamDays)
	r.Post("/streams/{id}/select", h.SelectStream)

	// Initiatives.
	r.Get("/initiatives", h.ListInitiatives)
	r.Post("/initiatives", h.CreateInitiative)
	r.Delete("/initiatives/{id}", h.DeleteInitiative)
	r.Post("/initiatives/{id}/tasks", h.AddInitiativeTask)
	r.Post("/initiatives/{id}/notes", h.AddInitiativeNote)
	r.Post("/initiatives/{id}/tasks/{taskID}/toggle", h.ToggleInitiativeTask)
	r.Get("/initiatives/{id}/days", h.InitiativeDays)
	r.Post("/initiatives/{id}/select", h.SelectInitiative)

	// One-on-ones.
	r.Get("/people", h.ListPeople)
	r.Post("/people", h.CreatePerson)
	r.Delete("/people/{id}", h.DeletePerson)
	r.Get("/people/{id}/actions", h.OpenActions)
	r.Post("/people/{id}/actions", h.AppendAction)
	r.Post("/people/{id}/sessions/{session}/actions/{action}/toggle", h.ToggleSessionAction)
	r.Post("/people/{id}/select", h.SelectPerson)

	// Selection.
	r.Get("/selection", h.GetSelection)
	r.Delete("/selection", h.ClearSelection)

	// Closure workflow.
	r.Post("/closure/confirm", h.ConfirmClosure)
	r.Post("/closure/cancel", h.CancelClosure)

	// Session draft lifecycle.
	r.Post("/session", h.StartSession)
	r.Get("/session", h.GetSession)
	r.Delete("/session", h.DiscardSession)
	r.Put("/session/notes", h.SetSessionNotes)
	r.Put("/session/actions", h.SetSessionActions)
	r.Put("/session/objectives", h.SetSessionObjectives)
	r.Post("/session/actions/{action}/toggle", h.ToggleDraftAction)
	r.Post("/session/minimize", h.MinimizeSession)
	r.Post("/session/resume", h.ResumeSession)
	r.Post("/session/discard/arm", h.ArmSessionDiscard)
	r.Post("/session/discard/cancel", h.CancelSessionDiscard)
	r.Post("/session/complete", h.CompleteSession)

	// Week aggregation and reports.
	r.Get("/week", h.Week)
	r.Post("/report", h.GenerateReport)
	r.Get("/reports", rh.List)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
