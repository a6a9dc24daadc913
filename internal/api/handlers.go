package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/report"
	"github.com/starford/raido/internal/tracker"
	"github.com/starford/raido/internal/week"
)

// Handler holds API route handlers.
type Handler struct {
	trk      *tracker.Tracker
	renderer *report.Renderer
	clock    func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(trk *tracker.Tracker, renderer *report.Renderer) *Handler {
	return &Handler{trk: trk, renderer: renderer, clock: time.Now}
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrEmptyName),
		errors.Is(err, apperr.ErrEmptyEmoji),
		errors.Is(err, apperr.ErrEmptyContent),
		errors.Is(err, apperr.ErrEmptyComment):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNoPrompt),
		errors.Is(err, apperr.ErrNoSession),
		errors.Is(err, apperr.ErrNotArmed):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// ListStreams handles GET /api/streams.
//
//	@Summary		List value streams with their tasks and notes
//	@Tags			streams
//	@Produce		json
//	@Success		200	{object}	StreamListResponse
//	@Security		BearerAuth
//	@Router			/streams [get]
func (h *Handler) ListStreams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StreamListResponse{ValueStreams: h.trk.ValueStreams()})
}

// CreateStream handles POST /api/streams.
//
//	@Summary		Create a value stream
//	@Tags			streams
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateStreamRequest	true	"Stream to create"
//	@Success		201		{object}	models.ValueStream
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/streams [post]
func (h *Handler) CreateStream(w http.ResponseWriter, r *http.Request) {
	var req CreateStreamRequest
	if !decode(w, r, &req) {
		return
	}
	vs, err := h.trk.AddValueStream(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vs)
}

// DeleteStream handles DELETE /api/streams/{id}.
func (h *Handler) DeleteStream(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.DeleteValueStream(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddStreamTask handles POST /api/streams/{id}/tasks.
func (h *Handler) AddStreamTask(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	task, err := h.trk.AddStreamTask(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// AddStreamNote handles POST /api/streams/{id}/notes.
func (h *Handler) AddStreamNote(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	note, err := h.trk.AddStreamNote(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// ToggleStreamTask handles POST /api/streams/{id}/tasks/{taskID}/toggle.
// Toggling an open task arms the closure prompt instead of mutating; the
// caller follows up with closure confirm or cancel.
func (h *Handler) ToggleStreamTask(w http.ResponseWriter, r *http.Request) {
	pending, err := h.trk.ToggleStreamTask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Pending: pending})
}

// StreamDays handles GET /api/streams/{id}/days.
//
//	@Summary		A value stream's tasks and notes grouped by day, newest first
//	@Tags			streams
//	@Produce		json
//	@Success		200	{object}	DayListResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/streams/{id}/days [get]
func (h *Handler) StreamDays(w http.ResponseWriter, r *http.Request) {
	vs, err := h.trk.Stream(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DayListResponse{Days: week.ItemsByDay(vs.Tasks, vs.Notes)})
}

// SelectStream handles POST /api/streams/{id}/select.
func (h *Handler) SelectStream(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.SelectStream(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListInitiatives handles GET /api/initiatives.
//
//	@Summary		List initiatives with their tasks and notes
//	@Tags			initiatives
//	@Produce		json
//	@Success		200	{object}	InitiativeListResponse
//	@Security		BearerAuth
//	@Router			/initiatives [get]
func (h *Handler) ListInitiatives(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InitiativeListResponse{Initiatives: h.trk.Initiatives()})
}

// CreateInitiative handles POST /api/initiatives.
func (h *Handler) CreateInitiative(w http.ResponseWriter, r *http.Request) {
	var req CreateInitiativeRequest
	if !decode(w, r, &req) {
		return
	}
	in, err := h.trk.AddInitiative(r.Context(), req.Name, req.Emoji)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

// DeleteInitiative handles DELETE /api/initiatives/{id}.
func (h *Handler) DeleteInitiative(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.DeleteInitiative(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddInitiativeTask handles POST /api/initiatives/{id}/tasks.
func (h *Handler) AddInitiativeTask(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	task, err := h.trk.AddInitiativeTask(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// AddInitiativeNote handles POST /api/initiatives/{id}/notes.
func (h *Handler) AddInitiativeNote(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	note, err := h.trk.AddInitiativeNote(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// ToggleInitiativeTask handles POST /api/initiatives/{id}/tasks/{taskID}/toggle.
func (h *Handler) ToggleInitiativeTask(w http.ResponseWriter, r *http.Request) {
	pending, err := h.trk.ToggleInitiativeTask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Pending: pending})
}

// InitiativeDays handles GET /api/initiatives/{id}/days.
func (h *Handler) InitiativeDays(w http.ResponseWriter, r *http.Request) {
	in, err := h.trk.Initiative(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DayListResponse{Days: week.ItemsByDay(in.Tasks, in.Notes)})
}

// SelectInitiative handles POST /api/initiatives/{id}/select.
func (h *Handler) SelectInitiative(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.SelectInitiative(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPeople handles GET /api/people.
//
//	@Summary		List one-on-one records with full session history
//	@Tags			people
//	@Produce		json
//	@Success		200	{object}	OneOnOneListResponse
//	@Security		BearerAuth
//	@Router			/people [get]
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OneOnOneListResponse{OneOnOnes: h.trk.OneOnOnes()})
}

// CreatePerson handles POST /api/people.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if !decode(w, r, &req) {
		return
	}
	oo, err := h.trk.AddPerson(r.Context(), req.Person)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, oo)
}

// DeletePerson handles DELETE /api/people/{id}.
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.DeletePerson(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenActions handles GET /api/people/{id}/actions.
func (h *Handler) OpenActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.trk.OpenActions(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": actions})
}

// AppendAction handles POST /api/people/{id}/actions, the quick-add path
// that targets the person's latest session.
func (h *Handler) AppendAction(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	action, err := h.trk.AppendAction(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, action)
}

// ToggleSessionAction handles
// POST /api/people/{id}/sessions/{session}/actions/{action}/toggle.
func (h *Handler) ToggleSessionAction(w http.ResponseWriter, r *http.Request) {
	sessionIdx, err := strconv.Atoi(chi.URLParam(r, "session"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid session index"))
		return
	}
	actionIdx, err := strconv.Atoi(chi.URLParam(r, "action"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid action index"))
		return
	}
	pending, err := h.trk.ToggleSessionAction(r.Context(), chi.URLParam(r, "id"), sessionIdx, actionIdx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Pending: pending})
}

// SelectPerson handles POST /api/people/{id}/select.
func (h *Handler) SelectPerson(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.SelectPerson(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSelection handles GET /api/selection.
func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	streamID, initiativeID, personID := h.trk.Selection()
	writeJSON(w, http.StatusOK, SelectionResponse{
		StreamID:     streamID,
		InitiativeID: initiativeID,
		PersonID:     personID,
	})
}

// ClearSelection handles DELETE /api/selection.
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.trk.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmClosure handles POST /api/closure/confirm. An empty or
// whitespace-only comment is rejected and the prompt stays armed.
func (h *Handler) ConfirmClosure(w http.ResponseWriter, r *http.Request) {
	var req ConfirmClosureRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.trk.ConfirmClosure(r.Context(), req.Comment); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelClosure handles POST /api/closure/cancel.
func (h *Handler) CancelClosure(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.CancelClosure(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartSession handles POST /api/session.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID string `json:"personId"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.trk.StartSession(req.PersonID); err != nil {
		writeError(w, err)
		return
	}
	draft, err := h.trk.SessionDraft()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

// GetSession handles GET /api/session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	draft, err := h.trk.SessionDraft()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *Handler) sessionText(w http.ResponseWriter, r *http.Request, set func(string) error) {
	var req SessionTextRequest
	if !decode(w, r, &req) {
		return
	}
	if err := set(req.Text); err != nil {
		writeError(w, err)
		return
	}
	draft, err := h.trk.SessionDraft()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// SetSessionNotes handles PUT /api/session/notes. The body text replaces
// all notes; each line becomes one dated entry.
func (h *Handler) SetSessionNotes(w http.ResponseWriter, r *http.Request) {
	h.sessionText(w, r, h.trk.SetSessionNotes)
}

// SetSessionActions handles PUT /api/session/actions. Replacement resets
// any done flags set on draft actions.
func (h *Handler) SetSessionActions(w http.ResponseWriter, r *http.Request) {
	h.sessionText(w, r, h.trk.SetSessionActions)
}

// SetSessionObjectives handles PUT /api/session/objectives.
func (h *Handler) SetSessionObjectives(w http.ResponseWriter, r *http.Request) {
	h.sessionText(w, r, h.trk.SetSessionObjectives)
}

// ToggleDraftAction handles POST /api/session/actions/{action}/toggle.
func (h *Handler) ToggleDraftAction(w http.ResponseWriter, r *http.Request) {
	actionIdx, err := strconv.Atoi(chi.URLParam(r, "action"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid action index"))
		return
	}
	pending, err := h.trk.ToggleDraftAction(r.Context(), actionIdx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Pending: pending})
}

// MinimizeSession handles POST /api/session/minimize.
func (h *Handler) MinimizeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.MinimizeSession(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResumeSession handles POST /api/session/resume.
func (h *Handler) ResumeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.ResumeSession(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ArmSessionDiscard handles POST /api/session/discard/arm.
func (h *Handler) ArmSessionDiscard(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.ArmSessionDiscard(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelSessionDiscard handles POST /api/session/discard/cancel.
func (h *Handler) CancelSessionDiscard(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.CancelSessionDiscard(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DiscardSession handles DELETE /api/session. The discard must have been
// armed first; otherwise 409.
func (h *Handler) DiscardSession(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.DiscardSession(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteSession handles POST /api/session/complete.
func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.trk.CompleteSession(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// refTime parses the optional date query parameter, defaulting to now.
func (h *Handler) refTime(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.clock(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// Week handles GET /api/week.
//
//	@Summary		Week dashboard: this week's tasks by day plus export preview
//	@Tags			week
//	@Produce		json
//	@Param			date	query		string	false	"Any date inside the wanted week (YYYY-MM-DD)"
//	@Success		200		{object}	WeekResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/week [get]
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	ref, err := h.refTime(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid date, want YYYY-MM-DD"))
		return
	}
	streams := h.trk.ValueStreams()
	initiatives := h.trk.Initiatives()
	start, end := week.Window(ref)
	days := week.ByDay(week.Collect(streams, initiatives, ref))
	closed := week.ExportGroups(streams, initiatives, ref)
	if days == nil {
		days = []week.DayGroup{}
	}
	if closed == nil {
		closed = []week.OriginGroup{}
	}
	writeJSON(w, http.StatusOK, WeekResponse{
		Start:  week.DayKey(start),
		End:    week.DayKey(end),
		Days:   days,
		Closed: closed,
	})
}

// GenerateReport handles POST /api/report. It renders the weekly PDF for
// the week containing the optional date parameter and reports the filename.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ref, err := h.refTime(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid date, want YYYY-MM-DD"))
		return
	}
	streams := h.trk.ValueStreams()
	initiatives := h.trk.Initiatives()
	start, end := week.Window(ref)
	groups := week.ExportGroups(streams, initiatives, ref)
	path, err := h.renderer.Generate(groups, start, end)
	if err != nil {
		slog.Error("report generation failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	name := filepath.Base(path)
	writeJSON(w, http.StatusCreated, ReportResponse{
		Filename: name,
		URL:      "/reports/" + name,
	})
}
