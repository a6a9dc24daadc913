package api

import (
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/week"
)

// CreateStreamRequest is the request body for creating a value stream or a
// one-on-one record (both take a single name field).
type CreateStreamRequest struct {
	Name string `json:"name" example:"Platform" validate:"required"`
}

// CreateInitiativeRequest is the request body for creating an initiative.
type CreateInitiativeRequest struct {
	Name  string `json:"name" example:"Launch" validate:"required"`
	Emoji string `json:"emoji" example:"🚀" validate:"required"`
}

// CreatePersonRequest is the request body for creating a one-on-one record.
type CreatePersonRequest struct {
	Person string `json:"person" example:"Alex" validate:"required"`
}

// AddItemRequest is the request body for adding a task, note, or action.
type AddItemRequest struct {
	Content string `json:"content" example:"Migrate DB" validate:"required"`
}

// SessionTextRequest carries the full replacement text for one session field.
type SessionTextRequest struct {
	Text string `json:"text"`
}

// ConfirmClosureRequest carries the mandatory closure comment.
type ConfirmClosureRequest struct {
	Comment string `json:"comment" example:"done in prod" validate:"required"`
}

// ToggleResponse reports the outcome of a task or action toggle.
type ToggleResponse struct {
	Pending bool `json:"pending"`
}

// StreamListResponse wraps the value stream collection.
type StreamListResponse struct {
	ValueStreams []models.ValueStream `json:"valueStreams" validate:"required"`
}

// InitiativeListResponse wraps the initiative collection.
type InitiativeListResponse struct {
	Initiatives []models.Initiative `json:"initiatives" validate:"required"`
}

// OneOnOneListResponse wraps the one-on-one collection.
type OneOnOneListResponse struct {
	OneOnOnes []models.OneOnOne `json:"oneOnOnes" validate:"required"`
}

// DayListResponse is one owner's tasks and notes grouped by calendar day,
// newest day first, as the dashboard cards render them.
type DayListResponse struct {
	Days []week.DayItems `json:"days" validate:"required"`
}

// WeekResponse is the week dashboard: the window bounds, tasks grouped by
// day, and the closed tasks grouped by origin as the report will render them.
type WeekResponse struct {
	Start  string             `json:"start" example:"2025-06-02"`
	End    string             `json:"end" example:"2025-06-08"`
	Days   []week.DayGroup    `json:"days" validate:"required"`
	Closed []week.OriginGroup `json:"closed" validate:"required"`
}

// SelectionResponse reports the current selection; at most one id is set.
type SelectionResponse struct {
	StreamID     string `json:"streamId,omitempty"`
	InitiativeID string `json:"initiativeId,omitempty"`
	PersonID     string `json:"personId,omitempty"`
}

// ReportResponse is returned after a report was generated.
type ReportResponse struct {
	Filename string `json:"filename" example:"Weekly-Report-2025-06-02.pdf" validate:"required"`
	URL      string `json:"url" example:"/reports/Weekly-Report-2025-06-02.pdf" validate:"required"`
}
