package tracker

import (
	"encoding/json"

	"github.com/starford/raido/internal/models"
)

// migrateInitiatives decodes the persisted initiatives document, migrating
// legacy records whose emoji still lives at the front of the name field.
// A record with an emoji field (even empty) passes through unchanged. A
// record without one gets the leading pictographic glyph extracted from its
// name; when the name has no such glyph the emoji becomes empty and the
// name is left alone.
func migrateInitiatives(data []byte) ([]models.Initiative, error) {
	var raw []struct {
		ID    string        `json:"id"`
		Name  string        `json:"name"`
		Emoji *string       `json:"emoji"`
		Tasks []models.Task `json:"tasks"`
		Notes []models.Note `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Initiative, 0, len(raw))
	for _, r := range raw {
		in := models.Initiative{ID: r.ID, Name: r.Name, Tasks: r.Tasks, Notes: r.Notes}
		if r.Emoji != nil {
			in.Emoji = *r.Emoji
		} else if emoji, rest, ok := models.SplitLeadingEmoji(r.Name); ok {
			in.Emoji = emoji
			in.Name = rest
		}
		if in.Tasks == nil {
			in.Tasks = []models.Task{}
		}
		if in.Notes == nil {
			in.Notes = []models.Note{}
		}
		out = append(out, in)
	}
	return out, nil
}
