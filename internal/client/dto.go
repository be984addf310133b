package client

import (
	"bytes"
	"encoding/json"

	"notedeck/internal/types"
)

// noteRecord mirrors types.Note with optional fields so a record missing a
// title or content can still be told apart from an unusable one.
type noteRecord struct {
	ID      types.NoteID `json:"id"`
	Title   *string      `json:"title"`
	Content *string      `json:"content"`
}

func decodeNotes(raw []json.RawMessage) ([]types.Note, int) {
	notes := make([]types.Note, 0, len(raw))
	seen := make(map[types.NoteID]struct{}, len(raw))
	skipped := 0
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			skipped++
			continue
		}
		var record noteRecord
		if err := json.Unmarshal(item, &record); err != nil || record.ID.IsZero() {
			skipped++
			continue
		}
		if _, ok := seen[record.ID]; ok {
			skipped++
			continue
		}
		seen[record.ID] = struct{}{}
		note := types.Note{ID: record.ID}
		if record.Title != nil {
			note.Title = *record.Title
		}
		if record.Content != nil {
			note.Content = *record.Content
		}
		notes = append(notes, note)
	}
	return notes, skipped
}
