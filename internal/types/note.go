package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyTitle = errors.New("Title cannot be empty")

// NoteID is assigned by the remote service. The service may encode it as a
// JSON string or number; both decode to the same textual form.
type NoteID string

func (id NoteID) String() string {
	return string(id)
}

func (id NoteID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

func (id *NoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = NoteID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("note id: unsupported value %s", string(data))
	}
	*id = NoteID(n.String())
	return nil
}

type Note struct {
	ID      NoteID `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Persisted reports whether the note has been assigned an id by the service.
func (n Note) Persisted() bool {
	return !n.ID.IsZero()
}

func (n Note) Draft() NoteDraft {
	return NoteDraft{Title: n.Title, Content: n.Content}
}

// NoteDraft is the id-less payload sent on create and update.
type NoteDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (d NoteDraft) Normalize() NoteDraft {
	return NoteDraft{
		Title:   strings.TrimSpace(d.Title),
		Content: strings.TrimSpace(d.Content),
	}
}

func (d NoteDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
