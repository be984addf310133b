package app

import (
	"context"

	"notedeck/internal/types"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_notes_api.go -package=mocks notedeck/internal/app NotesAPI

// NotesAPI is the remote collection as seen by the store. *client.Client
// satisfies it.
type NotesAPI interface {
	ListNotes(ctx context.Context) ([]types.Note, error)
	CreateNote(ctx context.Context, draft types.NoteDraft) error
	UpdateNote(ctx context.Context, id types.NoteID, draft types.NoteDraft) error
	DeleteNote(ctx context.Context, id types.NoteID) error
}
