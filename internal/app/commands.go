package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"notedeck/internal/types"
)

func listNotesCmd(api NotesAPI, timeout time.Duration, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		notes, err := api.ListNotes(ctx)
		return notesLoadedMsg{seq: seq, notes: notes, err: err}
	}
}

func createNoteCmd(api NotesAPI, timeout time.Duration, draft types.NoteDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := api.CreateNote(ctx, draft)
		return noteMutationMsg{op: mutationCreate, err: err}
	}
}

func updateNoteCmd(api NotesAPI, timeout time.Duration, id types.NoteID, draft types.NoteDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := api.UpdateNote(ctx, id, draft)
		return noteMutationMsg{op: mutationUpdate, id: id, err: err}
	}
}

func deleteNoteCmd(api NotesAPI, timeout time.Duration, id types.NoteID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := api.DeleteNote(ctx, id)
		return noteMutationMsg{op: mutationDelete, id: id, err: err}
	}
}

// withSession stamps the editor generation onto a mutation result.
func withSession(cmd tea.Cmd, session int) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if mutation, ok := msg.(noteMutationMsg); ok {
			mutation.session = session
			return mutation
		}
		return msg
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
