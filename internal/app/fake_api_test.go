package app

import (
	"context"
	"strconv"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"notedeck/internal/types"
)

type fakeNotesAPI struct {
	mu        sync.Mutex
	notes     []types.Note
	nextID    int
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	calls     map[string]int
	created   []types.NoteDraft
}

func newFakeNotesAPI(seed ...types.NoteDraft) *fakeNotesAPI {
	api := &fakeNotesAPI{nextID: 1, calls: map[string]int{}}
	for _, draft := range seed {
		api.insert(draft)
	}
	return api
}

func (f *fakeNotesAPI) insert(draft types.NoteDraft) types.Note {
	note := types.Note{ID: types.NoteID(strconv.Itoa(f.nextID)), Title: draft.Title, Content: draft.Content}
	f.nextID++
	f.notes = append(f.notes, note)
	return note
}

func (f *fakeNotesAPI) ListNotes(context.Context) ([]types.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["list"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.Note(nil), f.notes...), nil
}

func (f *fakeNotesAPI) CreateNote(_ context.Context, draft types.NoteDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, draft)
	f.insert(draft)
	return nil
}

func (f *fakeNotesAPI) UpdateNote(_ context.Context, id types.NoteID, draft types.NoteDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Title = draft.Title
			f.notes[i].Content = draft.Content
			return nil
		}
	}
	return errNotFound
}

func (f *fakeNotesAPI) DeleteNote(_ context.Context, id types.NoteID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeNotesAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

type testError string

func (e testError) Error() string { return string(e) }

const (
	errNotFound    = testError("not found")
	errUnavailable = testError("service unavailable")
)

// runCmd executes a command synchronously and returns its message.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected command, got nil")
	}
	return cmd()
}

func loadedMsg(t *testing.T, cmd tea.Cmd) notesLoadedMsg {
	t.Helper()
	msg, ok := runCmd(t, cmd).(notesLoadedMsg)
	if !ok {
		t.Fatalf("expected notesLoadedMsg")
	}
	return msg
}

func mutationMsg(t *testing.T, cmd tea.Cmd) noteMutationMsg {
	t.Helper()
	msg, ok := runCmd(t, cmd).(noteMutationMsg)
	if !ok {
		t.Fatalf("expected noteMutationMsg")
	}
	return msg
}

// settle applies a mutation result and its follow-up reload, the way the
// update loop would.
func settle(t *testing.T, store *NoteStore, cmd tea.Cmd) noteMutationMsg {
	t.Helper()
	msg := mutationMsg(t, cmd)
	if reload := store.ApplyMutation(msg); reload != nil {
		store.ApplyLoaded(loadedMsg(t, reload))
	}
	return msg
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case "ctrl+n":
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}
