package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"pgregory.net/rapid"

	"notedeck/internal/client"
	"notedeck/internal/fakeservice"
	"notedeck/internal/types"
)

func TestStoreLoadEmptyCollection(t *testing.T) {
	store := NewNoteStore(newFakeNotesAPI())
	cmd := store.Load()
	if !store.Loading() {
		t.Fatalf("expected loading while the load is in flight")
	}
	store.ApplyLoaded(loadedMsg(t, cmd))

	if store.Loading() {
		t.Fatalf("expected loading cleared after completion")
	}
	if len(store.Notes()) != 0 {
		t.Fatalf("expected zero notes, got %d", len(store.Notes()))
	}
	if store.Err() != "" {
		t.Fatalf("expected no error, got %q", store.Err())
	}
}

func TestStoreLoadFailureKeepsPreviousSnapshot(t *testing.T) {
	api := newFakeNotesAPI(types.NoteDraft{Title: "Groceries"})
	store := NewNoteStore(api)
	store.ApplyLoaded(loadedMsg(t, store.Load()))
	before := store.Notes()

	api.listErr = errUnavailable
	store.ApplyLoaded(loadedMsg(t, store.Load()))

	if !reflect.DeepEqual(store.Notes(), before) {
		t.Fatalf("expected snapshot unchanged, got %#v", store.Notes())
	}
	if store.Err() != loadErrorMessage {
		t.Fatalf("expected load error message, got %q", store.Err())
	}
	if store.Loading() {
		t.Fatalf("expected loading false after failed load")
	}

	api.listErr = nil
	store.ApplyLoaded(loadedMsg(t, store.Load()))
	if store.Err() != "" {
		t.Fatalf("expected error cleared after successful reload, got %q", store.Err())
	}
}

func TestStoreNullReloadKeepsPreviousSnapshot(t *testing.T) {
	var body atomic.Value
	body.Store(`[{"id":1,"title":"Groceries","content":"Milk"}]`)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body.Load().(string)))
	}))
	defer server.Close()
	c, err := client.New(server.URL + "/api/notes/")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	store := NewNoteStore(c)
	store.ApplyLoaded(loadedMsg(t, store.Load()))
	before := store.Notes()
	if len(before) != 1 {
		t.Fatalf("expected one note after first load, got %#v", before)
	}

	body.Store(`null`)
	store.ApplyLoaded(loadedMsg(t, store.Load()))

	if !reflect.DeepEqual(store.Notes(), before) {
		t.Fatalf("expected snapshot kept after null response, got %#v", store.Notes())
	}
	if store.Err() != loadErrorMessage {
		t.Fatalf("expected load error after null response, got %q", store.Err())
	}
}

func TestStoreLastAppliedLoadWins(t *testing.T) {
	api := newFakeNotesAPI(types.NoteDraft{Title: "first"})
	store := NewNoteStore(api)

	early := store.Load()
	earlyMsg := loadedMsg(t, early)
	api.insert(types.NoteDraft{Title: "second"})
	late := store.Load()
	lateMsg := loadedMsg(t, late)

	store.ApplyLoaded(lateMsg)
	if !store.Loading() {
		t.Fatalf("expected loading while the earlier load is outstanding")
	}
	store.ApplyLoaded(earlyMsg)
	if store.Loading() {
		t.Fatalf("expected loading cleared once both loads completed")
	}
	notes := store.Notes()
	if len(notes) != 1 || notes[0].Title != "first" {
		t.Fatalf("expected the last applied response to win, got %#v", notes)
	}
}

func TestStoreCreateRejectsBlankTitleWithoutNetwork(t *testing.T) {
	api := newFakeNotesAPI()
	store := NewNoteStore(api)

	cmd, err := store.Create(types.NoteDraft{Title: " \t ", Content: "body"})
	if !errors.Is(err, types.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if cmd != nil {
		t.Fatalf("expected no command for invalid draft")
	}
	if store.Mutating() {
		t.Fatalf("expected no pending mutation")
	}
	if api.count("create") != 0 {
		t.Fatalf("expected no create call")
	}
}

func TestStoreMutationSuccessReloads(t *testing.T) {
	api := newFakeNotesAPI()
	store := NewNoteStore(api)

	cmd, err := store.Create(types.NoteDraft{Title: "  Groceries ", Content: "Milk, eggs"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !store.Mutating() {
		t.Fatalf("expected mutation pending")
	}
	msg := mutationMsg(t, cmd)
	reload := store.ApplyMutation(msg)
	if reload == nil {
		t.Fatalf("expected reload after successful create")
	}
	if store.Mutating() {
		t.Fatalf("expected mutation settled")
	}
	if !store.Loading() {
		t.Fatalf("expected reload in flight")
	}
	store.ApplyLoaded(loadedMsg(t, reload))

	notes := store.Notes()
	if len(notes) != 1 || notes[0].Title != "Groceries" {
		t.Fatalf("unexpected snapshot: %#v", notes)
	}
	if api.created[0].Title != "Groceries" {
		t.Fatalf("expected trimmed title on the wire, got %q", api.created[0].Title)
	}
}

func TestStoreMutationFailureLeavesSnapshot(t *testing.T) {
	api := newFakeNotesAPI(types.NoteDraft{Title: "keep"})
	store := NewNoteStore(api)
	store.ApplyLoaded(loadedMsg(t, store.Load()))
	before := store.Notes()

	api.deleteErr = errUnavailable
	cmd, err := store.Delete(before[0].ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	msg := mutationMsg(t, cmd)
	if msg.op != mutationDelete || msg.err == nil {
		t.Fatalf("expected failed delete message, got %#v", msg)
	}
	if reload := store.ApplyMutation(msg); reload != nil {
		t.Fatalf("expected no reload after failure")
	}
	if !reflect.DeepEqual(store.Notes(), before) {
		t.Fatalf("expected snapshot unchanged")
	}
	if api.count("list") != 1 {
		t.Fatalf("expected only the initial load, got %d", api.count("list"))
	}
}

func TestStoreRejectsMissingIDs(t *testing.T) {
	store := NewNoteStore(newFakeNotesAPI())
	if _, err := store.Update("", types.NoteDraft{Title: "x"}); !errors.Is(err, ErrMissingNoteID) {
		t.Fatalf("expected ErrMissingNoteID from update, got %v", err)
	}
	if _, err := store.Delete(" "); !errors.Is(err, ErrMissingNoteID) {
		t.Fatalf("expected ErrMissingNoteID from delete, got %v", err)
	}
	if store.Mutating() {
		t.Fatalf("expected no pending mutation")
	}
}

func TestStoreNotesReturnsCopy(t *testing.T) {
	store := NewNoteStore(newFakeNotesAPI(types.NoteDraft{Title: "a"}))
	store.ApplyLoaded(loadedMsg(t, store.Load()))
	notes := store.Notes()
	notes[0].Title = "mutated"
	if got, _ := store.NoteByID(notes[0].ID); got.Title != "a" {
		t.Fatalf("expected snapshot isolated from callers, got %q", got.Title)
	}
}

// Any sequence of successful mutations leaves the snapshot equal to a fresh
// load of the service.
func TestStoreMutateThenReloadMatchesFreshLoad(t *testing.T) {
	var current *fakeservice.Service
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current.Handler().ServeHTTP(w, r)
	}))
	defer server.Close()

	rapid.Check(t, func(rt *rapid.T) {
		current = fakeservice.New()
		c, err := client.New(server.URL+fakeservice.DefaultPrefix, client.WithTimeout(2*time.Second))
		if err != nil {
			rt.Fatalf("client: %v", err)
		}
		store := NewNoteStore(c)
		steps := rapid.IntRange(1, 8).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			title := rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,15}`).Draw(rt, "title")
			content := rapid.StringMatching(`[a-z ]{0,20}`).Draw(rt, "content")
			notes := store.Notes()
			op := rapid.IntRange(0, 2).Draw(rt, "op")
			if len(notes) == 0 {
				op = 0
			}
			var pick types.NoteID
			if len(notes) > 0 {
				pick = notes[rapid.IntRange(0, len(notes)-1).Draw(rt, "pick")].ID
			}
			var cmdErr error
			switch op {
			case 0:
				cmd, err := store.Create(types.NoteDraft{Title: title, Content: content})
				if err != nil {
					rt.Fatalf("Create: %v", err)
				}
				cmdErr = applyRapid(rt, store, cmd)
			case 1:
				cmd, err := store.Update(pick, types.NoteDraft{Title: title, Content: content})
				if err != nil {
					rt.Fatalf("Update: %v", err)
				}
				cmdErr = applyRapid(rt, store, cmd)
			case 2:
				cmd, err := store.Delete(pick)
				if err != nil {
					rt.Fatalf("Delete: %v", err)
				}
				cmdErr = applyRapid(rt, store, cmd)
			}
			if cmdErr != nil {
				rt.Fatalf("mutation failed: %v", cmdErr)
			}
		}

		fresh, err := c.ListNotes(context.Background())
		if err != nil {
			rt.Fatalf("ListNotes: %v", err)
		}
		if len(fresh) == 0 {
			fresh = nil
		}
		got := store.Notes()
		if len(got) == 0 {
			got = nil
		}
		if !reflect.DeepEqual(got, fresh) {
			rt.Fatalf("snapshot diverged from fresh load:\n got %#v\nwant %#v", got, fresh)
		}
	})
}

func applyRapid(rt *rapid.T, store *NoteStore, cmd tea.Cmd) error {
	msg, ok := cmd().(noteMutationMsg)
	if !ok {
		rt.Fatalf("expected mutation message")
	}
	reload := store.ApplyMutation(msg)
	if msg.err != nil {
		return msg.err
	}
	loaded, ok := reload().(notesLoadedMsg)
	if !ok {
		rt.Fatalf("expected load message")
	}
	store.ApplyLoaded(loaded)
	return loaded.err
}
