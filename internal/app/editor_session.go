package app

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"notedeck/internal/client"
	"notedeck/internal/types"
)

const saveErrorMessage = "Failed to save note"

var ErrEditorClosed = errors.New("editor is closed")

type editorMode int

const (
	editorClosed editorMode = iota
	editorCreate
	editorEdit
)

type EditorField int

const (
	FieldTitle EditorField = iota
	FieldContent
)

type editorAction int

const (
	editorActionNone editorAction = iota
	editorActionSubmit
	editorActionCancel
)

// EditorSession is the single in-progress create or edit of a note. Each open
// starts a new generation so that a late save result from an abandoned
// session cannot close the current one.
type EditorSession struct {
	mode       editorMode
	noteID     types.NoteID
	title      textinput.Model
	content    textarea.Model
	focus      EditorField
	saving     bool
	err        string
	generation int
}

func NewEditorSession(width int) *EditorSession {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.ShowLineNumbers = false
	content.Prompt = ""
	content.CharLimit = 0
	content.MaxHeight = 0

	e := &EditorSession{title: title, content: content}
	e.Resize(width, minEditorHeight)
	return e
}

func (e *EditorSession) OpenCreate() {
	e.open(editorCreate, "", types.NoteDraft{})
}

func (e *EditorSession) OpenEdit(note types.Note) {
	e.open(editorEdit, note.ID, note.Draft())
}

func (e *EditorSession) open(mode editorMode, id types.NoteID, seed types.NoteDraft) {
	e.generation++
	e.mode = mode
	e.noteID = id
	e.saving = false
	e.err = ""
	e.title.SetValue(seed.Title)
	e.content.SetValue(seed.Content)
	e.setFocus(FieldTitle)
}

func (e *EditorSession) Cancel() {
	if !e.IsOpen() {
		return
	}
	e.close()
}

func (e *EditorSession) close() {
	e.mode = editorClosed
	e.noteID = ""
	e.saving = false
	e.err = ""
	e.title.SetValue("")
	e.content.SetValue("")
	e.title.Blur()
	e.content.Blur()
}

func (e *EditorSession) UpdateField(field EditorField, value string) error {
	if !e.IsOpen() {
		return ErrEditorClosed
	}
	switch field {
	case FieldTitle:
		e.title.SetValue(value)
	case FieldContent:
		e.content.SetValue(value)
	default:
		return errors.New("unknown editor field")
	}
	return nil
}

// Submit validates the fields and hands them to the store. It returns nil
// while a save is already in flight or when validation fails.
func (e *EditorSession) Submit(store *NoteStore) tea.Cmd {
	if !e.IsOpen() || e.saving || store == nil {
		return nil
	}
	draft := e.Draft()
	var (
		cmd tea.Cmd
		err error
	)
	switch e.mode {
	case editorCreate:
		cmd, err = store.Create(draft)
	case editorEdit:
		cmd, err = store.Update(e.noteID, draft)
	}
	if err != nil {
		e.err = err.Error()
		return nil
	}
	e.saving = true
	e.err = ""
	return withSession(cmd, e.generation)
}

// Resolve applies a save result. It reports false when the result belongs to
// a session that is no longer current.
func (e *EditorSession) Resolve(msg noteMutationMsg) bool {
	if msg.op == mutationDelete || !e.IsOpen() || !e.saving || msg.session != e.generation {
		return false
	}
	e.saving = false
	if msg.err != nil {
		e.err = saveFailureText(msg.err)
		return true
	}
	e.close()
	return true
}

// HandleKey routes editor keys. Submit and cancel are returned to the caller
// since they involve the store.
func (e *EditorSession) HandleKey(msg tea.KeyMsg) (editorAction, tea.Cmd) {
	if !e.IsOpen() {
		return editorActionNone, nil
	}
	switch msg.String() {
	case "esc":
		return editorActionCancel, nil
	case "ctrl+s":
		return editorActionSubmit, nil
	case "tab", "shift+tab":
		if e.focus == FieldTitle {
			e.setFocus(FieldContent)
		} else {
			e.setFocus(FieldTitle)
		}
		return editorActionNone, nil
	case "enter":
		if e.focus == FieldTitle {
			return editorActionSubmit, nil
		}
	}
	return editorActionNone, e.Update(msg)
}

// Update forwards non-key messages such as cursor blinks to the focused field.
func (e *EditorSession) Update(msg tea.Msg) tea.Cmd {
	if !e.IsOpen() {
		return nil
	}
	var cmd tea.Cmd
	if e.focus == FieldTitle {
		e.title, cmd = e.title.Update(msg)
	} else {
		e.content, cmd = e.content.Update(msg)
	}
	return cmd
}

func (e *EditorSession) setFocus(field EditorField) {
	e.focus = field
	if field == FieldTitle {
		e.content.Blur()
		e.title.Focus()
		return
	}
	e.title.Blur()
	e.content.Focus()
}

func (e *EditorSession) Resize(width, height int) {
	width = max(minEditorWidth, width)
	height = max(minEditorHeight, height)
	e.title.SetWidth(width - 2)
	e.content.SetWidth(width)
	e.content.SetHeight(max(3, height-editorChromeLines))
}

func (e *EditorSession) IsOpen() bool {
	return e != nil && e.mode != editorClosed
}

func (e *EditorSession) Creating() bool {
	return e.IsOpen() && e.mode == editorCreate
}

func (e *EditorSession) NoteID() types.NoteID {
	return e.noteID
}

func (e *EditorSession) Title() string {
	return e.title.Value()
}

func (e *EditorSession) Content() string {
	return e.content.Value()
}

func (e *EditorSession) Draft() types.NoteDraft {
	return types.NoteDraft{Title: e.title.Value(), Content: e.content.Value()}
}

func (e *EditorSession) Focused() EditorField {
	return e.focus
}

func (e *EditorSession) Saving() bool {
	return e.saving
}

func (e *EditorSession) Err() string {
	return e.err
}

func (e *EditorSession) Heading() string {
	if e.Creating() {
		return "New Note"
	}
	return "Edit Note"
}

func saveFailureText(err error) string {
	if apiErr := client.AsAPIError(err); apiErr != nil && strings.TrimSpace(apiErr.Message) != "" {
		return saveErrorMessage + ": " + strings.TrimSpace(apiErr.Message)
	}
	return saveErrorMessage
}
