package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"notedeck/internal/app/sanitizer"
	"notedeck/internal/logging"
	"notedeck/internal/types"
)

const (
	tickInterval      = 250 * time.Millisecond
	minListWidth      = 24
	maxListWidth      = 44
	minEditorWidth    = 20
	minEditorHeight   = 8
	editorChromeLines = 7
	minContentHeight  = 6
)

const (
	emptyNotesText   = "No notes yet. Create a new one!"
	loadingNotesText = "Loading notes..."
	saveFailedText   = "Could not save note."
	deleteFailedText = "Could not delete note."
	deletePromptText = "Are you sure you want to delete this note?"
	busyText         = "wait for the pending change to finish"
)

type Options struct {
	Logger         logging.Logger
	RequestTimeout time.Duration
	Preview        bool
}

// Model coordinates the note store, the editor session and the dialogs. It
// is the only place that turns key presses into store or editor calls.
type Model struct {
	store   *NoteStore
	editor  *EditorSession
	confirm *ConfirmController
	notice  *NoticeController
	logger  logging.Logger

	selectedID    types.NoteID
	pendingDelete types.NoteID
	preview       bool

	width  int
	height int
	status string

	toast toast
	clock func() time.Time
}

func NewModel(api NotesAPI, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return Model{
		store:   NewNoteStore(api, WithRequestTimeout(opts.RequestTimeout), WithStoreLogger(logger)),
		editor:  NewEditorSession(minEditorWidth),
		confirm: NewConfirmController(),
		notice:  NewNoticeController(),
		logger:  logger,
		preview: opts.Preview,
		clock:   time.Now,
	}
}

func Run(api NotesAPI, opts Options) error {
	model := NewModel(api, opts)
	p := tea.NewProgram(&model)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.store.Load(), tickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case notesLoadedMsg:
		m.store.ApplyLoaded(msg)
		if msg.err != nil && m.store.Err() != "" {
			m.logger.Warn("load notes failed", logging.F("error", msg.err))
			m.report(statusLoadFailed, m.store.Err())
		}
		m.reconcileSelection()
		return m, nil
	case noteMutationMsg:
		return m, m.handleMutation(msg)
	case clipboardResultMsg:
		if msg.err != nil {
			m.logger.Warn("copy failed", logging.F("error", msg.err))
			m.report(statusCopyFailed, "copy failed: "+msg.err.Error())
			return m, nil
		}
		m.report(statusCopied, msg.label)
		return m, nil
	case tickMsg:
		m.handleTick(msg)
		return m, tickCmd()
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	if m.editor.IsOpen() {
		return m, m.editor.Update(msg)
	}
	return m, nil
}

func (m *Model) handleTick(msg tickMsg) {
	m.expireToast(time.Time(msg))
}

func (m *Model) handleMutation(msg noteMutationMsg) tea.Cmd {
	reload := m.store.ApplyMutation(msg)
	switch msg.op {
	case mutationDelete:
		if msg.err != nil {
			m.notice.Open("Delete failed", deleteFailedText)
			m.report(statusMutationFailed, deleteFailedText)
			return nil
		}
		m.report(statusDeleted, "note deleted")
	default:
		if !m.editor.Resolve(msg) {
			m.logger.Debug("save result for closed editor session", logging.F("session", msg.session))
		}
		if msg.err != nil {
			m.notice.Open("Save failed", saveFailedText)
			m.report(statusMutationFailed, saveFailedText)
			return nil
		}
		m.report(statusSaved, "note saved")
	}
	return reload
}

func (m *Model) requestNew() {
	m.editor.OpenCreate()
	m.resize(m.width, m.height)
}

func (m *Model) requestEdit(note types.Note) {
	if !note.Persisted() {
		return
	}
	m.selectedID = note.ID
	m.editor.OpenEdit(note)
	m.resize(m.width, m.height)
}

// requestDelete only opens the confirmation prompt; the store is not touched
// until the user answers yes.
func (m *Model) requestDelete(id types.NoteID) {
	if id.IsZero() {
		return
	}
	if m.store.Mutating() {
		m.report(statusBusy, busyText)
		return
	}
	title := id.String()
	if note, ok := m.store.NoteByID(id); ok && note.Title != "" {
		title = note.Title
	}
	m.pendingDelete = id
	m.confirm.Open("Delete Note", fmt.Sprintf("%s\n%q", deletePromptText, sanitizer.Line(title)), "Yes", "No")
}

func (m *Model) resolveDelete(choice confirmChoice) tea.Cmd {
	id := m.pendingDelete
	m.pendingDelete = ""
	m.confirm.Close()
	if choice != confirmChoiceConfirm {
		return nil
	}
	cmd, err := m.store.Delete(id)
	if err != nil {
		m.report(statusRejected, err.Error())
		return nil
	}
	m.report(statusProgress, "deleting note")
	return cmd
}

func (m *Model) submitEditor() tea.Cmd {
	if m.editor.Saving() {
		return nil
	}
	if m.store.Mutating() {
		m.report(statusBusy, busyText)
		return nil
	}
	cmd := m.editor.Submit(m.store)
	if cmd == nil {
		m.report(statusInvalidDraft, m.editor.Err())
		return nil
	}
	m.report(statusProgress, "saving note")
	return cmd
}

func (m *Model) cancelEditor() {
	if !m.editor.IsOpen() {
		return
	}
	m.editor.Cancel()
	m.report(statusProgress, "edit cancelled")
}

// refresh reloads on demand, never while a mutation is pending since that
// mutation reloads on its own.
func (m *Model) refresh() tea.Cmd {
	if m.store.Mutating() {
		m.report(statusBusy, busyText)
		return nil
	}
	return m.store.Load()
}

func (m *Model) copySelected() tea.Cmd {
	note, ok := m.selectedNote()
	if !ok {
		return nil
	}
	text := note.Title
	if note.Content != "" {
		text += "\n\n" + note.Content
	}
	return copyCmd(text, "note copied")
}

func (m *Model) togglePreview() {
	m.preview = !m.preview
	if m.preview {
		m.report(statusProgress, "preview on")
	} else {
		m.report(statusProgress, "preview off")
	}
}

func (m *Model) selectedNote() (types.Note, bool) {
	if m.selectedID.IsZero() {
		return types.Note{}, false
	}
	return m.store.NoteByID(m.selectedID)
}

func (m *Model) selectedIndex() int {
	notes := m.store.Notes()
	for i, note := range notes {
		if note.ID == m.selectedID {
			return i
		}
	}
	return -1
}

func (m *Model) moveSelection(delta int) {
	notes := m.store.Notes()
	if len(notes) == 0 {
		m.selectedID = ""
		return
	}
	idx := m.selectedIndex() + delta
	idx = max(0, min(idx, len(notes)-1))
	m.selectedID = notes[idx].ID
}

// reconcileSelection keeps the cursor on the same note across reloads and
// falls back to the first note when it disappears.
func (m *Model) reconcileSelection() {
	if _, ok := m.store.NoteByID(m.selectedID); ok {
		return
	}
	notes := m.store.Notes()
	if len(notes) == 0 {
		m.selectedID = ""
		return
	}
	m.selectedID = notes[0].ID
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	_, rightWidth := m.paneWidths()
	m.editor.Resize(rightWidth-4, max(minContentHeight, height-2)-2)
}

func (m *Model) paneWidths() (int, int) {
	if m.width <= 0 {
		return maxListWidth, minEditorWidth
	}
	listWidth := max(minListWidth, min(m.width/3, maxListWidth))
	rightWidth := max(minEditorWidth, m.width-listWidth-1)
	return listWidth, rightWidth
}

func (m *Model) now() time.Time {
	if m.clock == nil {
		return time.Now()
	}
	return m.clock()
}

func (m *Model) Store() *NoteStore {
	return m.store
}

func (m *Model) Editor() *EditorSession {
	return m.editor
}
