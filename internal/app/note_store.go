package app

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"notedeck/internal/logging"
	"notedeck/internal/types"
)

const (
	defaultRequestTimeout = 10 * time.Second
	loadErrorMessage      = "Failed to load notes."
)

var ErrMissingNoteID = errors.New("note id is required")

// NoteStore owns the local snapshot of the remote collection and issues every
// remote request. Its state is only touched from the bubbletea update loop;
// the network legs run as commands and report back through messages.
type NoteStore struct {
	api      NotesAPI
	timeout  time.Duration
	logger   logging.Logger
	notes    []types.Note
	loadSeq  int
	loads    int
	mutating int
	err      string
}

type NoteStoreOption func(*NoteStore)

func WithRequestTimeout(timeout time.Duration) NoteStoreOption {
	return func(s *NoteStore) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

func WithStoreLogger(logger logging.Logger) NoteStoreOption {
	return func(s *NoteStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewNoteStore(api NotesAPI, opts ...NoteStoreOption) *NoteStore {
	s := &NoteStore{
		api:     api,
		timeout: defaultRequestTimeout,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load starts a full reload. Loads are not serialized; the last one applied
// wins.
func (s *NoteStore) Load() tea.Cmd {
	s.loadSeq++
	s.loads++
	return listNotesCmd(s.api, s.timeout, s.loadSeq)
}

func (s *NoteStore) ApplyLoaded(msg notesLoadedMsg) {
	if s.loads > 0 {
		s.loads--
	}
	if msg.err != nil {
		s.logger.Warn("load notes failed", logging.F("seq", msg.seq), logging.F("error", msg.err))
		s.err = loadErrorMessage
		return
	}
	s.notes = append([]types.Note(nil), msg.notes...)
	s.err = ""
	s.logger.Debug("notes loaded", logging.F("seq", msg.seq), logging.F("count", len(s.notes)))
}

func (s *NoteStore) Create(draft types.NoteDraft) (tea.Cmd, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	s.mutating++
	return createNoteCmd(s.api, s.timeout, draft), nil
}

func (s *NoteStore) Update(id types.NoteID, patch types.NoteDraft) (tea.Cmd, error) {
	if id.IsZero() {
		return nil, ErrMissingNoteID
	}
	patch = patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	s.mutating++
	return updateNoteCmd(s.api, s.timeout, id, patch), nil
}

func (s *NoteStore) Delete(id types.NoteID) (tea.Cmd, error) {
	if id.IsZero() {
		return nil, ErrMissingNoteID
	}
	s.mutating++
	return deleteNoteCmd(s.api, s.timeout, id), nil
}

// ApplyMutation settles a create, update or delete. A successful mutation is
// followed by a full reload; a failed one leaves the snapshot alone.
func (s *NoteStore) ApplyMutation(msg noteMutationMsg) tea.Cmd {
	if s.mutating > 0 {
		s.mutating--
	}
	if msg.err != nil {
		s.logger.Warn("note mutation failed",
			logging.F("op", msg.op.String()),
			logging.F("id", msg.id.String()),
			logging.F("error", msg.err),
		)
		return nil
	}
	s.logger.Info("note mutation applied", logging.F("op", msg.op.String()), logging.F("id", msg.id.String()))
	return s.Load()
}

// Notes returns a copy of the current snapshot.
func (s *NoteStore) Notes() []types.Note {
	return append([]types.Note(nil), s.notes...)
}

func (s *NoteStore) Len() int {
	return len(s.notes)
}

func (s *NoteStore) NoteByID(id types.NoteID) (types.Note, bool) {
	for _, note := range s.notes {
		if note.ID == id {
			return note, true
		}
	}
	return types.Note{}, false
}

func (s *NoteStore) Loading() bool {
	return s.loads > 0
}

func (s *NoteStore) Mutating() bool {
	return s.mutating > 0
}

func (s *NoteStore) Err() string {
	return s.err
}
