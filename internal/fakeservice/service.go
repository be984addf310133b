// Package fakeservice is an in-memory implementation of the notes collection
// contract. It backs the client and UI tests and the fake-service command.
package fakeservice

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notedeck/internal/logging"
	"notedeck/internal/types"
)

const DefaultPrefix = "/api/notes"

type record struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type failure struct {
	status int
	body   map[string]any
}

type Service struct {
	mu       sync.Mutex
	prefix   string
	nextID   int
	notes    []record
	calls    map[string]int
	failures map[string][]failure
	logger   logging.Logger
}

type Option func(*Service)

func WithPrefix(prefix string) Option {
	return func(s *Service) {
		prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
		if prefix != "/" {
			s.prefix = prefix
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		prefix:   DefaultPrefix,
		nextID:   1,
		calls:    map[string]int{},
		failures: map[string][]failure{},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prefix is the collection path, without a trailing slash.
func (s *Service) Prefix() string {
	return s.prefix
}

func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countCalls)
	r.Use(s.logRequests)
	r.Route(s.prefix, func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Put("/{id}/", s.update)
		r.Delete("/{id}/", s.remove)
	})
	return r
}

// Seed stores notes directly, bypassing the HTTP surface and call counters.
func (s *Service) Seed(drafts ...types.NoteDraft) []types.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Note, 0, len(drafts))
	for _, draft := range drafts {
		rec := s.insertLocked(draft)
		out = append(out, rec.note())
	}
	return out
}

func (s *Service) Notes() []types.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Note, 0, len(s.notes))
	for _, rec := range s.notes {
		out = append(out, rec.note())
	}
	return out
}

// Calls returns how many requests with the given method reached the service.
func (s *Service) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[strings.ToUpper(method)]
}

// FailNext makes the next request with the given method fail with status.
func (s *Service) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	method = strings.ToUpper(method)
	s.failures[method] = append(s.failures[method], failure{
		status: status,
		body:   map[string]any{"detail": http.StatusText(status)},
	})
}

func (s *Service) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Method]++
		queue := s.failures[r.Method]
		var injected *failure
		if len(queue) > 0 {
			injected = &queue[0]
			s.failures[r.Method] = queue[1:]
		}
		s.mu.Unlock()
		if injected != nil {
			writeJSON(w, injected.status, injected.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", ww.Status()),
			logging.F("request_id", r.Header.Get("X-Request-ID")),
			logging.F("duration", time.Since(start)),
		)
	})
}

func (s *Service) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]record{}, s.notes...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) create(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	rec := s.insertLocked(draft)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Service) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Title = strings.TrimSpace(draft.Title)
			s.notes[i].Content = draft.Content
			writeJSON(w, http.StatusOK, s.notes[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *Service) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *Service) insertLocked(draft types.NoteDraft) record {
	rec := record{ID: s.nextID, Title: strings.TrimSpace(draft.Title), Content: draft.Content}
	s.nextID++
	s.notes = append(s.notes, rec)
	return rec
}

func (r record) note() types.Note {
	return types.Note{ID: types.NoteID(strconv.Itoa(r.ID)), Title: r.Title, Content: r.Content}
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (types.NoteDraft, bool) {
	var draft types.NoteDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return types.NoteDraft{}, false
	}
	if strings.TrimSpace(draft.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"title": {"This field may not be blank."}})
		return types.NoteDraft{}, false
	}
	return draft, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
