package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/internal/app"
	"notedeck/internal/client"
	"notedeck/internal/config"
	"notedeck/internal/fakeservice"
	"notedeck/internal/logging"
	"notedeck/internal/types"
)

type cliHarness struct {
	t       *testing.T
	service *fakeservice.Service
	server  *httptest.Server
	stdin   *strings.Reader
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	cfg     config.Config
	wiring  commandWiring
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	service := fakeservice.New()
	server := httptest.NewServer(service.Handler())
	t.Cleanup(server.Close)

	h := &cliHarness{
		t:       t,
		service: service,
		server:  server,
		stdin:   strings.NewReader(""),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		cfg:     config.Default(),
	}
	h.cfg.Service.BaseURL = server.URL + fakeservice.DefaultPrefix + "/"
	h.wiring = defaultCommandWiring(h.stdin, h.stdout, h.stderr)
	h.wiring.loadConfig = func(string) (config.Config, error) { return h.cfg, nil }
	h.wiring.configureUILogging = func(logging.Level) logging.Logger { return logging.Nop() }
	h.wiring.runUI = func(app.NotesAPI, app.Options) error {
		t.Fatalf("unexpected ui run")
		return nil
	}
	h.wiring.serve = func(context.Context, string, http.Handler, logging.Logger) error {
		t.Fatalf("unexpected serve")
		return nil
	}
	return h
}

func (h *cliHarness) run(args ...string) error {
	h.t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	h.wiring.stdin = h.stdin
	root := newRootCommand(h.wiring)
	root.SetArgs(append([]string{}, args...))
	return root.Execute()
}

func (h *cliHarness) input(text string) {
	h.stdin = strings.NewReader(text)
}

func TestListEmptyCollection(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("list"))
	assert.Contains(t, h.stdout.String(), "No notes yet.")
	assert.Equal(t, 1, h.service.Calls(http.MethodGet))
}

func TestListPrintsTableWithTruncatedColumns(t *testing.T) {
	h := newCLIHarness(t)
	long := strings.Repeat("x", 60)
	h.service.Seed(
		types.NoteDraft{Title: "Groceries", Content: "Milk, eggs\nbread"},
		types.NoteDraft{Title: long},
	)

	require.NoError(t, h.run("list"))
	out := h.stdout.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Milk, eggs")
	assert.NotContains(t, out, "bread")
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "…")
}

func TestListJSONFormat(t *testing.T) {
	h := newCLIHarness(t)
	seeded := h.service.Seed(types.NoteDraft{Title: "a", Content: "b"})

	require.NoError(t, h.run("list", "--format", "json"))
	var notes []types.Note
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &notes))
	assert.Equal(t, seeded, notes)
}

func TestListRejectsUnknownFormat(t *testing.T) {
	h := newCLIHarness(t)
	require.Error(t, h.run("list", "--format", "yaml"))
	assert.Contains(t, h.stderr.String(), "list error")
	assert.Zero(t, h.service.Calls(http.MethodGet))
}

func TestAddCreatesAndReloads(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("add", "--title", "  Groceries ", "--content", "Milk"))

	notes := h.service.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, 1, h.service.Calls(http.MethodPost))
	assert.Equal(t, 1, h.service.Calls(http.MethodGet))
	assert.Contains(t, h.stdout.String(), "Groceries")
}

func TestAddBlankTitleNeverReachesService(t *testing.T) {
	h := newCLIHarness(t)
	err := h.run("add", "--title", "   ", "--content", "body")
	require.ErrorIs(t, err, types.ErrEmptyTitle)
	assert.Zero(t, h.service.Calls(http.MethodPost))
	assert.Contains(t, h.stderr.String(), "add error")
}

func TestAddSurfacesServiceError(t *testing.T) {
	h := newCLIHarness(t)
	h.service.FailNext(http.MethodPost, http.StatusInternalServerError)

	err := h.run("add", "--title", "x")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, h.service.Notes())
	assert.Zero(t, h.service.Calls(http.MethodGet))
}

func TestEditMergesFlagsOverExistingNote(t *testing.T) {
	h := newCLIHarness(t)
	seeded := h.service.Seed(types.NoteDraft{Title: "a", Content: "body"})

	require.NoError(t, h.run("edit", seeded[0].ID.String(), "--title", "b"))
	notes := h.service.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "b", notes[0].Title)
	assert.Equal(t, "body", notes[0].Content)
	assert.Equal(t, 1, h.service.Calls(http.MethodPut))
}

func TestEditRejectsBadInput(t *testing.T) {
	h := newCLIHarness(t)
	seeded := h.service.Seed(types.NoteDraft{Title: "a"})
	id := seeded[0].ID.String()

	assert.Error(t, h.run("edit", id))
	assert.ErrorIs(t, h.run("edit", id, "--title", " "), types.ErrEmptyTitle)
	assert.Error(t, h.run("edit", "99", "--title", "z"))
	assert.Zero(t, h.service.Calls(http.MethodPut))
}

func TestRemoveDeclinedLeavesNote(t *testing.T) {
	h := newCLIHarness(t)
	seeded := h.service.Seed(types.NoteDraft{Title: "keep"})
	h.input("n\n")

	require.NoError(t, h.run("rm", seeded[0].ID.String()))
	assert.Contains(t, h.stdout.String(), `Delete note "keep"? [y/N]`)
	assert.Contains(t, h.stdout.String(), "aborted")
	assert.Len(t, h.service.Notes(), 1)
	assert.Zero(t, h.service.Calls(http.MethodDelete))
}

func TestRemoveConfirmedDeletes(t *testing.T) {
	h := newCLIHarness(t)
	seeded := h.service.Seed(types.NoteDraft{Title: "a"}, types.NoteDraft{Title: "b"})
	h.input("y\n")

	require.NoError(t, h.run("rm", seeded[0].ID.String()))
	notes := h.service.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "b", notes[0].Title)
	assert.Equal(t, 2, h.service.Calls(http.MethodGet))
}

func TestRemoveYesSkipsPrompt(t *testing.T) {
	h := newCLIHarness(t)
	seeded := h.service.Seed(types.NoteDraft{Title: "a"})

	require.NoError(t, h.run("rm", "--yes", seeded[0].ID.String()))
	assert.NotContains(t, h.stdout.String(), "[y/N]")
	assert.Empty(t, h.service.Notes())
}

func TestConfigPrintsDefaultsAsJSON(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("config", "--defaults", "--format", "json"))

	var out configOutput
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	assert.Equal(t, config.Default().BaseURL(), out.Service.BaseURL)
	assert.Equal(t, "10s", out.Service.RequestTimeout)
	assert.Equal(t, "info", out.Logging.Level)
	assert.True(t, out.UI.Preview)
}

func TestConfigFlagsOverrideLoadedConfig(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("--base-url", "https://notes.example.com/api/notes", "--log-level", "debug", "config"))

	var out configOutput
	require.NoError(t, toml.Unmarshal(h.stdout.Bytes(), &out))
	assert.Equal(t, "https://notes.example.com/api/notes/", out.Service.BaseURL)
	assert.Equal(t, "debug", out.Logging.Level)
}

func TestInvalidBaseURLFlagFails(t *testing.T) {
	h := newCLIHarness(t)
	require.Error(t, h.run("--base-url", "ftp://example.com", "list"))
	assert.Contains(t, h.stderr.String(), "config error")
}

func TestRootRunsUIByDefault(t *testing.T) {
	h := newCLIHarness(t)
	var got app.Options
	runs := 0
	h.wiring.runUI = func(api app.NotesAPI, opts app.Options) error {
		runs++
		got = opts
		require.NotNil(t, api)
		return nil
	}

	require.NoError(t, h.run())
	require.NoError(t, h.run("ui", "--no-preview"))
	assert.Equal(t, 2, runs)
	assert.Equal(t, h.cfg.RequestTimeout(), got.RequestTimeout)
	assert.False(t, got.Preview)
}

func TestFakeServiceServesSeededNotes(t *testing.T) {
	h := newCLIHarness(t)
	var handler http.Handler
	var addr string
	h.wiring.serve = func(_ context.Context, a string, hnd http.Handler, _ logging.Logger) error {
		addr = a
		handler = hnd
		return nil
	}

	require.NoError(t, h.run("--base-url", "http://127.0.0.1:9090/v1/notes/", "fake-service", "--seed", "2"))
	assert.Equal(t, "127.0.0.1:9090", addr)
	assert.Contains(t, h.stdout.String(), "http://127.0.0.1:9090/v1/notes/")
	require.NotNil(t, handler)

	server := httptest.NewServer(handler)
	defer server.Close()
	c, err := client.New(server.URL + "/v1/notes/")
	require.NoError(t, err)
	notes, err := c.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestPrintNotesStripsEscapeSequences(t *testing.T) {
	var out bytes.Buffer
	printNotes(&out, []types.Note{{
		ID:      types.NoteID("\x1b]0;x\x077\x1b[2J"),
		Title:   "\x1b[31mred\x1b[0m",
		Content: "\x1b[1mbody\x1b[0m",
	}})

	text := out.String()
	assert.NotContains(t, text, "\x1b")
	assert.Contains(t, text, "7")
	assert.Contains(t, text, "red")
	assert.Contains(t, text, "body")
}
