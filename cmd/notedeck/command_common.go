package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"notedeck/internal/app"
	"notedeck/internal/app/sanitizer"
	"notedeck/internal/types"
)

const (
	idColumnWidth      = 16
	titleColumnWidth   = 32
	contentColumnWidth = 48
)

func printNotes(output io.Writer, notes []types.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(output, "No notes yet.")
		return
	}
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tCONTENT")
	for _, note := range notes {
		fmt.Fprintf(writer, "%s\t%s\t%s\n",
			truncateColumn(sanitizer.Line(note.ID.String()), idColumnWidth),
			truncateColumn(sanitizer.Line(note.Title), titleColumnWidth),
			truncateColumn(firstLine(sanitizer.Block(note.Content)), contentColumnWidth),
		)
	}
	_ = writer.Flush()
}

func truncateColumn(value string, width int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return runewidth.Truncate(value, width, "…")
}

func firstLine(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.IndexByte(value, '\n'); idx >= 0 {
		return strings.TrimSpace(value[:idx])
	}
	return value
}

func writeError(stderr io.Writer, label string, err error) {
	if err == nil || stderr == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
}

// confirmPrompt asks a yes/no question on stdin. Anything other than y or
// yes declines.
func confirmPrompt(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// fetchNotes lists the collection within the configured request timeout.
func (s *cliState) fetchNotes(api app.NotesAPI) ([]types.Note, error) {
	ctx, cancel := s.requestContext()
	defer cancel()
	return api.ListNotes(ctx)
}

func (s *cliState) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.RequestTimeout())
}

// reloadAndPrint reloads the collection after a mutation and prints it.
func (s *cliState) reloadAndPrint(api app.NotesAPI) error {
	notes, err := s.fetchNotes(api)
	if err != nil {
		return err
	}
	printNotes(s.wiring.stdout, notes)
	return nil
}

func (s *cliState) client() (app.NotesAPI, error) {
	return s.wiring.newClient(s.cfg, s.logger)
}

func findNote(notes []types.Note, id types.NoteID) (types.Note, bool) {
	for _, note := range notes {
		if note.ID == id {
			return note, true
		}
	}
	return types.Note{}, false
}
