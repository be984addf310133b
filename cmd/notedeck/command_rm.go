package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notedeck/internal/app/sanitizer"
	"notedeck/internal/logging"
	"notedeck/internal/types"
)

func newRemoveCommand(state *cliState) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := types.NoteID(strings.TrimSpace(args[0]))
			if id.IsZero() {
				return state.fail("rm", fmt.Errorf("note id is required"))
			}
			api, err := state.client()
			if err != nil {
				return state.fail("rm", err)
			}
			notes, err := state.fetchNotes(api)
			if err != nil {
				return state.fail("rm", err)
			}
			note, ok := findNote(notes, id)
			if !ok {
				return state.fail("rm", fmt.Errorf("note %s not found", id))
			}
			if !yes && !confirmPrompt(state.wiring.stdin, state.wiring.stdout, fmt.Sprintf("Delete note %q?", sanitizer.Line(note.Title))) {
				fmt.Fprintln(state.wiring.stdout, "aborted")
				return nil
			}
			ctx, cancel := state.requestContext()
			defer cancel()
			if err := api.DeleteNote(ctx, id); err != nil {
				return state.fail("rm", err)
			}
			state.logger.Info("note deleted", logging.F("id", id.String()))
			return state.fail("rm", state.reloadAndPrint(api))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
