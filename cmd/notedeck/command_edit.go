package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notedeck/internal/logging"
	"notedeck/internal/types"
)

func newEditCommand(state *cliState) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the title or content of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := types.NoteID(strings.TrimSpace(args[0]))
			if id.IsZero() {
				return state.fail("edit", fmt.Errorf("note id is required"))
			}
			titleSet := cmd.Flags().Changed("title")
			contentSet := cmd.Flags().Changed("content")
			if !titleSet && !contentSet {
				return state.fail("edit", fmt.Errorf("nothing to change: pass --title or --content"))
			}
			api, err := state.client()
			if err != nil {
				return state.fail("edit", err)
			}
			notes, err := state.fetchNotes(api)
			if err != nil {
				return state.fail("edit", err)
			}
			current, ok := findNote(notes, id)
			if !ok {
				return state.fail("edit", fmt.Errorf("note %s not found", id))
			}
			draft := current.Draft()
			if titleSet {
				draft.Title = title
			}
			if contentSet {
				draft.Content = content
			}
			draft = draft.Normalize()
			if err := draft.Validate(); err != nil {
				return state.fail("edit", err)
			}
			ctx, cancel := state.requestContext()
			defer cancel()
			if err := api.UpdateNote(ctx, id, draft); err != nil {
				return state.fail("edit", err)
			}
			state.logger.Info("note updated", logging.F("id", id.String()))
			return state.fail("edit", state.reloadAndPrint(api))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new body")
	return cmd
}
