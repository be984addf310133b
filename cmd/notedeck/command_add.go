package main

import (
	"github.com/spf13/cobra"

	"notedeck/internal/logging"
	"notedeck/internal/types"
)

func newAddCommand(state *cliState) *cobra.Command {
	var draft types.NoteDraft
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized := draft.Normalize()
			if err := normalized.Validate(); err != nil {
				return state.fail("add", err)
			}
			api, err := state.client()
			if err != nil {
				return state.fail("add", err)
			}
			ctx, cancel := state.requestContext()
			defer cancel()
			if err := api.CreateNote(ctx, normalized); err != nil {
				return state.fail("add", err)
			}
			state.logger.Info("note created", logging.F("title", normalized.Title))
			return state.fail("add", state.reloadAndPrint(api))
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "note title (required)")
	cmd.Flags().StringVar(&draft.Content, "content", "", "note body")
	return cmd
}
