package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand(state *cliState) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the notes collection",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "table" && format != "json" {
				return state.fail("list", fmt.Errorf("unsupported format %q (use table or json)", format))
			}
			api, err := state.client()
			if err != nil {
				return state.fail("list", err)
			}
			notes, err := state.fetchNotes(api)
			if err != nil {
				return state.fail("list", err)
			}
			if format == "json" {
				data, err := json.MarshalIndent(notes, "", "  ")
				if err != nil {
					return state.fail("list", err)
				}
				fmt.Fprintln(state.wiring.stdout, string(data))
				return nil
			}
			printNotes(state.wiring.stdout, notes)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	return cmd
}
