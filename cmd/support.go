package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSupportCmd(app *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "support <question>",
		Short: "Triage a support question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := app.support.Route(strings.Join(args, " "))

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(route)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "intent: %s\n", route.Intent)
			if route.Escalate {
				_, _ = fmt.Fprintf(out, "escalated to %s\n", route.Channel)
				return nil
			}
			_, _ = fmt.Fprintln(out, route.Reply)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the route as JSON")

	return cmd
}
