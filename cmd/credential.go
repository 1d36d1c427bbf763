package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCredentialCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credential",
		Aliases: []string{"cred"},
		Short:   "Manage responder API keys",
		Long:    "Store provider API keys in pass, or in ~/.gigpulse/credentials when pass is not installed. Point responder.api_key_ref at the ref to use one.",
	}

	cmd.AddCommand(
		newCredentialSetCmd(app),
		newCredentialCheckCmd(app),
		newCredentialDeleteCmd(app),
	)

	return cmd
}

func newCredentialSetCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set <ref>",
		Short: "Store a key (reads stdin when --value is omitted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if value == "" {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if scanner.Scan() {
					value = scanner.Text()
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read credential from stdin: %w", err)
				}
			}
			if strings.TrimSpace(value) == "" {
				return errors.New("credential value is empty")
			}

			if err := app.credentials.Put(cmd.Context(), args[0], value); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Key value")

	return cmd
}

func newCredentialCheckCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <ref>",
		Short: "Show whether a key is stored, masked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := app.credentials.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], maskCredential(value))
			return nil
		},
	}
}

func newCredentialDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <ref>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.credentials.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

// maskCredential keeps the last four characters of keys long enough to hide.
func maskCredential(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
