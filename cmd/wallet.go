package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/gigpulse/internal/domain"
)

func newWalletCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Inspect and adjust creator wallets",
	}

	cmd.AddCommand(
		newWalletShowCmd(app),
		newWalletSetCmd(app),
	)

	return cmd
}

func newWalletShowCmd(app *app) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a user's profile and balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := domain.UserID(userID)
			profile, err := app.repo.GetProfile(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("wallet %s: %w", userID, err)
			}
			balance, err := app.repo.GetBalance(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("wallet %s: %w", userID, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nreputation: %d\nbalance: %s\n",
				profile.Username, profile.UserID, profile.Reputation, domain.FormatCurrency(balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newWalletSetCmd(app *app) *cobra.Command {
	var (
		userID  string
		balance float64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a user's balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.repo.SetBalance(cmd.Context(), domain.UserID(userID), balance); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "balance for %s set to %s\n", userID, domain.FormatCurrency(balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id")
	cmd.Flags().Float64Var(&balance, "balance", 0, "New balance in dollars")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("balance")

	return cmd
}
