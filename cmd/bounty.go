package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/gigpulse/internal/domain"
)

func newBountyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bounty",
		Short: "Manage marketplace bounties",
	}

	cmd.AddCommand(
		newBountyListCmd(app),
		newBountyAddCmd(app),
	)

	return cmd
}

func newBountyListCmd(app *app) *cobra.Command {
	var (
		all        bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bounties",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				bounties []domain.Bounty
				err      error
			)
			if all {
				bounties, err = app.repo.ListBounties(cmd.Context())
			} else {
				bounties, err = app.repo.ListOpenBounties(cmd.Context())
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(bounties)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, bounty := range bounties {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					bounty.ID, bounty.Title, domain.FormatCurrency(bounty.Reward), bounty.Difficulty, bounty.Status)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include closed bounties")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print bounties as JSON")

	return cmd
}

func newBountyAddCmd(app *app) *cobra.Command {
	var (
		id         string
		title      string
		brand      string
		reward     float64
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a bounty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bounty := domain.Bounty{
				ID:         domain.BountyID(id),
				Title:      title,
				Brand:      brand,
				Reward:     reward,
				Difficulty: domain.Difficulty(difficulty),
				Status:     domain.BountyStatusOpen,
			}
			if err := app.repo.SaveBounty(cmd.Context(), bounty); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved bounty %s\n", bounty.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Bounty id")
	cmd.Flags().StringVar(&title, "title", "", "Bounty title")
	cmd.Flags().StringVar(&brand, "brand", "", "Sponsoring brand")
	cmd.Flags().Float64Var(&reward, "reward", 0, "Reward in dollars")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyEasy), "easy, medium or hard")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("reward")

	return cmd
}
