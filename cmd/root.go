package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gp",
		Short:         "Gigpulse (gp): creator bounty engine with a proactive guardian",
		Long:          "gp runs the Gigpulse engagement engine: a simulated creator economy, the Guardian assistant that comments on it, a support triage desk and the marketplace fixture those rely on.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newSupportCmd(app),
		newSimCmd(app),
		newServeCmd(app),
		newBountyCmd(app),
		newWalletCmd(app),
		newCredentialCmd(app),
	)

	return rootCmd
}
