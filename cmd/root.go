package cmd

import (
	"github.com/badnails/TestProjectGateway/internal/config"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

// appProvider wires the app on first use so flags are parsed before config loads.
type appProvider func(cmd *cobra.Command) (*app, error)

func newRootCmd() *cobra.Command {
	var opts config.Options
	var wired *app

	rootCmd := &cobra.Command{
		Use:           "paygate",
		Short:         "paygate: secure payment confirmation flow",
		Long:          "paygate walks a user through confirming a payment transaction (username, then PIN) against a payment backend, from the terminal or a browser.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if wired == nil {
				return nil
			}
			return wired.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "Config file (default: ~/.paygate/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "Environment file (default: ./.env)")

	provide := func(cmd *cobra.Command) (*app, error) {
		if wired != nil {
			return wired, nil
		}

		a, err := wireApp(opts, cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		wired = a
		return wired, nil
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfirmCmd(provide),
		newServeCmd(provide),
		newSessionCmd(provide),
	)

	return rootCmd
}
