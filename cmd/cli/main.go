package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shiftrota/cmd/cli/commands"
	"github.com/jakechorley/shiftrota/internal/config"
	"github.com/jakechorley/shiftrota/pkg/utils/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	app := &commands.AppContext{Cfg: cfg}

	var verbose bool
	rootCmd := &cobra.Command{
		Use:           "shiftrota",
		Short:         "Automatic shift allocator using a constraint solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.InitLogger(cfg.LogDir, verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			app.Logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Change the log level to debug")

	rootCmd.AddCommand(
		commands.SolveCmd(app),
		commands.EvaluateCmd(app),
		commands.GenerateConfigCmd(app),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
