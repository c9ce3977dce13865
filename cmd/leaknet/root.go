package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-leaknet/pkg/logging"
)

// app holds state shared by the subcommands.
type app struct {
	logLevel string
	logger   logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "leaknet",
		Short:         "Co-affiliation networks from leaked corporate registries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setLogger(cmd, a.logLevel)
		},
	}

	defaultLevel := os.Getenv("LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = "info"
	}
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", defaultLevel, "log level (debug, info, warn, error)")

	cmd.AddCommand(newBuildCmd(a), newLayoutCmd(a))
	return cmd
}

// setLogger replaces the logger with a JSON logger on stderr at level.
func (a *app) setLogger(cmd *cobra.Command, level string) error {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	a.logger = logging.NewJSONLogger(cmd.ErrOrStderr(), lvl).With(logging.Component("leaknet"))
	return nil
}
